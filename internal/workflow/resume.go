package workflow

import (
	"context"
	"fmt"

	"pontolink/internal/logging"
	"pontolink/internal/reconcile"
	"pontolink/internal/scan"
	"pontolink/internal/session"
)

// Resume reloads the newest snapshot, re-enumerates the files root, and
// re-attaches file handles to every resolved record. The returned result says
// how many handles were attached and whether the session is complete.
func (m *Manager) Resume(ctx context.Context) (*session.Session, reconcile.Result, error) {
	sess, err := m.Latest(ctx)
	if err != nil {
		return nil, reconcile.Result{}, err
	}

	entries, err := scan.Enumerate(m.cfg.Paths.FilesRoot)
	if err != nil {
		return nil, reconcile.Result{}, fmt.Errorf("enumerate files root: %w", err)
	}
	handles := scan.Handles(m.cfg.Paths.FilesRoot, entries)
	result := reconcile.Apply(sess.Records, handles)
	sess.Folders = scan.Pool(m.cfg.Paths.FilesRoot, entries)

	m.logger.Info("session resumed",
		logging.String("session", sess.ID),
		logging.Int("attached", result.Attached),
		logging.Bool("complete", result.Complete))
	return sess, result, nil
}
