package workflow

import (
	"context"
	"path"
	"path/filepath"

	"pontolink/internal/logging"
	"pontolink/internal/match"
	"pontolink/internal/session"
)

// Resolve records a manual resolution for a row on the newest session. The
// file path is relative to the files root, forward-slashed.
func (m *Manager) Resolve(ctx context.Context, rowID int, filePath string) (*session.Session, error) {
	node := &match.FileNode{
		Path: filepath.ToSlash(filePath),
		Name: path.Base(filepath.ToSlash(filePath)),
	}
	return m.applyEvent(ctx, session.ManualResolve{RowID: rowID, File: node})
}

// Validate promotes a row's manual resolution to FOUND.
func (m *Manager) Validate(ctx context.Context, rowID int) (*session.Session, error) {
	return m.applyEvent(ctx, session.Validate{RowID: rowID})
}

// ToggleIgnore flips a row's ignore flag.
func (m *Manager) ToggleIgnore(ctx context.Context, rowID int) (*session.Session, error) {
	return m.applyEvent(ctx, session.ToggleIgnore{RowID: rowID})
}

func (m *Manager) applyEvent(ctx context.Context, ev session.Event) (*session.Session, error) {
	sess, err := m.Latest(ctx)
	if err != nil {
		return nil, err
	}
	next, err := sess.Apply(ev)
	if err != nil {
		return nil, err
	}
	if err := m.save(ctx, next); err != nil {
		return nil, err
	}
	m.logger.Debug("session event applied", logging.Any("event", ev))
	return next, nil
}
