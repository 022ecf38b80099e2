package workflow

import (
	"context"
	"errors"
	"log/slog"

	"pontolink/internal/config"
	"pontolink/internal/logging"
	"pontolink/internal/session"
)

// ErrNoSession indicates the store holds no snapshot to act on.
var ErrNoSession = errors.New("no saved session")

// Manager coordinates the matching pipeline against one config and store.
type Manager struct {
	cfg    *config.Config
	store  *session.Store
	logger *slog.Logger
}

// NewManager constructs a workflow manager. The store may be nil for
// dry runs that never persist.
func NewManager(cfg *config.Config, store *session.Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		store:  store,
		logger: logging.WithComponent(logger, "workflow"),
	}
}

// Latest loads the newest snapshot, or ErrNoSession when none exists.
func (m *Manager) Latest(ctx context.Context) (*session.Session, error) {
	if m.store == nil {
		return nil, ErrNoSession
	}
	sess, err := m.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (m *Manager) save(ctx context.Context, sess *session.Session) error {
	if m.store == nil {
		return nil
	}
	id, err := m.store.Save(ctx, sess)
	if err != nil {
		return err
	}
	m.logger.Debug("session snapshot saved",
		logging.Int("snapshot_id", int(id)),
		logging.String("session", sess.ID))
	return nil
}
