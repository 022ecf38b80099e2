package workflow

import (
	"fmt"
	"io"

	"pontolink/internal/session"
	"pontolink/internal/tabular"
)

// Export writes the session's grid with the resolution column filled in.
func (m *Manager) Export(w io.Writer, sess *session.Session) error {
	if sess == nil {
		return ErrNoSession
	}
	out := tabular.ApplyResults(sess.Grid, sess.Records)
	if err := tabular.Write(w, out); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
