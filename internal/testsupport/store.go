package testsupport

import (
	"testing"

	"pontolink/internal/session"
)

// MustOpenStore opens a session store for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *session.Store {
	t.Helper()

	store, err := session.OpenStore(path)
	if err != nil {
		t.Fatalf("session.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
