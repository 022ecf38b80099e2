package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"pontolink/internal/match"
	"pontolink/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.OpenStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveAndLatest(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if loaded, err := store.Latest(ctx); err != nil || loaded != nil {
		t.Fatalf("empty store should yield nil session, got %v, %v", loaded, err)
	}

	first := seeded()
	if _, err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := seeded()
	record, _ := second.Record(3)
	record.AddManualResolution(node("ponto 2/late.pdf"))
	id, err := store.Save(ctx, second)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected snapshot id")
	}

	loaded, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if loaded.ID != second.ID {
		t.Fatalf("Latest returned %s, want %s", loaded.ID, second.ID)
	}
	restored, _ := loaded.Record(3)
	if len(restored.ManualResolutions) != 1 {
		t.Fatalf("manual resolution lost across save/load: %+v", restored)
	}
	if restored.Status != match.StatusFound {
		t.Fatalf("reload must force FOUND for manual resolutions, got %s", restored.Status)
	}
}

func TestStoreList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	a := seeded()
	b := seeded()
	if _, err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(infos))
	}
	if infos[0].SessionUUID != b.ID {
		t.Fatalf("List must be newest first, got %s", infos[0].SessionUUID)
	}
}

func TestStoreLockExcludesSecondOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.db")
	store, err := session.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	if _, err := session.OpenStore(path); err == nil {
		t.Fatal("second open must fail while the lock is held")
	}
}
