package reconcile_test

import (
	"io"
	"strings"
	"testing"

	"pontolink/internal/match"
	"pontolink/internal/reconcile"
)

type stubHandle struct{ id string }

func (h stubHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(h.id)), nil
}

func node(path string) *match.FileNode {
	return &match.FileNode{Path: path, Name: path}
}

func TestApplyAttachesByPath(t *testing.T) {
	rec := &match.Record{
		RowID:   1,
		Status:  match.StatusFound,
		Matched: node("ponto 1/a.pdf"),
	}
	handles := map[string]match.Handle{"ponto 1/a.pdf": stubHandle{"a"}}

	result := reconcile.Apply([]*match.Record{rec}, handles)
	if result.Attached != 1 {
		t.Fatalf("expected 1 attachment, got %d", result.Attached)
	}
	if rec.Matched.Handle == nil {
		t.Fatal("handle not attached")
	}
	if !result.Complete {
		t.Fatal("expected completion signal")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rec := &match.Record{
		RowID:      2,
		Status:     match.StatusAmbiguous,
		Candidates: []*match.FileNode{node("ponto 1/a.pdf"), node("ponto 1/b.pdf")},
	}
	handles := map[string]match.Handle{
		"ponto 1/a.pdf": stubHandle{"a"},
		"ponto 1/b.pdf": stubHandle{"b"},
	}

	first := reconcile.Apply([]*match.Record{rec}, handles)
	if first.Attached != 2 {
		t.Fatalf("expected 2 attachments, got %d", first.Attached)
	}
	attached := rec.Candidates[0].Handle

	second := reconcile.Apply([]*match.Record{rec}, handles)
	if second.Attached != 0 {
		t.Fatalf("second pass must attach nothing, got %d", second.Attached)
	}
	if rec.Candidates[0].Handle != attached {
		t.Fatal("an already-present handle was replaced")
	}
}

func TestApplyNeverReplacesHandles(t *testing.T) {
	existing := stubHandle{"original"}
	rec := &match.Record{
		RowID:   3,
		Status:  match.StatusFound,
		Matched: &match.FileNode{Path: "ponto 1/a.pdf", Handle: existing},
	}
	reconcile.Apply([]*match.Record{rec}, map[string]match.Handle{
		"ponto 1/a.pdf": stubHandle{"replacement"},
	})
	if rec.Matched.Handle != existing {
		t.Fatal("reconciliation must never replace an existing handle")
	}
}

func TestPartialReconciliationIsNotAnError(t *testing.T) {
	rec := &match.Record{
		RowID:             4,
		Status:            match.StatusFound,
		ManualResolutions: []*match.FileNode{node("ponto 2/missing.pdf")},
	}
	result := reconcile.Apply([]*match.Record{rec}, map[string]match.Handle{})
	if result.Attached != 0 {
		t.Fatalf("nothing should attach, got %d", result.Attached)
	}
	if result.Complete {
		t.Fatal("completion must not be signalled while handles are missing")
	}
	if rec.ManualResolutions[0].Handle != nil {
		t.Fatal("absent mapping entries must leave handles untouched")
	}
}

func TestCompleteIgnoresUnresolvedRecords(t *testing.T) {
	records := []*match.Record{
		{RowID: 1, Status: match.StatusNotFound},
		{RowID: 2, Status: match.StatusNoQuery},
	}
	if !reconcile.Complete(records) {
		t.Fatal("records without resolutions do not block completion")
	}
}
