package session_test

import (
	"io"
	"strings"
	"testing"
	"time"

	"pontolink/internal/match"
	"pontolink/internal/session"
)

type stubHandle struct{}

func (stubHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func node(path string) *match.FileNode {
	return &match.FileNode{Path: path, Name: path, LastModified: time.Unix(100, 0).UTC()}
}

func seeded() *session.Session {
	s := session.New()
	s.Records = []*match.Record{
		{RowID: 1, Status: match.StatusFound, Matched: node("ponto 1/a.pdf")},
		{RowID: 2, Status: match.StatusAmbiguous, Candidates: []*match.FileNode{node("ponto 1/b.pdf"), node("ponto 1/c.pdf")}},
		{RowID: 3, Status: match.StatusNotFound},
		{RowID: 4, Status: match.StatusNoQuery},
	}
	return s
}

func TestApplyLeavesOriginalUntouched(t *testing.T) {
	s := seeded()
	next, err := s.Apply(session.ManualResolve{RowID: 2, File: node("ponto 1/b.pdf")})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	original, _ := s.Record(2)
	if len(original.ManualResolutions) != 0 {
		t.Fatal("event application must not mutate the input session")
	}
	updated, _ := next.Record(2)
	if len(updated.ManualResolutions) != 1 {
		t.Fatalf("expected manual resolution on the new session, got %+v", updated)
	}
}

func TestValidateEventPromotesToFound(t *testing.T) {
	s := seeded()
	s2, err := s.Apply(session.ManualResolve{RowID: 3, File: node("ponto 2/x.pdf")})
	if err != nil {
		t.Fatalf("ManualResolve failed: %v", err)
	}
	s3, err := s2.Apply(session.Validate{RowID: 3})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	record, _ := s3.Record(3)
	if record.Status != match.StatusFound || !record.Validated {
		t.Fatalf("expected validated FOUND record, got %+v", record)
	}
}

func TestValidateEventWithoutManualFails(t *testing.T) {
	s := seeded()
	if _, err := s.Apply(session.Validate{RowID: 3}); err == nil {
		t.Fatal("validating without a manual resolution must fail")
	}
}

func TestEventsRejectUnknownRows(t *testing.T) {
	s := seeded()
	if _, err := s.Apply(session.ToggleIgnore{RowID: 99}); err == nil {
		t.Fatal("expected error for unknown row")
	}
}

func TestSummarize(t *testing.T) {
	s := seeded()
	s.Records[2].Ignored = true
	sum := s.Summarize()
	if sum.Total != 4 || sum.Found != 1 || sum.Ambiguous != 1 || sum.NotFound != 1 || sum.NoQuery != 1 || sum.Ignored != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestFailuresSkipIgnoredRows(t *testing.T) {
	s := seeded()
	if failures := s.Failures(); len(failures) != 1 || failures[0].RowID != 3 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	next, err := s.Apply(session.ToggleIgnore{RowID: 3})
	if err != nil {
		t.Fatalf("ToggleIgnore failed: %v", err)
	}
	if failures := next.Failures(); len(failures) != 0 {
		t.Fatalf("ignored rows must not appear in failures: %+v", failures)
	}
}
