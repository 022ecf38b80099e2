package report_test

import (
	"strings"
	"testing"

	"pontolink/internal/match"
	"pontolink/internal/report"
	"pontolink/internal/session"
)

func record(rowID int, status match.Status) *match.Record {
	return &match.Record{
		RowID:        rowID,
		TargetFolder: "Ponto 1",
		Queries:      []string{"relatorio final"},
		Status:       status,
	}
}

func TestRecordsIncludesEachRow(t *testing.T) {
	found := record(1, match.StatusFound)
	found.Matched = &match.FileNode{Path: "a/relatorio.pdf", Name: "relatorio.pdf"}
	records := []*match.Record{found, record(2, match.StatusNotFound)}

	out := report.Records(records, false)
	for _, want := range []string{"Row", "relatorio.pdf", "FOUND", "NOT_FOUND", "Ponto 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFailuresSkipsResolvedAndIgnored(t *testing.T) {
	ambiguous := record(3, match.StatusAmbiguous)
	ambiguous.Candidates = []*match.FileNode{
		{Path: "a/v1.pdf", Name: "v1.pdf"},
		{Path: "a/v2.pdf", Name: "v2.pdf"},
	}
	ignored := record(4, match.StatusNotFound)
	ignored.Ignored = true
	records := []*match.Record{record(1, match.StatusFound), ambiguous, ignored}

	out := report.Failures(records, false)
	if !strings.Contains(out, "v1.pdf") || !strings.Contains(out, "v2.pdf") {
		t.Fatalf("candidates missing from failures:\n%s", out)
	}
	if !strings.Contains(out, "AMBIGUOUS") {
		t.Fatalf("ambiguous row missing from failures:\n%s", out)
	}
	// Row 1 resolved and row 4 ignored; neither may appear, so the only
	// status in the table is AMBIGUOUS.
	if strings.Contains(out, "FOUND") {
		t.Fatalf("resolved and ignored rows must be excluded:\n%s", out)
	}
}

func TestSummaryCounts(t *testing.T) {
	out := report.Summary(session.Summary{Total: 7, Found: 4, Ambiguous: 1, NotFound: 1, NoQuery: 1})
	for _, want := range []string{"Total rows", "7", "Found", "4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStatusColorization(t *testing.T) {
	out := report.Records([]*match.Record{record(1, match.StatusFound)}, true)
	if !strings.Contains(out, "\x1b[32m") {
		t.Fatalf("expected green FOUND status:\n%q", out)
	}
	plain := report.Records([]*match.Record{record(1, match.StatusFound)}, false)
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("colorize=false must not emit ANSI codes:\n%q", plain)
	}
}
