package classify_test

import (
	"reflect"
	"testing"

	"pontolink/internal/classify"
	"pontolink/internal/extract"
	"pontolink/internal/match"
)

func file(path string) *match.FileNode {
	return &match.FileNode{Path: path, Name: pathBase(path)}
}

func pathBase(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func pool(paths ...string) []*match.FileNode {
	nodes := make([]*match.FileNode, 0, len(paths))
	for _, p := range paths {
		nodes = append(nodes, file(p))
	}
	return nodes
}

func TestClassifyNoQuery(t *testing.T) {
	ref := extract.FromCell("relatorio enviado em 20/04/2010")
	outcome := classify.Classify(ref, pool("ponto 1/Relatorio_20042010.pdf"), classify.DefaultOptions())
	if outcome.Status != match.StatusNoQuery {
		t.Fatalf("dates alone must not trigger a search, got %s", outcome.Status)
	}
}

func TestClassifyNotFound(t *testing.T) {
	ref := extract.FromCell(`"Relatório Final"`)
	outcome := classify.Classify(ref, pool("ponto 1/Orcamento_2020.xlsx"), classify.DefaultOptions())
	if outcome.Status != match.StatusNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", outcome.Status)
	}
}

func TestClassifyDatedMatchIsDecisive(t *testing.T) {
	ref := extract.FromCell(`Email "Relatório Final" de 20/04/2010`)
	if !reflect.DeepEqual(ref.Queries, []string{"Relatório Final"}) {
		t.Fatalf("unexpected queries: %v", ref.Queries)
	}
	if !reflect.DeepEqual(ref.Dates, []string{"20/04/2010"}) {
		t.Fatalf("unexpected dates: %v", ref.Dates)
	}

	candidates := pool(
		"ponto 1/RE_Relatorio_Final_20042010.pdf",
		"ponto 1/Relatorio_Final_v1.pdf",
	)
	outcome := classify.Classify(ref, candidates, classify.DefaultOptions())
	if outcome.Status != match.StatusFound {
		t.Fatalf("expected FOUND, got %s", outcome.Status)
	}
	if outcome.Matched == nil || outcome.Matched.Path != "ponto 1/RE_Relatorio_Final_20042010.pdf" {
		t.Fatalf("wrong winner: %+v", outcome.Matched)
	}
}

func TestClassifyCloseScoresAreAmbiguous(t *testing.T) {
	ref := extract.FromCell(`Email "Relatório Final" de 20/04/2010`)
	candidates := pool(
		"ponto 1/Relatorio_Final_v2.pdf",
		"ponto 1/Relatorio_Final_v1.pdf",
	)
	outcome := classify.Classify(ref, candidates, classify.DefaultOptions())
	if outcome.Status != match.StatusAmbiguous {
		t.Fatalf("expected AMBIGUOUS, got %s", outcome.Status)
	}
	if len(outcome.Candidates) != 2 {
		t.Fatalf("expected both candidates shortlisted, got %d", len(outcome.Candidates))
	}
	// Equal scores tie-break by path, so the order is stable across runs.
	if outcome.Candidates[0].Path != "ponto 1/Relatorio_Final_v1.pdf" {
		t.Fatalf("tie-break is not stable: %s first", outcome.Candidates[0].Path)
	}
}

func TestClassifySingleSurvivorIsFound(t *testing.T) {
	ref := extract.FromCell(`"Mapa Geral"`)
	outcome := classify.Classify(ref, pool("ponto 2/Mapa_Geral.pdf"), classify.DefaultOptions())
	if outcome.Status != match.StatusFound {
		t.Fatalf("a lone survivor is decisive, got %s", outcome.Status)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	ref := extract.FromCell(`"Relatório Final"`)
	candidates := pool(
		"ponto 1/Relatorio_Final_v3.pdf",
		"ponto 1/Relatorio_Final_v1.pdf",
		"ponto 1/Relatorio_Final_v2.pdf",
	)
	first := classify.Classify(ref, candidates, classify.DefaultOptions())
	for i := 0; i < 10; i++ {
		again := classify.Classify(ref, candidates, classify.DefaultOptions())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("classification is not reproducible: %+v vs %+v", first, again)
		}
	}
}

func TestRankDeduplicatesByPathKeepingMax(t *testing.T) {
	// Two queries hit the same file; the kept score must be the maximum.
	ref := extract.Reference{Queries: []string{"Mapa", "Mapa Geral Zona Norte"}}
	candidates := pool("ponto 1/Mapa_Geral_Zona_Norte.pdf")
	ranked := classify.Rank(ref, candidates, classify.DefaultOptions())
	if len(ranked) != 1 {
		t.Fatalf("expected one deduplicated candidate, got %d", len(ranked))
	}
	// The longer query covers all of its tokens: base 1.0 plus sequence boost.
	if ranked[0].Score < 1.0 {
		t.Fatalf("dedup kept a lower score: %v", ranked[0].Score)
	}
}

func TestClassifyCapsShortlist(t *testing.T) {
	ref := extract.FromCell(`"Relatório Final"`)
	candidates := pool(
		"ponto 1/Relatorio_Final_v1.pdf",
		"ponto 1/Relatorio_Final_v2.pdf",
		"ponto 1/Relatorio_Final_v3.pdf",
		"ponto 1/Relatorio_Final_v4.pdf",
		"ponto 1/Relatorio_Final_v5.pdf",
		"ponto 1/Relatorio_Final_v6.pdf",
		"ponto 1/Relatorio_Final_v7.pdf",
	)
	outcome := classify.Classify(ref, candidates, classify.DefaultOptions())
	if outcome.Status != match.StatusAmbiguous {
		t.Fatalf("expected AMBIGUOUS, got %s", outcome.Status)
	}
	if len(outcome.Candidates) != 5 {
		t.Fatalf("shortlist must be capped at 5, got %d", len(outcome.Candidates))
	}
}

func TestNewRecordCarriesExtraction(t *testing.T) {
	ref := extract.FromCell(`Email "Relatório Final" de 20/04/2010`)
	rec := classify.NewRecord(12, "Ponto 3", `Email "Relatório Final" de 20/04/2010`, ref,
		pool("ponto 3/RE_Relatorio_Final_20042010.pdf"), classify.DefaultOptions())
	if rec.RowID != 12 || rec.TargetFolder != "Ponto 3" {
		t.Fatalf("record identity wrong: %+v", rec)
	}
	if rec.Status != match.StatusFound {
		t.Fatalf("expected FOUND, got %s", rec.Status)
	}
	if len(rec.Queries) != 1 || len(rec.Dates) != 1 {
		t.Fatalf("extraction not carried: %+v", rec)
	}
}
