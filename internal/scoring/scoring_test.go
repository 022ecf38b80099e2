package scoring_test

import (
	"math"
	"testing"

	"pontolink/internal/datevariant"
	"pontolink/internal/scoring"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreSkipsWithoutTokenOverlap(t *testing.T) {
	q := scoring.NewQuery("Relatório Final")
	if _, ok := scoring.Score(q, nil, "Orcamento_2020.xlsx", scoring.DefaultThresholds()); ok {
		t.Fatal("candidate without token overlap must be skipped")
	}
}

func TestScoreEmptyQuery(t *testing.T) {
	q := scoring.NewQuery("de da do")
	if !q.Empty() {
		t.Fatal("stop-word-only query should normalize to empty")
	}
	if _, ok := scoring.Score(q, nil, "anything.pdf", scoring.DefaultThresholds()); ok {
		t.Fatal("empty query must not score")
	}
}

func TestScoreCoverageTakesTheBetterDirection(t *testing.T) {
	th := scoring.DefaultThresholds()

	// Short query fully inside a long filename: query coverage wins.
	q := scoring.NewQuery("Mapa")
	got, ok := scoring.Score(q, nil, "Mapa_Geral_Zona_Norte_Revisto", th)
	if !ok {
		t.Fatal("expected a score")
	}
	// Base 1.0 plus the contiguous-sequence boost.
	if !almostEqual(got, 1.0+th.SequenceBoost) {
		t.Fatalf("score = %v", got)
	}

	// Long query mostly reproduced in a short filename: file coverage wins.
	q = scoring.NewQuery("Mapa Geral Zona Norte Revisto Anexo Extra")
	got, ok = scoring.Score(q, nil, "Mapa_Geral", th)
	if !ok {
		t.Fatal("expected a score")
	}
	if !almostEqual(got, 1.0) {
		t.Fatalf("score = %v", got)
	}
}

func TestDateBoost(t *testing.T) {
	th := scoring.DefaultThresholds()
	q := scoring.NewQuery("Relatório Final")
	signals := datevariant.DigitSignals([]string{"20/04/2010"})

	with, ok := scoring.Score(q, signals, "RE_Relatorio_Final_20042010.pdf", th)
	if !ok {
		t.Fatal("expected a score")
	}
	without, ok := scoring.Score(q, nil, "RE_Relatorio_Final_20042010.pdf", th)
	if !ok {
		t.Fatal("expected a score")
	}
	if !almostEqual(with-without, th.DateBoost) {
		t.Fatalf("date boost = %v, want %v", with-without, th.DateBoost)
	}
	if with <= 1.2 {
		t.Fatalf("boosted dated match should be decisive, got %v", with)
	}
}

func TestExtensionBoost(t *testing.T) {
	th := scoring.DefaultThresholds()
	q := scoring.NewQuery("Relatorio Final.pdf")
	with, ok := scoring.Score(q, nil, "Relatorio_Final.pdf", th)
	if !ok {
		t.Fatal("expected a score")
	}
	q2 := scoring.NewQuery("Relatorio Final")
	without, ok := scoring.Score(q2, nil, "Relatorio_Final.pdf", th)
	if !ok {
		t.Fatal("expected a score")
	}
	if with <= without {
		t.Fatalf("matching extension must add a boost: %v vs %v", with, without)
	}
}

func TestShortExtensionDoesNotBoost(t *testing.T) {
	th := scoring.DefaultThresholds()
	with, ok := scoring.Score(scoring.NewQuery("Relatorio.gz"), nil, "Relatorio.gz", th)
	if !ok {
		t.Fatal("expected a score")
	}
	// Base 1.0 plus the sequence boost; a two-character suffix is ignored.
	if !almostEqual(with, 1.0+th.SequenceBoost) {
		t.Fatalf("score = %v", with)
	}
}

func TestScoresMayExceedOne(t *testing.T) {
	th := scoring.DefaultThresholds()
	q := scoring.NewQuery("Relatorio Final 20042010.pdf")
	signals := datevariant.DigitSignals([]string{"20/04/2010"})
	got, ok := scoring.Score(q, signals, "Relatorio_Final_20042010.pdf", th)
	if !ok {
		t.Fatal("expected a score")
	}
	if got <= 1.2 {
		t.Fatalf("stacked boosts should exceed the decisive threshold, got %v", got)
	}
}
