// Package classify aggregates per-candidate scores for one row into a final
// FOUND / AMBIGUOUS / NOT_FOUND / NO_QUERY decision.
package classify

import (
	"sort"

	"pontolink/internal/datevariant"
	"pontolink/internal/extract"
	"pontolink/internal/match"
	"pontolink/internal/scoring"
)

// Options holds the decision constants applied on top of raw scores.
type Options struct {
	Thresholds scoring.Thresholds
	// DecisiveScore is the score above which the best candidate wins outright
	// regardless of the runner-up.
	DecisiveScore float64
	// AmbiguityMargin is the minimum lead the best candidate needs over the
	// runner-up to be decisive. Closer races are deferred to a human or the
	// disambiguation oracle.
	AmbiguityMargin float64
	// MaxCandidates caps the ambiguous shortlist.
	MaxCandidates int
}

// DefaultOptions returns the tuned decision constants.
func DefaultOptions() Options {
	return Options{
		Thresholds:      scoring.DefaultThresholds(),
		DecisiveScore:   1.2,
		AmbiguityMargin: 0.1,
		MaxCandidates:   5,
	}
}

// Candidate pairs a file with its score for the duration of one run. Only the
// winning or shortlisted file identities survive into the row record.
type Candidate struct {
	File  *match.FileNode
	Score float64
}

// Outcome is the automatic decision for one row.
type Outcome struct {
	Status     match.Status
	Matched    *match.FileNode
	Candidates []*match.FileNode
}

// Classify scores every (query, file) pair for the row's reference against
// the candidate pool, deduplicates by file identity keeping the maximum
// score, ranks, and applies the decisive-score and winner-margin rules.
// Classification is deterministic: equal scores tie-break by path.
func Classify(ref extract.Reference, pool []*match.FileNode, opts Options) Outcome {
	if !ref.HasQueries() {
		return Outcome{Status: match.StatusNoQuery}
	}

	survivors := Rank(ref, pool, opts)
	if len(survivors) == 0 {
		return Outcome{Status: match.StatusNotFound}
	}

	best := survivors[0]
	decisive := best.Score > opts.DecisiveScore ||
		len(survivors) == 1 ||
		best.Score > survivors[1].Score+opts.AmbiguityMargin
	if decisive {
		return Outcome{Status: match.StatusFound, Matched: best.File}
	}

	limit := opts.MaxCandidates
	if limit <= 0 || limit > len(survivors) {
		limit = len(survivors)
	}
	shortlist := make([]*match.FileNode, 0, limit)
	for _, candidate := range survivors[:limit] {
		shortlist = append(shortlist, candidate.File)
	}
	return Outcome{Status: match.StatusAmbiguous, Candidates: shortlist}
}

// Rank returns every candidate scoring at or above the minimum, deduplicated
// by path with the maximum score kept, ordered best first with a stable
// path tie-break.
func Rank(ref extract.Reference, pool []*match.FileNode, opts Options) []Candidate {
	signals := datevariant.DigitSignals(ref.Dates)

	bestByPath := make(map[string]Candidate)
	for _, raw := range ref.Queries {
		query := scoring.NewQuery(raw)
		if query.Empty() {
			continue
		}
		for _, file := range pool {
			if file == nil {
				continue
			}
			score, ok := scoring.Score(query, signals, file.Name, opts.Thresholds)
			if !ok || score < opts.Thresholds.MinScore {
				continue
			}
			if existing, dup := bestByPath[file.Path]; !dup || score > existing.Score {
				bestByPath[file.Path] = Candidate{File: file, Score: score}
			}
		}
	}

	survivors := make([]Candidate, 0, len(bestByPath))
	for _, candidate := range bestByPath {
		survivors = append(survivors, candidate)
	}
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].Score != survivors[j].Score {
			return survivors[i].Score > survivors[j].Score
		}
		return survivors[i].File.Path < survivors[j].File.Path
	})
	return survivors
}

// NewRecord runs classification and packages the result as the row's
// resolution record.
func NewRecord(rowID int, targetFolder, content string, ref extract.Reference, pool []*match.FileNode, opts Options) *match.Record {
	outcome := Classify(ref, pool, opts)
	return &match.Record{
		RowID:           rowID,
		TargetFolder:    targetFolder,
		OriginalContent: content,
		Queries:         ref.Queries,
		Dates:           ref.Dates,
		Status:          outcome.Status,
		Matched:         outcome.Matched,
		Candidates:      outcome.Candidates,
	}
}
