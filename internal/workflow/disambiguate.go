package workflow

import (
	"context"
	"errors"
	"fmt"

	"pontolink/internal/logging"
	"pontolink/internal/match"
	"pontolink/internal/session"
)

// Chooser picks one candidate file name for an ambiguous row, or "" to
// decline. *oracle.Client satisfies it.
type Chooser interface {
	Choose(ctx context.Context, content string, candidates []string) (string, error)
}

// DisambiguationOutcome summarizes one oracle pass.
type DisambiguationOutcome struct {
	Considered int
	Applied    int
	Declined   int
	// Violations lists per-row oracle errors. They never abort the pass and
	// never mutate the row.
	Violations []error
}

// Disambiguate asks the chooser to settle every non-ignored AMBIGUOUS row of
// the newest session. An accepted answer becomes a validated manual
// resolution; anything else leaves the row untouched.
func (m *Manager) Disambiguate(ctx context.Context, chooser Chooser) (*session.Session, DisambiguationOutcome, error) {
	sess, err := m.Latest(ctx)
	if err != nil {
		return nil, DisambiguationOutcome{}, err
	}

	var outcome DisambiguationOutcome
	for _, record := range sess.Records {
		if record == nil || record.Status != match.StatusAmbiguous || record.Ignored {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, outcome, err
		}
		outcome.Considered++

		// The oracle speaks in file names, the engine's display convention.
		// Candidates are ordered best first, so a duplicated name resolves to
		// the best-ranked file carrying it.
		names := make([]string, 0, len(record.Candidates))
		byName := make(map[string]*match.FileNode, len(record.Candidates))
		for _, candidate := range record.Candidates {
			names = append(names, candidate.Name)
			if _, dup := byName[candidate.Name]; !dup {
				byName[candidate.Name] = candidate
			}
		}

		choice, err := chooser.Choose(ctx, record.OriginalContent, names)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, outcome, err
			}
			outcome.Violations = append(outcome.Violations, fmt.Errorf("row %d: %w", record.RowID, err))
			m.logger.Warn("oracle answer rejected",
				logging.Int("row", record.RowID),
				logging.Error(err))
			continue
		}
		if choice == "" {
			outcome.Declined++
			continue
		}

		chosen, ok := byName[choice]
		if !ok {
			outcome.Violations = append(outcome.Violations, fmt.Errorf("row %d: choice %q not in candidates", record.RowID, choice))
			continue
		}
		next, err := sess.Apply(session.ManualResolve{RowID: record.RowID, File: chosen})
		if err != nil {
			return nil, outcome, err
		}
		next, err = next.Apply(session.Validate{RowID: record.RowID})
		if err != nil {
			return nil, outcome, err
		}
		sess = next
		outcome.Applied++
		m.logger.Info("row disambiguated",
			logging.Int("row", record.RowID),
			logging.String("file", chosen.Path))
	}

	if outcome.Applied > 0 {
		if err := m.save(ctx, sess); err != nil {
			return nil, outcome, err
		}
	}
	return sess, outcome, nil
}
