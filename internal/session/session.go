// Package session holds the process-wide reconciliation state: the enumerated
// file pools, the ordered row resolution records, and the snapshot store that
// lets a session survive a save/reload boundary where file handles cannot.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pontolink/internal/match"
)

// Session is the top-level state owned by one run of the tool. Mutations go
// through Apply so state changes stay testable without any command layer.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Grid is the original tabular input, kept so a reloaded session can be
	// exported without re-reading the workbook.
	Grid [][]string

	// Folders maps folder labels to their candidate pools. Pools are rebuilt
	// on every enumeration, never serialized.
	Folders map[string][]*match.FileNode

	// Records is the ordered set of row resolution records.
	Records []*match.Record

	// Resumed marks that the records came from a reload rather than a fresh
	// run, so a new enumeration must reconcile instead of reset.
	Resumed bool
}

// New creates an empty session with a fresh identity.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Record returns the record for a 1-based row id.
func (s *Session) Record(rowID int) (*match.Record, bool) {
	for _, record := range s.Records {
		if record != nil && record.RowID == rowID {
			return record, true
		}
	}
	return nil, false
}

// Event is a state transition applied to a session. Events mutate a copied
// record inside a copied session, leaving the input session untouched.
type Event interface {
	apply(*Session) error
}

// ManualResolve records a user- or oracle-chosen file for a row.
type ManualResolve struct {
	RowID int
	File  *match.FileNode
}

// Validate promotes a row's manual selection to FOUND.
type Validate struct {
	RowID int
}

// ToggleIgnore flips a row's ignore flag.
type ToggleIgnore struct {
	RowID int
}

// Apply runs an event against a copy of the session and returns the new
// state. The receiver is never modified, which keeps transforms pure and
// unit-testable without a rendering layer.
func (s *Session) Apply(ev Event) (*Session, error) {
	next := s.clone()
	if err := ev.apply(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Session) clone() *Session {
	cp := *s
	cp.Records = make([]*match.Record, len(s.Records))
	for i, record := range s.Records {
		cp.Records[i] = record.Clone()
	}
	return &cp
}

func (ev ManualResolve) apply(s *Session) error {
	record, ok := s.Record(ev.RowID)
	if !ok {
		return fmt.Errorf("row %d: no record", ev.RowID)
	}
	if ev.File == nil {
		return fmt.Errorf("row %d: manual resolution requires a file", ev.RowID)
	}
	record.AddManualResolution(ev.File.Clone())
	return nil
}

func (ev Validate) apply(s *Session) error {
	record, ok := s.Record(ev.RowID)
	if !ok {
		return fmt.Errorf("row %d: no record", ev.RowID)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("row %d: %w", ev.RowID, err)
	}
	return nil
}

func (ev ToggleIgnore) apply(s *Session) error {
	record, ok := s.Record(ev.RowID)
	if !ok {
		return fmt.Errorf("row %d: no record", ev.RowID)
	}
	record.ToggleIgnore()
	return nil
}

// Summary aggregates per-status counts for presentation.
type Summary struct {
	Total     int
	Found     int
	Ambiguous int
	NotFound  int
	NoQuery   int
	Ignored   int
	Manual    int
}

// Summarize counts record states.
func (s *Session) Summarize() Summary {
	var sum Summary
	for _, record := range s.Records {
		if record == nil {
			continue
		}
		sum.Total++
		switch record.Status {
		case match.StatusFound:
			sum.Found++
		case match.StatusAmbiguous:
			sum.Ambiguous++
		case match.StatusNotFound:
			sum.NotFound++
		case match.StatusNoQuery:
			sum.NoQuery++
		}
		if record.Ignored {
			sum.Ignored++
		}
		if len(record.ManualResolutions) > 0 {
			sum.Manual++
		}
	}
	return sum
}

// Failures returns the NOT_FOUND records that are not ignored, the rows a
// failure report should list.
func (s *Session) Failures() []*match.Record {
	var failures []*match.Record
	for _, record := range s.Records {
		if record != nil && record.Status == match.StatusNotFound && !record.Ignored {
			failures = append(failures, record)
		}
	}
	return failures
}
