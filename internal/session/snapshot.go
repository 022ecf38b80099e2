package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pontolink/internal/match"
)

// ErrDecode indicates a serialized session could not be reconstructed. The
// load action fails; previous in-memory state is preserved by the caller.
var ErrDecode = errors.New("decode session snapshot")

// snapshotVersion is the current snapshot payload version. Version 1 payloads
// carried a singular manual_resolution field on records; loading migrates
// them to the list form.
const snapshotVersion = 2

type snapshotJSON struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Grid      [][]string   `json:"grid,omitempty"`
	Records   []recordJSON `json:"records"`
}

// recordJSON mirrors match.Record for serialization, plus the legacy singular
// manual-resolution field old snapshots carried. Handles are dropped on the
// way out because FileNode excludes them from JSON.
type recordJSON struct {
	RowID           int               `json:"row_id"`
	TargetFolder    string            `json:"target_folder,omitempty"`
	OriginalContent string            `json:"original_content"`
	Queries         []string          `json:"queries"`
	Dates           []string          `json:"dates"`
	Status          string            `json:"status"`
	Matched         *match.FileNode   `json:"matched,omitempty"`
	Candidates      []*match.FileNode `json:"candidates,omitempty"`
	Manual          []*match.FileNode `json:"manual_resolutions,omitempty"`
	Validated       bool              `json:"validated,omitempty"`
	Ignored         bool              `json:"ignored,omitempty"`

	// LegacyManual is the pre-list singular override field.
	LegacyManual *match.FileNode `json:"manual_resolution,omitempty"`
}

// MarshalSnapshot serializes the session's persistable subset: everything
// except file handles and the transient folder pools.
func (s *Session) MarshalSnapshot() ([]byte, error) {
	snap := snapshotJSON{
		Version:   snapshotVersion,
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Grid:      s.Grid,
		Records:   make([]recordJSON, 0, len(s.Records)),
	}
	for _, record := range s.Records {
		if record == nil {
			continue
		}
		snap.Records = append(snap.Records, recordJSON{
			RowID:           record.RowID,
			TargetFolder:    record.TargetFolder,
			OriginalContent: record.OriginalContent,
			Queries:         record.Queries,
			Dates:           record.Dates,
			Status:          string(record.Status),
			Matched:         record.Matched,
			Candidates:      record.Candidates,
			Manual:          record.ManualResolutions,
			Validated:       record.Validated,
			Ignored:         record.Ignored,
		})
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal session snapshot: %w", err)
	}
	return data, nil
}

// LoadSnapshot reconstructs a session from serialized bytes. Records arrive
// without handles; reconciliation re-attaches them later. Legacy singular
// manual-resolution fields are migrated to the list form, and any record left
// with manual resolutions is forced to FOUND.
func LoadSnapshot(data []byte) (*Session, error) {
	var snap snapshotJSON
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrDecode)
	}

	s := &Session{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		Grid:      snap.Grid,
		Records:   make([]*match.Record, 0, len(snap.Records)),
		Resumed:   true,
	}
	for _, raw := range snap.Records {
		record, err := restoreRecord(raw)
		if err != nil {
			return nil, err
		}
		s.Records = append(s.Records, record)
	}
	return s, nil
}

func restoreRecord(raw recordJSON) (*match.Record, error) {
	status, ok := match.ParseStatus(raw.Status)
	if !ok {
		return nil, fmt.Errorf("%w: row %d has unknown status %q", ErrDecode, raw.RowID, raw.Status)
	}
	record := &match.Record{
		RowID:             raw.RowID,
		TargetFolder:      raw.TargetFolder,
		OriginalContent:   raw.OriginalContent,
		Queries:           raw.Queries,
		Dates:             raw.Dates,
		Status:            status,
		Matched:           raw.Matched,
		Candidates:        raw.Candidates,
		ManualResolutions: raw.Manual,
		Validated:         raw.Validated,
		Ignored:           raw.Ignored,
	}
	migrateLegacyManual(record, raw.LegacyManual)
	return record, nil
}

// migrateLegacyManual is the one-shot version 1 migration: promote the
// singular override field into the list, then enforce the invariant that a
// record carrying manual resolutions reads as FOUND.
func migrateLegacyManual(record *match.Record, legacy *match.FileNode) {
	if legacy != nil && len(record.ManualResolutions) == 0 {
		record.ManualResolutions = []*match.FileNode{legacy}
		record.Validated = true
	}
	if len(record.ManualResolutions) > 0 {
		record.Status = match.StatusFound
	}
}
