package match

import (
	"errors"
	"io"
	"strings"
	"time"
)

// Status represents the classification outcome for a row.
type Status string

const (
	StatusFound     Status = "found"
	StatusNotFound  Status = "not_found"
	StatusAmbiguous Status = "ambiguous"
	StatusNoQuery   Status = "no_query"
)

var allStatuses = []Status{
	StatusFound,
	StatusNotFound,
	StatusAmbiguous,
	StatusNoQuery,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Handle is an ephemeral reference to file content. Handles are never
// serialized; after a session reload they are absent until reconciliation
// re-attaches them from a fresh enumeration.
type Handle interface {
	Open() (io.ReadCloser, error)
}

// FileNode identifies a file discovered during enumeration. Path is the sole
// identity key across the whole system; Name and LastModified are display
// attributes derived from the entry and never compared for identity.
type FileNode struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
	Handle       Handle    `json:"-"`
}

// SameFile reports whether two nodes identify the same physical file.
func (n *FileNode) SameFile(other *FileNode) bool {
	if n == nil || other == nil {
		return false
	}
	return n.Path == other.Path
}

// Clone returns a copy of the node. The handle is carried over as-is; it is
// shared, not duplicated.
func (n *FileNode) Clone() *FileNode {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}

// ErrNoManualResolution is returned when validating a record that has no
// manual selection to promote.
var ErrNoManualResolution = errors.New("record has no manual resolution")

// Record is the persisted unit of work for one spreadsheet row. It is created
// once by the classifier and afterwards mutated only by manual selection
// edits, validation, ignore toggling, and handle reconciliation. Re-running
// the engine on the same input is the only way to regenerate one.
type Record struct {
	RowID           int    `json:"row_id"`
	TargetFolder    string `json:"target_folder,omitempty"`
	OriginalContent string `json:"original_content"`

	Queries []string `json:"queries"`
	Dates   []string `json:"dates"`

	Status Status `json:"status"`

	// Matched is set only when the engine auto-decided FOUND.
	Matched *FileNode `json:"matched,omitempty"`

	// Candidates is populated only when the record was classified AMBIGUOUS,
	// ordered best first. It is retained after a later manual override so the
	// original shortlist stays available for audit and undo.
	Candidates []*FileNode `json:"candidates,omitempty"`

	// ManualResolutions holds user- or oracle-chosen overrides in selection
	// order. Empty when the automatic decision stands.
	ManualResolutions []*FileNode `json:"manual_resolutions,omitempty"`

	// Validated marks that a manual selection was promoted to FOUND.
	Validated bool `json:"validated,omitempty"`

	// Ignored excludes the row from failure reporting without deleting state.
	Ignored bool `json:"ignored,omitempty"`
}

// HasResolution reports whether the record points at any resolved file,
// either an automatic match or at least one manual selection.
func (r *Record) HasResolution() bool {
	return r != nil && (r.Matched != nil || len(r.ManualResolutions) > 0)
}

// ResolvedFiles returns the files the row resolves to: manual selections when
// present, otherwise the automatic match.
func (r *Record) ResolvedFiles() []*FileNode {
	if r == nil {
		return nil
	}
	if len(r.ManualResolutions) > 0 {
		return r.ManualResolutions
	}
	if r.Matched != nil {
		return []*FileNode{r.Matched}
	}
	return nil
}

// AddManualResolution appends a manual selection, skipping duplicates by
// path identity.
func (r *Record) AddManualResolution(node *FileNode) bool {
	if node == nil {
		return false
	}
	for _, existing := range r.ManualResolutions {
		if existing.SameFile(node) {
			return false
		}
	}
	r.ManualResolutions = append(r.ManualResolutions, node)
	return true
}

// RemoveManualResolution drops a manual selection by path. Removing the last
// selection from a validated record reverts Validated; the status is left for
// the caller to reconsider.
func (r *Record) RemoveManualResolution(path string) bool {
	for i, existing := range r.ManualResolutions {
		if existing != nil && existing.Path == path {
			r.ManualResolutions = append(r.ManualResolutions[:i], r.ManualResolutions[i+1:]...)
			if len(r.ManualResolutions) == 0 {
				r.Validated = false
			}
			return true
		}
	}
	return false
}

// Validate promotes the record's manual selection to a FOUND decision.
// Automatic FOUND records are never moved back by this path; validation only
// ever raises confidence.
func (r *Record) Validate() error {
	if len(r.ManualResolutions) == 0 {
		return ErrNoManualResolution
	}
	r.Validated = true
	r.Status = StatusFound
	return nil
}

// ToggleIgnore flips the ignore flag and returns the new value.
func (r *Record) ToggleIgnore() bool {
	r.Ignored = !r.Ignored
	return r.Ignored
}

// Clone returns a deep copy of the record. File nodes are cloned; handles are
// shared between the copies.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Queries = append([]string(nil), r.Queries...)
	cp.Dates = append([]string(nil), r.Dates...)
	cp.Matched = r.Matched.Clone()
	if len(r.Candidates) > 0 {
		cp.Candidates = make([]*FileNode, len(r.Candidates))
		for i, node := range r.Candidates {
			cp.Candidates[i] = node.Clone()
		}
	}
	if len(r.ManualResolutions) > 0 {
		cp.ManualResolutions = make([]*FileNode, len(r.ManualResolutions))
		for i, node := range r.ManualResolutions {
			cp.ManualResolutions[i] = node.Clone()
		}
	}
	return &cp
}
