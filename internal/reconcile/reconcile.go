// Package reconcile re-attaches live file handles to previously decided,
// handle-less records after a session reload. Reconciliation is the only
// writer of handles and only ever fills an absent one; decision state is
// never touched. Partial reconciliation is expected and valid: the user may
// not have re-supplied every folder yet.
package reconcile

import (
	"pontolink/internal/match"
)

// Result summarizes one reconciliation pass.
type Result struct {
	// Attached counts handles newly attached in this pass.
	Attached int
	// Complete reports that every record with at least one resolved file now
	// has handles on all of its resolved files, so viewing results is
	// meaningful.
	Complete bool
}

// Apply walks the records and attaches a handle wherever a node's path exists
// in the mapping and no handle is present yet. Applying the same mapping
// twice yields the same record set as applying it once.
func Apply(records []*match.Record, handles map[string]match.Handle) Result {
	var result Result
	for _, record := range records {
		if record == nil {
			continue
		}
		result.Attached += attach(record.Matched, handles)
		for _, node := range record.Candidates {
			result.Attached += attach(node, handles)
		}
		for _, node := range record.ManualResolutions {
			result.Attached += attach(node, handles)
		}
	}
	result.Complete = Complete(records)
	return result
}

func attach(node *match.FileNode, handles map[string]match.Handle) int {
	if node == nil || node.Handle != nil {
		return 0
	}
	handle, ok := handles[node.Path]
	if !ok || handle == nil {
		return 0
	}
	node.Handle = handle
	return 1
}

// Complete reports whether every record with a resolution carries handles on
// all of its resolved files.
func Complete(records []*match.Record) bool {
	for _, record := range records {
		if record == nil || !record.HasResolution() {
			continue
		}
		for _, node := range record.ResolvedFiles() {
			if node.Handle == nil {
				return false
			}
		}
	}
	return true
}
