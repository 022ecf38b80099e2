// Package workflow drives the end-to-end reconciliation pipeline.
//
// The Manager reads the tabular workbook, enumerates the candidate file
// pools, classifies every routed row, and persists session snapshots. It also
// owns the resume path (reload newest snapshot, re-enumerate, re-attach
// handles) and the mutation helpers the commands build on (manual resolution,
// validation, ignore, oracle disambiguation, export).
package workflow
