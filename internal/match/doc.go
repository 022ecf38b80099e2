// Package match defines the core reconciliation types: file nodes discovered
// on disk, per-row resolution records, and the status lifecycle a row moves
// through between automatic classification and manual review.
package match
