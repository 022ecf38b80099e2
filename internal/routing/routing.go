// Package routing maps spreadsheet rows to target folder labels through a
// static table of inclusive row ranges. Routing is a pure lookup, independent
// of the matching engine.
package routing

import (
	"fmt"
	"sort"
	"strings"
)

// Range maps an inclusive span of 1-based row indices to a folder label.
type Range struct {
	First  int
	Last   int
	Folder string
}

// Table resolves rows to folder labels.
type Table struct {
	ranges []Range
}

// New validates and builds a routing table. Ranges must have positive bounds,
// First <= Last, a non-empty folder label, and must not overlap.
func New(ranges []Range) (*Table, error) {
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	sort.Slice(cp, func(i, j int) bool { return cp[i].First < cp[j].First })

	for i, r := range cp {
		if r.First <= 0 || r.Last <= 0 {
			return nil, fmt.Errorf("routing range %d-%d: bounds must be positive", r.First, r.Last)
		}
		if r.First > r.Last {
			return nil, fmt.Errorf("routing range %d-%d: first exceeds last", r.First, r.Last)
		}
		if strings.TrimSpace(r.Folder) == "" {
			return nil, fmt.Errorf("routing range %d-%d: folder label required", r.First, r.Last)
		}
		if i > 0 && r.First <= cp[i-1].Last {
			return nil, fmt.Errorf("routing range %d-%d overlaps %d-%d", r.First, r.Last, cp[i-1].First, cp[i-1].Last)
		}
	}
	return &Table{ranges: cp}, nil
}

// Folder returns the folder label for a 1-based row index.
func (t *Table) Folder(row int) (string, bool) {
	if t == nil {
		return "", false
	}
	idx := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].Last >= row })
	if idx < len(t.ranges) && t.ranges[idx].First <= row && row <= t.ranges[idx].Last {
		return t.ranges[idx].Folder, true
	}
	return "", false
}

// Len returns the number of configured ranges.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ranges)
}
