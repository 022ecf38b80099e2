// Package tabular provides the engine's tabular input/output capability: a
// rectangular grid of cells read from and written back to CSV. Only the
// content column feeds the matching engine; results are written into the
// output column as hyperlink-bearing cells.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"pontolink/internal/match"
)

// ErrParse indicates the tabular input could not be read. The run aborts and
// control returns to the input stage.
var ErrParse = errors.New("parse tabular input")

const (
	// ContentColumn is the 0-based column whose cell text feeds extraction.
	ContentColumn = 2
	// OutputColumn is the 0-based column results are written to.
	OutputColumn = 3
)

// Grid is a rectangular cell grid. Row index + 1 is the engine's rowId.
type Grid [][]string

// Read parses a CSV stream into a grid. Rows may have ragged lengths; the
// grid keeps them as-is.
func Read(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Grid(rows), nil
}

// Write renders the grid back to CSV.
func Write(w io.Writer, g Grid) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(g); err != nil {
		return fmt.Errorf("write tabular output: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// Content returns the content cell for a 1-based row id, or "" when the row
// is short or absent.
func (g Grid) Content(rowID int) string {
	idx := rowID - 1
	if idx < 0 || idx >= len(g) {
		return ""
	}
	row := g[idx]
	if ContentColumn >= len(row) {
		return ""
	}
	return row[ContentColumn]
}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int { return len(g) }

// Markers used for rows without a clean resolution.
const (
	ambiguousMarker = "[AMBIGUOUS]"
	notFoundMarker  = "[NOT FOUND]"
	multiplePrefix  = "(Multiple)"
)

// ApplyResults writes each record's outcome into the output column of a copy
// of the grid:
//   - resolved rows get a hyperlink cell whose display text is the resolved
//     file name(s), prefixed "(Multiple)" when more than one, linking to the
//     first resolved file's relative path;
//   - AMBIGUOUS rows without a resolution get a flagged candidate listing;
//   - NOT_FOUND rows get a flagged failure marker;
//   - NO_QUERY rows and ignored rows, whatever their status, are left
//     untouched.
func ApplyResults(g Grid, records []*match.Record) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}

	for _, record := range records {
		cell, ok := resultCell(record)
		if !ok {
			continue
		}
		idx := record.RowID - 1
		if idx < 0 || idx >= len(out) {
			continue
		}
		for len(out[idx]) <= OutputColumn {
			out[idx] = append(out[idx], "")
		}
		out[idx][OutputColumn] = cell
	}
	return out
}

func resultCell(record *match.Record) (string, bool) {
	if record == nil || record.Ignored {
		return "", false
	}
	if resolved := record.ResolvedFiles(); len(resolved) > 0 {
		names := make([]string, 0, len(resolved))
		for _, node := range resolved {
			names = append(names, node.Name)
		}
		display := strings.Join(names, "; ")
		if len(resolved) > 1 {
			display = multiplePrefix + " " + display
		}
		return Hyperlink(resolved[0].Path, display), true
	}

	switch record.Status {
	case match.StatusAmbiguous:
		names := make([]string, 0, len(record.Candidates))
		for _, node := range record.Candidates {
			names = append(names, node.Name)
		}
		return ambiguousMarker + " " + strings.Join(names, "; "), true
	case match.StatusNotFound:
		return notFoundMarker, true
	default:
		// NO_QUERY rows write nothing.
		return "", false
	}
}

// Hyperlink renders a spreadsheet hyperlink formula cell.
func Hyperlink(target, display string) string {
	escape := strings.NewReplacer(`"`, `""`)
	return fmt.Sprintf(`=HYPERLINK("%s","%s")`, escape.Replace(target), escape.Replace(display))
}
