// Package report renders session state as terminal tables.
package report

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"pontolink/internal/match"
	"pontolink/internal/session"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// ShouldColorize reports whether w is an interactive terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Records renders one row per resolution record.
func Records(records []*match.Record, colorize bool) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(record.RowID),
			record.TargetFolder,
			strings.Join(record.Queries, "; "),
			statusCell(record, colorize),
			resolutionCell(record),
		})
	}
	return renderTable(
		[]string{"Row", "Folder", "Queries", "Status", "Resolution"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

// Failures renders the rows that still need attention, with their retained
// candidates so the operator can resolve them by hand.
func Failures(records []*match.Record, colorize bool) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if record == nil || record.Ignored {
			continue
		}
		switch record.Status {
		case match.StatusNotFound, match.StatusAmbiguous:
		default:
			continue
		}
		candidates := make([]string, 0, len(record.Candidates))
		for _, c := range record.Candidates {
			candidates = append(candidates, c.Name)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.RowID),
			record.TargetFolder,
			strings.Join(record.Queries, "; "),
			statusCell(record, colorize),
			strings.Join(candidates, "\n"),
		})
	}
	return renderTable(
		[]string{"Row", "Folder", "Queries", "Status", "Candidates"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

// Summary renders the per-status counts of a session.
func Summary(sum session.Summary) string {
	rows := [][]string{
		{"Total rows", strconv.Itoa(sum.Total)},
		{"Found", strconv.Itoa(sum.Found)},
		{"Ambiguous", strconv.Itoa(sum.Ambiguous)},
		{"Not found", strconv.Itoa(sum.NotFound)},
		{"No query", strconv.Itoa(sum.NoQuery)},
		{"Ignored", strconv.Itoa(sum.Ignored)},
		{"Manually resolved", strconv.Itoa(sum.Manual)},
	}
	return renderTable([]string{"Metric", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func statusCell(record *match.Record, colorize bool) string {
	label := strings.ToUpper(string(record.Status))
	if record.Ignored {
		label += " (ignored)"
	}
	if !colorize {
		return label
	}
	switch record.Status {
	case match.StatusFound:
		return ansiGreen + label + ansiReset
	case match.StatusAmbiguous:
		return ansiYellow + label + ansiReset
	case match.StatusNotFound:
		return ansiRed + label + ansiReset
	default:
		return label
	}
}

func resolutionCell(record *match.Record) string {
	files := record.ResolvedFiles()
	if len(files) == 0 {
		return ""
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}
	return strings.Join(names, "; ")
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
