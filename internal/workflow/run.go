package workflow

import (
	"context"
	"fmt"
	"os"
	"strings"

	"pontolink/internal/classify"
	"pontolink/internal/extract"
	"pontolink/internal/logging"
	"pontolink/internal/match"
	"pontolink/internal/scan"
	"pontolink/internal/session"
	"pontolink/internal/tabular"
)

// Run executes a fresh matching pass: read the workbook, enumerate the files
// root, classify every routed row, and persist the resulting session.
func (m *Manager) Run(ctx context.Context) (*session.Session, error) {
	grid, err := m.readWorkbook()
	if err != nil {
		return nil, err
	}

	table, err := m.cfg.RoutingTable()
	if err != nil {
		return nil, err
	}

	entries, err := scan.Enumerate(m.cfg.Paths.FilesRoot)
	if err != nil {
		return nil, fmt.Errorf("enumerate files root: %w", err)
	}
	pools := scan.Pool(m.cfg.Paths.FilesRoot, entries)
	m.logger.Info("candidate pools built",
		logging.Int("files", len(entries)),
		logging.Int("folders", len(pools)))

	// Routing labels come from config, pool labels from directory names.
	// Case differences between the two are operator noise, not data.
	folded := make(map[string][]*match.FileNode, len(pools))
	for label, pool := range pools {
		folded[strings.ToLower(label)] = pool
	}

	opts := m.cfg.ClassifyOptions()
	sess := session.New()
	sess.Grid = grid
	sess.Folders = pools

	for rowID := 1; rowID <= grid.Rows(); rowID++ {
		folder, ok := table.Folder(rowID)
		if !ok {
			continue
		}
		content := grid.Content(rowID)
		ref := extract.FromCell(content)
		pool := folded[strings.ToLower(folder)]
		record := classify.NewRecord(rowID, folder, content, ref, pool, opts)
		sess.Records = append(sess.Records, record)
		m.logger.Debug("row classified",
			logging.Int("row", rowID),
			logging.String("folder", folder),
			logging.String("status", string(record.Status)),
			logging.Int("queries", len(record.Queries)))
	}

	if err := m.save(ctx, sess); err != nil {
		return nil, err
	}

	sum := sess.Summarize()
	m.logger.Info("run complete",
		logging.Int("rows", sum.Total),
		logging.Int("found", sum.Found),
		logging.Int("ambiguous", sum.Ambiguous),
		logging.Int("not_found", sum.NotFound),
		logging.Int("no_query", sum.NoQuery))
	return sess, nil
}

func (m *Manager) readWorkbook() (tabular.Grid, error) {
	path := m.cfg.Paths.Workbook
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("paths.workbook not configured")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	grid, err := tabular.Read(file)
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", path, err)
	}
	return grid, nil
}
