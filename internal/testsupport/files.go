package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteFile creates path with the given content, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCandidates creates empty candidate files under root, one relative path
// per entry. Paths use forward slashes.
func WriteCandidates(t testing.TB, root string, relPaths ...string) {
	t.Helper()

	for _, rel := range relPaths {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), "x")
	}
}

// WriteWorkbook writes a CSV workbook where each entry becomes one row with
// the reference text in the third column.
func WriteWorkbook(t testing.TB, path string, cells ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for i, cell := range cells {
		if err := writer.Write([]string{strconv.Itoa(i + 1), "ref", cell}); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush workbook: %v", err)
	}
}
