package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"pontolink/internal/scan"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte("content"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEnumerateAndPool(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Ponto 1/Relatorio_Final.pdf")
	writeFile(t, root, "Ponto 1/sub/Mapa.pdf")
	writeFile(t, root, "PONTO 2/Ata.pdf")
	writeFile(t, root, "avulso/Notas.txt")
	writeFile(t, root, ".hidden/Secreto.pdf")

	entries, err := scan.Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 visible files, got %d: %+v", len(entries), entries)
	}

	pools := scan.Pool(root, entries)
	if len(pools["Ponto 1"]) != 2 {
		t.Fatalf("Ponto 1 pool wrong: %+v", pools["Ponto 1"])
	}
	if len(pools["PONTO 2"]) != 1 {
		t.Fatalf("PONTO 2 pool wrong: %+v", pools["PONTO 2"])
	}
	if _, ok := pools["avulso"]; ok {
		t.Fatal("files outside a ponto segment must not be pooled")
	}

	node := pools["Ponto 1"][0]
	if node.Handle == nil {
		t.Fatal("pool nodes must carry handles")
	}
	rc, err := node.Handle.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	rc.Close()
}

func TestFolderLabel(t *testing.T) {
	cases := []struct {
		path  string
		label string
		ok    bool
	}{
		{"Ponto 1/a.pdf", "Ponto 1", true},
		{"x/ponto 12b/deep/a.pdf", "ponto 12b", true},
		{"Ponto /a.pdf", "", false},
		{"Pontos 1/a.pdf", "", false},
		{"a.pdf", "", false},
	}
	for _, tc := range cases {
		label, ok := scan.FolderLabel(tc.path)
		if ok != tc.ok || label != tc.label {
			t.Errorf("FolderLabel(%q) = %q, %v; want %q, %v", tc.path, label, ok, tc.label, tc.ok)
		}
	}
}

func TestHandlesMapping(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Ponto 1/a.pdf")
	entries, err := scan.Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	handles := scan.Handles(root, entries)
	if _, ok := handles["Ponto 1/a.pdf"]; !ok {
		t.Fatalf("expected handle keyed by relative path, got %v", handles)
	}
}
