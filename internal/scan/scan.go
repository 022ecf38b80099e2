// Package scan enumerates candidate files under a root directory and groups
// them into folder-labelled pools. Only entries living under a "ponto"
// segment (case-insensitive, followed by an identifier) are considered; the
// matched segment string is the pool's folder label.
package scan

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pontolink/internal/match"
)

// Entry is one enumerated file: a stable relative path, a display name, and
// the modification time. Paths always use forward slashes.
type Entry struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Enumerate walks root and returns every regular file as an Entry. Hidden
// files and directories (dot-prefixed) are skipped.
func Enumerate(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Path:    filepath.ToSlash(rel),
			Name:    name,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return entries, nil
}

// FolderLabel returns the "ponto" segment of a relative path, when present.
// The match is case-insensitive and requires a trailing identifier after the
// space; the returned label is the segment exactly as it appears on disk.
func FolderLabel(path string) (string, bool) {
	for _, segment := range strings.Split(path, "/") {
		lowered := strings.ToLower(segment)
		if strings.HasPrefix(lowered, "ponto ") && len(segment) > len("ponto ") {
			return segment, true
		}
	}
	return "", false
}

// Pool groups enumerated entries by folder label, attaching an open-handle
// rooted at root to every node. Entries outside a labelled folder are
// dropped.
func Pool(root string, entries []Entry) map[string][]*match.FileNode {
	pools := make(map[string][]*match.FileNode)
	for _, entry := range entries {
		label, ok := FolderLabel(entry.Path)
		if !ok {
			continue
		}
		pools[label] = append(pools[label], &match.FileNode{
			Path:         entry.Path,
			Name:         entry.Name,
			LastModified: entry.ModTime,
			Handle:       NewHandle(root, entry.Path),
		})
	}
	return pools
}

// Handles returns the path-to-handle mapping for a fresh enumeration, the
// input reconciliation consumes.
func Handles(root string, entries []Entry) map[string]match.Handle {
	handles := make(map[string]match.Handle, len(entries))
	for _, entry := range entries {
		handles[entry.Path] = NewHandle(root, entry.Path)
	}
	return handles
}

// NewHandle builds a content handle for a relative path under root.
func NewHandle(root, rel string) match.Handle {
	return fileHandle{abs: filepath.Join(root, filepath.FromSlash(rel))}
}

type fileHandle struct {
	abs string
}

func (h fileHandle) Open() (io.ReadCloser, error) {
	return os.Open(h.abs)
}
