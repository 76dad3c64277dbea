package images

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizeDir makes sure dir ends with a path separator
func NormalizeDir(dir string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// Enumerate lists the files in dir and returns their paths with never-labeled
// images first (sorted) followed by labeled, which is the result table's key
// order. Paths are built as dir + name so they match the keys stored in the
// result file.
func Enumerate(dir string, labeled []string) ([]string, error) {
	dir = NormalizeDir(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	known := make(map[string]struct{}, len(labeled))
	for _, p := range labeled {
		known[p] = struct{}{}
	}

	var unlabeled []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := dir + e.Name()
		if _, ok := known[p]; ok {
			continue
		}
		unlabeled = append(unlabeled, p)
	}
	sort.Strings(unlabeled)

	paths := make([]string, 0, len(unlabeled)+len(labeled))
	paths = append(paths, unlabeled...)
	paths = append(paths, labeled...)

	slog.Info("Enumerated images", "dir", dir, "unlabeled", len(unlabeled), "previously_seen", len(labeled))
	return paths, nil
}
