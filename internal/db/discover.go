package db

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// databaseExtensions are matched in this order; all .sqlite files come before all .db files
var databaseExtensions = []string{".sqlite", ".db"}

// FindDatabases lists embedded database files under dir. Without recursive only
// the top level is searched. Hidden entries and __MACOSX folders are skipped.
func FindDatabases(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("database directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("database directory: %s is not a directory", dir)
	}

	byExt := make(map[string][]string, len(databaseExtensions))

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || skipName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipName(d.Name()) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, want := range databaseExtensions {
			if ext == want {
				byExt[want] = append(byExt[want], path)
			}
		}
		return nil
	}

	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var paths []string
	for _, ext := range databaseExtensions {
		group := byExt[ext]
		sort.Strings(group)
		paths = append(paths, group...)
	}
	return paths, nil
}

func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || name == "__MACOSX"
}
