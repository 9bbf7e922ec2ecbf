package mdblog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions are the Markdown file extensions picked up by Build.
var sourceExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// discoverSources lists Markdown files directly under dir in lexical order.
// Dotfiles, directories and other extensions are ignored. Symlinks are
// followed when they point at regular files.
func discoverSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || !sourceExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		path := filepath.Join(dir, name)
		if !e.Type().IsRegular() {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPosts, dir)
	}
	return paths, nil
}
