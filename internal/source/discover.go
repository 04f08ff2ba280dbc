// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Extensions lists the file formats picked up by Discover.
var Extensions = []string{"pdf", "md", "markdown", "txt", "yaml", "yml", "json"}

// Discover expands paths into a sorted list of files. Directories are walked
// recursively and filtered by Extensions; plain files are kept as given.
// maxFiles <= 0 means no limit.
func Discover(paths []string, maxFiles int) ([]string, error) {
	known := make(map[string]bool, len(Extensions))
	for _, ext := range Extensions {
		known[ext] = true
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && known[FormatOf(path)] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", p, err)
		}
	}

	sort.Strings(files)
	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	return files, nil
}
