package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanPaths expands paths into chat export files. Files are taken as given;
// directories are walked in lexical order for *.txt files, skipping hidden
// directories. A file reached twice is reported once.
func ScanPaths(paths ...string) ([]FileInfo, error) {
	var files []FileInfo
	seen := make(map[string]struct{})

	add := func(path string, info os.FileInfo) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root), info)
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip unreadable dirs
			}
			if info.IsDir() {
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".txt") {
				return nil
			}
			add(path, info)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
