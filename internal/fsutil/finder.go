// Package fsutil provides file system utility functions shared by the
// staging, collection, and bundling stages.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFilesBySuffix recursively searches the given root path for all files
// ending with the specified suffix. It returns a slice of their full paths.
func FindFilesBySuffix(rootPath string, suffix string) ([]string, error) {
	if suffix == "" {
		panic("suffix must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindExecutables recursively searches the given root path for regular files
// with any execute permission bit set. Used for collecting executable
// artifacts, which carry no fixed suffix on POSIX systems.
func FindExecutables(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0 {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
