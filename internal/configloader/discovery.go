package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// Project config names, most preferred first.
//
//nolint:gochecknoglobals // read-only
var configFileNames = []string{
	".mdcheck.yml",
	".mdcheck.yaml",
	"mdcheck.yml",
	filepath.Join(".config", "mdcheck.yml"),
}

// markdownlint config names "mdcheck migrate" looks for.
//
//nolint:gochecknoglobals // read-only
var markdownlintConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.jsonc",
	".markdownlint.yaml",
	".markdownlint.yml",
	".markdownlint.cjs",
	".markdownlint.mjs",
}

//nolint:gochecknoglobals // read-only
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FindProjectConfig looks for a project config file in startDir and each of
// its parents. The first directory that holds a VCS marker, the home
// directory and the filesystem root all end the search. It returns "" when
// nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()
	for current := range searchDirs(dir, home) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("config discovery: %w", err)
		}
		if path := firstFile(current, configFileNames); path != "" {
			return path, nil
		}
	}
	return "", nil
}

// searchDirs yields dir and its parents up to and including the first
// boundary directory.
func searchDirs(dir, home string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			if dir == home || hasVCSMarker(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// FindMarkdownlintConfig returns the first markdownlint config file in dir,
// or "".
func FindMarkdownlintConfig(dir string) string {
	return firstFile(dir, markdownlintConfigFiles)
}

func firstFile(dir string, names []string) string {
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func hasVCSMarker(dir string) bool {
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsJavaScriptConfig reports whether path is a markdownlint config written in
// JavaScript, which migrate cannot evaluate.
func IsJavaScriptConfig(path string) bool {
	return slices.Contains([]string{".cjs", ".mjs"}, filepath.Ext(path))
}

// IsJSONConfig reports whether path is a JSON or JSONC config file.
func IsJSONConfig(path string) bool {
	return slices.Contains([]string{".json", ".jsonc"}, filepath.Ext(path))
}
