package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ignoreMatcher holds the compiled ExcludeGlobs.
type ignoreMatcher struct {
	globs []glob.Glob
}

// newIgnoreMatcher compiles patterns with '/' as the separator, so "*"
// stays within one path segment and "**" crosses segments.
func newIgnoreMatcher(patterns []string) (*ignoreMatcher, error) {
	m := &ignoreMatcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// matches reports whether relPath, or its base name, matches a pattern.
// Directories also match with a trailing slash, so "vendor/**" skips vendor.
func (m *ignoreMatcher) matches(relPath string, isDir bool) bool {
	rel := filepath.ToSlash(relPath)
	base := path.Base(rel)
	for _, g := range m.globs {
		if g.Match(rel) || g.Match(base) || (isDir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}

// discoverer walks the input paths of one run.
type discoverer struct {
	workDir    string
	extensions []string
	ignore     *ignoreMatcher
	follow     bool
}

// Discover finds Markdown files matching opts.
// It returns a deduplicated, sorted list of absolute file paths.
//
// Hidden files and directories are skipped while walking, but a hidden file
// named explicitly is checked.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := newIgnoreMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively collects matching files under root.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p != root && (strings.HasPrefix(entry.Name(), ".") || d.ignore.matches(d.rel(p), true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(p)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if target.IsDir() {
				if !d.follow || d.ignore.matches(d.rel(p), true) {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(p)
				if err != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				// WalkDir does not follow the link itself, so walk the target.
				sub, err := d.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.matchesFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks the extension and the ignore patterns.
func (d *discoverer) matchesFile(p string) bool {
	ext := filepath.Ext(p)
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	return !d.ignore.matches(d.rel(p), false)
}

// rel returns p relative to the working directory, or p itself when it
// lies elsewhere.
func (d *discoverer) rel(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return p
	}
	return rel
}
