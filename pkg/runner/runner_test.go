package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/formatcheck"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/lint"
	_ "github.com/yaklabco/mdcheck/pkg/lint/rules" // Register rules
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

const (
	canonical = "# Title\n\nSome text.\n"
	noSpace   = "#Title\n"
)

func newRunner() *runner.Runner {
	return runner.New(
		goldmark.New(goldmark.FlavorGFM),
		lint.NewEngine(lint.DefaultRegistry, nil),
		nil,
	)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func codes(issues []issue.CheckIssue) []string {
	var out []string
	for _, iss := range issues {
		out = append(out, iss.RuleID())
	}
	return out
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"notes.txt": "plain"})

	result, err := newRunner().Run(t.Context(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Lint(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"clean.md":     canonical,
		"docs/bad.md":  noSpace,
		"docs/also.md": noSpace,
	})

	result, err := newRunner().Run(t.Context(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, filepath.ToSlash(f.Path))
	}
	assert.Equal(t, []string{"clean.md", "docs/also.md", "docs/bad.md"}, paths, "sorted, relative to the working dir")

	assert.Empty(t, result.Files[0].Issues)
	assert.Contains(t, codes(result.Files[1].Issues), "MD018")
	assert.Contains(t, codes(result.Files[2].Issues), "MD018")

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, len(result.Issues()), result.Stats.IssuesTotal)
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasErrors())
}

func TestRunner_Run_ExcludedRule(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"bad.md": noSpace})
	cfg := config.NewConfig()
	cfg.Linter.Exclude = []string{"MD018"}

	result, err := newRunner().Run(t.Context(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.NotContains(t, codes(result.Files[0].Issues), "MD018")
}

func TestRunner_Run_FormatCheck(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"clean.md": canonical,
		"messy.md": "Title\n=====\n\n\n\nSome text.",
	})

	result, err := newRunner().Run(t.Context(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeFormatCheck,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Empty(t, result.Files[0].Issues)
	assert.False(t, result.Files[0].Changed)

	messy := result.Files[1]
	require.Len(t, messy.Issues, 1)
	assert.Equal(t, issue.Formatting, messy.Issues[0].Category)
	assert.Equal(t, formatcheck.Message, messy.Issues[0].Message)
	assert.True(t, messy.Changed)
	assert.False(t, messy.Written, "check mode never writes")

	got, err := os.ReadFile(filepath.Join(dir, "messy.md"))
	require.NoError(t, err)
	assert.Equal(t, "Title\n=====\n\n\n\nSome text.", string(got))
}

func TestRunner_Run_Format(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"clean.md": canonical,
		"messy.md": "Title\n=====\n\n\n\nSome text.",
	})
	opts := runner.Options{WorkingDir: dir, Mode: runner.ModeFormat}

	result, err := newRunner().Run(t.Context(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.False(t, result.Files[0].Written)
	assert.True(t, result.Files[1].Written)
	assert.Equal(t, 1, result.Stats.FilesModified)

	// A second pass finds nothing left to rewrite.
	result, err = newRunner().Run(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesModified)

	check, err := newRunner().Run(t.Context(), runner.Options{WorkingDir: dir, Mode: runner.ModeFormatCheck})
	require.NoError(t, err)
	assert.False(t, check.HasIssues())
}

func TestRunner_Run_CombinedModes(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"bad.md": noSpace})

	result, err := newRunner().Run(t.Context(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeLint | runner.ModeFormatCheck,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	var categories []issue.Category
	for _, iss := range result.Files[0].Issues {
		categories = append(categories, iss.Category)
	}
	assert.Contains(t, categories, issue.Linting)
	assert.Contains(t, categories, issue.Formatting)
}

type failingParser struct{}

var errBroken = errors.New("broken")

func (failingParser) Parse(_ context.Context, path string, _ []byte) (*mdast.FileSnapshot, error) {
	if filepath.Base(path) == "broken.md" {
		return nil, errBroken
	}
	return goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), path, []byte(canonical))
}

func TestRunner_Run_FileErrorDoesNotStopBatch(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.md":      canonical,
		"broken.md": canonical,
		"c.md":      canonical,
	})
	r := runner.New(failingParser{}, lint.NewEngine(lint.DefaultRegistry, nil), nil)

	result, err := r.Run(t.Context(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	require.ErrorIs(t, result.Files[1].Error, errBroken)
	require.NoError(t, result.Files[0].Error)
	require.NoError(t, result.Files[2].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.True(t, result.HasErrors())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.md": canonical})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(t.Context(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"nope.md"},
	})
	require.Error(t, err)
}

func TestMode_Has(t *testing.T) {
	t.Parallel()

	mode := runner.ModeLint | runner.ModeFormatCheck
	assert.True(t, mode.Has(runner.ModeLint))
	assert.True(t, mode.Has(runner.ModeFormatCheck))
	assert.False(t, mode.Has(runner.ModeFormat))
	assert.False(t, mode.Has(runner.ModeLint|runner.ModeFormat))
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Run.Ignore = []string{"vendor/**"}
	cfg.Run.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, runner.ModeFormat, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, runner.ModeFormat, opts.Mode)
	assert.Same(t, cfg, opts.Config)
}
