package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/cli"
	"github.com/yaklabco/mdcheck/pkg/config"
	_ "github.com/yaklabco/mdcheck/pkg/lint/rules"
	"github.com/yaklabco/mdcheck/pkg/reporter"
)

const (
	canonicalDoc = "# Title\n\nSome text.\n"
	noSpaceDoc   = "#Title\n"
	messyDoc     = "Title\n=====\n\n\n\nSome text."
)

// project creates a temporary project directory bounded by a .git marker so
// config discovery never looks above it.
func project(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// execute runs mdcheck in dir and returns its stdout and error.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"-C", dir, "--color", "never"}, args...))

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestIntegration_LintClean(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"README.md": canonicalDoc})

	out, err := execute(t, dir, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues detected")
}

func TestIntegration_LintIssues(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"docs/bad.md": noSpaceDoc})

	out, err := execute(t, dir, "lint")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))
	assert.Contains(t, out, "MD018")
	assert.Contains(t, out, filepath.Join("docs", "bad.md"))
}

func TestIntegration_LintExclude(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"bad.md": noSpaceDoc})

	tests := []struct {
		name    string
		exclude string
	}{
		{name: "code", exclude: "MD018"},
		{name: "lowercase code", exclude: "md018"},
		{name: "rule name", exclude: "no-missing-space-atx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, dir, "lint", "--exclude", tt.exclude)
			require.NoError(t, err)
			assert.NotContains(t, out, "MD018")
		})
	}
}

func TestIntegration_LintPathArguments(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		"good.md":    canonicalDoc,
		"sub/bad.md": noSpaceDoc,
	})

	_, err := execute(t, dir, "lint", "good.md")
	require.NoError(t, err)

	_, err = execute(t, dir, "lint", "sub")
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	_, err = execute(t, dir, "lint", "missing.md")
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestIntegration_LintJSON(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"a.md": canonicalDoc, "b.md": noSpaceDoc})

	out, err := execute(t, dir, "lint", "--format", "json")
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	assert.Equal(t, "a.md", report.Files[0].Path)
	assert.Empty(t, report.Files[0].Issues)
	assert.NotEmpty(t, report.Files[1].Issues)
	assert.Equal(t, 2, report.Summary.FilesChecked)
}

func TestIntegration_LintSARIF(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"b.md": noSpaceDoc})

	out, err := execute(t, dir, "lint", "--format", "sarif")
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var report reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Runs, 1)
	assert.Equal(t, testInfo.Version, report.Runs[0].Tool.Driver.Version)
	assert.NotEmpty(t, report.Runs[0].Results)
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"a.md": canonicalDoc})

	_, err := execute(t, dir, "lint", "--format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestIntegration_Breakdown(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"a.md": noSpaceDoc, "b.md": noSpaceDoc})

	out, err := execute(t, dir, "lint", "--breakdown", "rule")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "no-missing-space-atx")

	out, err = execute(t, dir, "lint", "--breakdown", "file")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "FILE")

	_, err = execute(t, dir, "lint", "--breakdown", "size")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Check(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"messy.md": messyDoc})

	out, err := execute(t, dir, "check", "--show-diff")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "Incorrect file formatting")
	assert.Contains(t, out, "= Diff")
	assert.Equal(t, messyDoc, readFile(t, dir, "messy.md"), "check never writes")
}

func TestIntegration_FmtCheck(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"messy.md": messyDoc, "clean.md": canonicalDoc})

	out, err := execute(t, dir, "fmt", "--check")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "Incorrect file formatting")
	assert.Contains(t, out, "messy.md")
	assert.NotContains(t, out, "clean.md")
	assert.Equal(t, messyDoc, readFile(t, dir, "messy.md"))
}

func TestIntegration_Fmt(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"messy.md": messyDoc, "clean.md": canonicalDoc})

	out, err := execute(t, dir, "fmt")
	require.NoError(t, err)
	assert.Contains(t, out, "Files formatted:")

	formatted := readFile(t, dir, "messy.md")
	assert.NotEqual(t, messyDoc, formatted)
	assert.Equal(t, canonicalDoc, readFile(t, dir, "clean.md"))

	// Formatting is idempotent, so a check now passes.
	_, err = execute(t, dir, "fmt", "--check")
	require.NoError(t, err)
	assert.Equal(t, formatted, readFile(t, dir, "messy.md"))
}

func TestIntegration_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		config.DefaultFileName: "linter:\n  exclude:\n    - no-missing-space-atx\n",
		"bad.md":               noSpaceDoc,
	})

	_, err := execute(t, dir, "lint")
	require.NoError(t, err)

	_, err = execute(t, dir, "--no-config", "lint")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestIntegration_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		"ci/mdcheck.yml": "linter:\n  exclude: [MD018]\n",
		"bad.md":         noSpaceDoc,
	})

	_, err := execute(t, dir, "--config", "ci/mdcheck.yml", "lint")
	require.NoError(t, err)

	_, err = execute(t, dir, "--config", "ci/missing.yml", "lint")
	require.Error(t, err)
}

func TestIntegration_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		config.DefaultFileName: "style:\n  headings: sideways\n",
		"a.md":                 canonicalDoc,
	})

	_, err := execute(t, dir, "lint")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestIntegration_Rules(t *testing.T) {
	t.Parallel()

	out, err := execute(t, t.TempDir(), "rules")
	require.NoError(t, err)
	for _, want := range []string{"CODE", "MD001", "heading-increment", "MD051", "link-fragments"} {
		assert.Contains(t, out, want)
	}
}

func TestIntegration_RulesJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, t.TempDir(), "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Fixable bool   `json:"fmt_fixable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 27)
	assert.Equal(t, "MD001", rules[0].Code)
	assert.Equal(t, "heading-increment", rules[0].Name)

	_, err = execute(t, t.TempDir(), "rules", "--format", "sarif")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{"a.md": canonicalDoc})

	_, err := execute(t, dir, "init")
	require.NoError(t, err)

	content := readFile(t, dir, config.DefaultFileName)
	assert.Contains(t, content, "style:")
	assert.Contains(t, content, "linter:")

	// The generated file loads cleanly.
	_, err = execute(t, dir, "lint")
	require.NoError(t, err)

	_, err = execute(t, dir, "init")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, dir, "init", "--force")
	require.NoError(t, err)

	_, err = execute(t, dir, "init", "--output", "alt.yml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "alt.yml"))
}

func TestIntegration_Migrate(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{
		".markdownlint.json": `{
  // headings without a space are fine here
  "MD018": false,
  "MD003": { "style": "atx" }
}`,
		"bad.md": noSpaceDoc,
	})

	_, err := execute(t, dir, "migrate")
	require.NoError(t, err)

	content := readFile(t, dir, config.DefaultFileName)
	assert.Contains(t, content, "# Migrated from: .markdownlint.json")
	assert.Contains(t, content, "MD018")
	assert.Contains(t, content, "headings: atx")

	_, err = execute(t, dir, "lint")
	require.NoError(t, err)

	_, err = execute(t, dir, "migrate")
	require.ErrorIs(t, err, cli.ErrUsage, "output exists")
}

func TestIntegration_MigrateErrors(t *testing.T) {
	t.Parallel()

	dir := project(t, map[string]string{".markdownlint.cjs": "module.exports = {};\n"})

	_, err := execute(t, dir, "migrate", ".markdownlint.cjs")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, t.TempDir(), "migrate")
	require.ErrorIs(t, err, cli.ErrUsage, "nothing to migrate")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mdcheck")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc1234")
}

func TestIntegration_BadWorkDir(t *testing.T) {
	t.Parallel()

	_, err := execute(t, filepath.Join(t.TempDir(), "nope"), "lint")
	require.ErrorIs(t, err, cli.ErrUsage)
}
