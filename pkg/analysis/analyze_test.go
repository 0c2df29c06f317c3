package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/issue"
	_ "github.com/yaklabco/mdcheck/pkg/lint/rules"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

func lintIssue(path, code string, sev issue.Severity) issue.CheckIssue {
	return issue.CheckIssue{
		Category: issue.Linting,
		Severity: sev,
		FilePath: path,
		Message:  code + " - Something is off.",
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "b.md",
				Issues: []issue.CheckIssue{
					lintIssue("b.md", "MD001", issue.Error),
					lintIssue("b.md", "MD001", issue.Error),
					lintIssue("b.md", "MD009", issue.Warning),
				},
			},
			{
				Path: "a.md",
				Issues: []issue.CheckIssue{
					lintIssue("a.md", "MD009", issue.Warning),
					{Category: issue.Formatting, Severity: issue.Help, FilePath: "a.md", Message: "Incorrect file formatting"},
				},
			},
			{Path: "clean.md"},
		},
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
	assert.Empty(t, report.ByRule)
	assert.Empty(t, report.ByFile)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	assert.Equal(t, 3, report.Totals.Files)
	assert.Equal(t, 2, report.Totals.FilesWithIssues)
	assert.Equal(t, 5, report.Totals.Issues)
	assert.Equal(t, 2, report.Totals.Errors)
	assert.Equal(t, 2, report.Totals.Warnings)
	assert.Equal(t, 1, report.Totals.Notes)
	assert.Equal(t, 2, report.Totals.Fixable, "MD009 is fixed by the formatter")
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())
	require.Len(t, report.ByRule, 3)

	// MD001 and MD009 both have two issues; ties sort by code.
	first := report.ByRule[0]
	assert.Equal(t, "MD001", first.RuleID)
	assert.Equal(t, "heading-increment", first.RuleName)
	assert.Equal(t, 2, first.Issues)
	assert.Equal(t, []string{"b.md"}, first.Files)

	second := report.ByRule[1]
	assert.Equal(t, "MD009", second.RuleID)
	assert.True(t, second.Fixable)
	assert.Equal(t, []string{"a.md", "b.md"}, second.Files)

	assert.Equal(t, "formatting", report.ByRule[2].RuleID)
	assert.Empty(t, report.ByRule[2].RuleName)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortByAlpha})
	require.Len(t, report.ByFile, 2, "clean files are not listed")

	assert.Equal(t, "a.md", report.ByFile[0].Path)
	assert.Equal(t, []string{"MD009", "formatting"}, report.ByFile[0].Rules)
	assert.Equal(t, "b.md", report.ByFile[1].Path)
	assert.Equal(t, 3, report.ByFile[1].Issues)
}

func TestAnalyze_SortBySeverity(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortBySeverity})
	require.Len(t, report.ByRule, 3)
	assert.Equal(t, "MD001", report.ByRule[0].RuleID)
	assert.Equal(t, "b.md", report.ByFile[0].Path)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	for _, field := range []analysis.SortField{analysis.SortByCount, analysis.SortByAlpha, analysis.SortBySeverity} {
		assert.True(t, field.IsValid(), field)
	}
	assert.False(t, analysis.SortField("size").IsValid())
}
