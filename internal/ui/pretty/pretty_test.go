package pretty_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&buf))
}

func TestFormatIssue(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	iss := issue.CheckIssue{
		Category: issue.Linting,
		Severity: issue.Error,
		FilePath: "docs/guide.md",
		RowStart: 3,
		RowEnd:   3,
		ColStart: 1,
		ColEnd:   3,
		Message:  "MD018 - No space after hash on atx style heading.",
		Fixes: []string{
			"Requirement Heading must have a space after the hash.",
			"Auto-fix mdcheck fmt docs/guide.md",
		},
	}

	got := styles.FormatIssue(&iss, "#Install")
	want := strings.Join([]string{
		"error[linting]: MD018 - No space after hash on atx style heading.",
		" --> docs/guide.md:3:1",
		"  |",
		"3 | #Install",
		"  | ^^",
		"  = Requirement Heading must have a space after the hash.",
		"  = Auto-fix mdcheck fmt docs/guide.md",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatIssue_WithoutSource(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	iss := issue.CheckIssue{
		Category: issue.Formatting,
		Severity: issue.Error,
		FilePath: "a.md",
		RowStart: 1,
		ColStart: 1,
		Message:  "Incorrect file formatting",
		Fixes:    []string{"Diff\n\n--- a/a.md\n+++ b/a.md\n@@ -1 +1 @@\n-*  a\n+- a\n"},
	}

	got := styles.FormatIssue(&iss, "")
	assert.NotContains(t, got, "|")
	assert.Contains(t, got, "  = Diff\n")
	assert.Contains(t, got, "    -*  a\n")
	assert.Contains(t, got, "    +- a\n")
}

func TestFormatFix_Multiline(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatFix("Suggestion first\nsecond", 1)
	assert.Equal(t, "  = Suggestion first\n    second\n", got)

	got = styles.FormatFix("free text", 1)
	assert.Equal(t, "  = free text\n", got)
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name: "issues",
			stats: runner.Stats{
				FilesProcessed:   4,
				FilesWithIssues:  2,
				IssuesTotal:      5,
				IssuesBySeverity: map[string]int{"bug": 1, "error": 4},
			},
			want: "5 issues (1 bug, 4 errors) in 2 files\n",
		},
		{
			name:  "formatted and failed",
			stats: runner.Stats{FilesProcessed: 2, FilesModified: 1, FilesErrored: 2},
			want:  "No issues found (2 files checked), 1 file formatted, 2 files failed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatSummary(runner.Stats{FilesProcessed: 2, FilesWithIssues: 1, IssuesTotal: 3}, 20)

	assert.Contains(t, got, strings.Repeat("-", 20)+"\n")
	assert.Contains(t, got, "  Files checked:     2\n")
	assert.Contains(t, got, "  Total issues:      3\n")
	assert.Contains(t, got, "Issues detected")
}

func TestTableFormatter_WriteRules(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tf := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	tf.WriteRules(&buf, []pretty.RuleRow{
		{Code: "MD001", Name: "heading-increment", Requirement: "Heading levels increment by one."},
		{Code: "MD009", Name: "no-trailing-spaces", FmtFixable: true, Requirement: "No trailing spaces."},
	})

	out := buf.String()
	for _, want := range []string{"CODE", "REQUIREMENT", "MD001", "heading-increment", "no-trailing-spaces", "yes"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "MD001"), strings.Index(out, "MD009"))
}

func TestTableFormatter_WriteRulesWrapsOnWords(t *testing.T) {
	t.Parallel()

	requirement := "Multiple consecutive blank lines should be collapsed into a single separator line"

	var buf bytes.Buffer
	tf := pretty.NewTableFormatter(pretty.NewStyles(false), 60)
	tf.WriteRules(&buf, []pretty.RuleRow{
		{Code: "MD012", Name: "no-multiple-blanks", FmtFixable: true, Requirement: requirement},
	})

	out := buf.String()
	assert.NotContains(t, out, requirement, "requirement should wrap at this width")
	for _, word := range strings.Fields(requirement) {
		assert.Contains(t, out, " "+word+" ", "word %q split across lines", word)
	}
}

func TestTableFormatter_Breakdown(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "guide.md",
		Issues: []issue.CheckIssue{
			{Category: issue.Linting, Severity: issue.Error, FilePath: "guide.md", Message: "MD001 - Heading levels skip."},
		},
	}}}
	report := analysis.Analyze(result, analysis.DefaultOptions())
	tf := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	var rules bytes.Buffer
	tf.WriteRuleBreakdown(&rules, report.ByRule)
	assert.Contains(t, rules.String(), "RULE")
	assert.Contains(t, rules.String(), "MD001")

	var files bytes.Buffer
	tf.WriteFileBreakdown(&files, report.ByFile)
	assert.Contains(t, files.String(), "guide.md")
	assert.Contains(t, files.String(), "MD001")
}
