package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

const maxDividerWidth = 60

// severityOrder lists severities from most to least critical.
var severityOrder = []issue.Severity{issue.Bug, issue.Error, issue.Warning, issue.Note, issue.Help}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (1 bug, 4 errors) in 2 files, 1 file formatted".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.IssuesTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	} else {
		main := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue", "issues"))
		if breakdown := s.severityBreakdown(stats); breakdown != "" {
			main += " (" + breakdown + ")"
		}
		main += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))
		parts = append(parts, main)
	}

	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s formatted",
			stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block with a divider
// no wider than width.
func (s *Styles) FormatSummary(stats runner.Stats, width int) string {
	var builder strings.Builder

	divider := strings.Repeat("-", max(1, min(width, maxDividerWidth)))

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.Dim.Render(divider))
	builder.WriteString("\n")

	row := func(label string, value int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", strconv.Itoa(value)))
	}
	row("Files checked", stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files formatted", stats.FilesModified)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored)
	}
	row("Total issues", stats.IssuesTotal)

	builder.WriteString("\n")
	builder.WriteString(s.FormatStatus(stats))
	builder.WriteString("\n")

	return builder.String()
}

// FormatStatus returns the closing verdict of a run.
func (s *Styles) FormatStatus(stats runner.Stats) string {
	if stats.IssuesTotal > 0 || stats.FilesErrored > 0 {
		return s.Bold.Render("Check finished: ") + s.Failure.Render("✗ Issues detected")
	}
	return s.Bold.Render("Check finished: ") + s.Success.Render("✓ No issues detected")
}

func (s *Styles) severityBreakdown(stats runner.Stats) string {
	var parts []string
	for _, sev := range severityOrder {
		n := stats.IssuesBySeverity[sev.String()]
		if n == 0 {
			continue
		}
		name := sev.String()
		if n != 1 && sev != issue.Help {
			name += "s"
		}
		parts = append(parts, s.styleFor(sev).Render(fmt.Sprintf("%d %s", n, name)))
	}
	return strings.Join(parts, ", ")
}

func (s *Styles) styleFor(sev issue.Severity) lipgloss.Style {
	switch sev {
	case issue.Bug:
		return s.Bug
	case issue.Error:
		return s.Error
	case issue.Warning:
		return s.Warning
	case issue.Note:
		return s.Note
	default:
		return s.Help
	}
}
