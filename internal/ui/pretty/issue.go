package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/issue"
)

// fixLabels are the leading words of issue fix lines, longest first.
var fixLabels = []string{
	"Documentation",
	"Requirement",
	"Suggestion",
	"Rationale",
	"Auto-fix",
	"Also see",
	"Diff",
}

// FormatIssue formats a single issue for terminal output:
//
//	error[linting]: MD018 - No space after hash on atx style heading.
//	  --> docs/guide.md:3:1
//	   |
//	 3 | #Install
//	   | ^
//	   = Requirement ...
//
// sourceLine is the text of the issue's first row; when empty no source
// context is printed.
func (s *Styles) FormatIssue(iss *issue.CheckIssue, sourceLine string) string {
	var builder strings.Builder

	gutterWidth := len(strconv.Itoa(iss.RowStart))
	pad := strings.Repeat(" ", gutterWidth)

	builder.WriteString(s.FormatSeverity(iss.Severity))
	builder.WriteString(s.Category.Render("[" + iss.Category.String() + "]"))
	builder.WriteString(": ")
	builder.WriteString(s.Message.Render(iss.Message))
	builder.WriteString("\n")

	builder.WriteString(pad + s.Gutter.Render("--> ") + s.Location.Render(iss.Location()) + "\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(iss, sourceLine, gutterWidth))
	}

	for _, fix := range iss.Fixes {
		builder.WriteString(s.FormatFix(fix, gutterWidth))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity name.
func (s *Styles) FormatSeverity(sev issue.Severity) string {
	switch sev {
	case issue.Bug:
		return s.Bug.Render(sev.String())
	case issue.Error:
		return s.Error.Render(sev.String())
	case issue.Warning:
		return s.Warning.Render(sev.String())
	case issue.Note:
		return s.Note.Render(sev.String())
	case issue.Help:
		return s.Help.Render(sev.String())
	default:
		return sev.String()
	}
}

// FormatSourceContext formats the issue's first row with a caret marker
// under the reported columns.
func (s *Styles) FormatSourceContext(iss *issue.CheckIssue, line string, gutterWidth int) string {
	var builder strings.Builder

	pad := strings.Repeat(" ", gutterWidth)
	bar := s.Gutter.Render("|")

	builder.WriteString(pad + " " + bar + "\n")
	builder.WriteString(fmt.Sprintf("%*d %s %s\n", gutterWidth, iss.RowStart, bar, s.SourceLine.Render(line)))

	if iss.ColStart > 0 {
		width := 1
		if iss.RowEnd == iss.RowStart && iss.ColEnd > iss.ColStart {
			width = iss.ColEnd - iss.ColStart
		}
		builder.WriteString(pad + " " + bar + " " +
			strings.Repeat(" ", iss.ColStart-1) +
			s.Caret.Render(strings.Repeat("^", width)) + "\n")
	}

	return builder.String()
}

// FormatFix formats one fix line as a note. The leading label is
// highlighted; a "Diff" fix is rendered as a colored unified diff.
func (s *Styles) FormatFix(fix string, gutterWidth int) string {
	pad := strings.Repeat(" ", gutterWidth)
	prefix := pad + " " + s.Gutter.Render("=") + " "

	label, rest := splitFixLabel(fix)
	if label == "Diff" {
		return prefix + s.FixLabel.Render(label) + "\n" + s.FormatDiff(strings.TrimLeft(rest, "\n"), pad+"   ")
	}

	var builder strings.Builder
	lines := strings.Split(rest, "\n")
	if label != "" {
		builder.WriteString(prefix + s.FixLabel.Render(label) + " " + s.FixText.Render(lines[0]) + "\n")
	} else {
		builder.WriteString(prefix + s.FixText.Render(lines[0]) + "\n")
	}
	for _, line := range lines[1:] {
		builder.WriteString(pad + "   " + s.FixText.Render(line) + "\n")
	}
	return builder.String()
}

// FormatDiff colors a unified diff line by line, indenting each line.
func (s *Styles) FormatDiff(diff, indent string) string {
	var builder strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			styled = s.DiffHeader.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled = s.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = s.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = s.DiffRemove.Render(line)
		default:
			styled = s.DiffContext.Render(line)
		}
		builder.WriteString(indent + styled + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}

func splitFixLabel(fix string) (label, rest string) {
	for _, l := range fixLabels {
		if after, ok := strings.CutPrefix(fix, l); ok && (after == "" || after[0] == ' ' || after[0] == '\n') {
			if after != "" && after[0] == ' ' {
				after = after[1:]
			}
			return l, after
		}
	}
	return "", fix
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
