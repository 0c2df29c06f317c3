package lint

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/issue"
)

// ToIssue enriches a violation with its rule's metadata and turns it into
// a reportable CheckIssue for the file at path.
//
// The message reads "{code} - {message}. {assertion}." and the fixes are,
// in order: requirement, rationale, each suggestion, the fmt auto-fix hint
// for fmt-fixable rules, the documentation link and each additional link.
func ToIssue(path string, meta Metadata, v Violation) (issue.CheckIssue, error) {
	message := meta.Code + " - " + sentence(v.Message)
	if v.Assertion != "" {
		message += " " + sentence(v.Assertion)
	}

	b := issue.NewBuilder().
		Category(issue.Linting).
		Severity(issue.Error).
		FilePath(path).
		Rows(v.Position.Start.Line, v.Position.End.Line).
		Cols(v.Position.Start.Column, v.Position.End.Column).
		Offsets(v.Position.Start.Offset, v.Position.End.Offset).
		Message(message)

	if meta.Requirement != "" {
		b.PushFix("Requirement " + sentence(meta.Requirement))
	}
	if meta.Rationale != "" {
		b.PushFix("Rationale " + sentence(meta.Rationale))
	}
	for _, fix := range v.Fixes {
		b.PushFix("Suggestion " + sentence(fix))
	}
	if meta.FmtFixable {
		b.PushFix("Auto-fix mdcheck fmt " + path)
	}
	if meta.Documentation != "" {
		b.PushFix("Documentation " + meta.Documentation)
	}
	for _, link := range meta.AdditionalLinks {
		b.PushFix("Also see " + link)
	}

	return b.Build()
}

// sentence terminates s with exactly one period.
func sentence(s string) string {
	return strings.TrimSuffix(s, ".") + "."
}
