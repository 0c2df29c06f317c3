package rules

import (
	"regexp"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

var reversedLinkPattern = regexp.MustCompile(`\(.*\)\[.*\]`)

// NoReversedLinksRule checks for "(text)[url]" link syntax.
type NoReversedLinksRule struct {
	lint.BaseRule
}

// NewNoReversedLinksRule creates a new no-reversed-links rule.
func NewNoReversedLinksRule() *NoReversedLinksRule {
	return &NoReversedLinksRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:            "MD011",
			Name:            "no-reversed-links",
			Requirement:     "Link syntax should not be reversed",
			Rationale:       "Reversed links are not rendered as usable links",
			AdditionalLinks: []string{"https://www.markdownguide.org/basic-syntax/#links"},
			FmtFixable:      true,
		})),
	}
}

// Check matches every line outside fenced code and reports the matched span.
func (r *NoReversedLinksRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	cancelled := false

	lint.ScanLines(ctx.File, func(lineNum int, line string) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		start := ctx.File.LineStart(lineNum)
		for _, loc := range reversedLinkPattern.FindAllStringIndex(line, -1) {
			violations = append(violations, lint.NewViolation("Found reversed link syntax").
				Assertion("Expected normal link syntax, got reversed one").
				Fix("Swap the parentheses with square brackets").
				Span(ctx.File.PositionOf(start+loc[0], start+loc[1])).
				Build())
		}
		return true
	})

	if cancelled {
		return nil, errCancelled(ctx)
	}
	return violations, nil
}

// LinkFragmentsRule checks that fragment links name an anchor in the document.
type LinkFragmentsRule struct {
	lint.BaseRule
}

// NewLinkFragmentsRule creates a new link-fragments rule.
func NewLinkFragmentsRule() *LinkFragmentsRule {
	return &LinkFragmentsRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD051",
			Name:        "link-fragments",
			Requirement: "Link fragments should be valid",
			Rationale: "GitHub section links are created automatically for every heading when Markdown" +
				" content is displayed on GitHub. This makes it easy to link directly to different sections" +
				" within a document. However, section links change if headings are renamed or removed." +
				" This rule helps identify broken section links within a document.\n\n" +
				"Section links are not part of the CommonMark specification. This rule enforces the GitHub" +
				" heading algorithm which is: convert heading to lowercase, remove punctuation, convert spaces" +
				" to dashes, append an incrementing integer as needed for uniqueness",
			AdditionalLinks: []string{
				"https://docs.github.com/en/get-started/writing-on-github/getting-started-with-writing-and-formatting-on-github/basic-writing-and-formatting-syntax#section-links",
				"https://github.com/gjtorikian/html-pipeline/blob/f13a1534cb650ba17af400d1acd3a22c28004c09/lib/html/pipeline/toc_filter.rb",
			},
		})),
	}
}

// Check reports every "#fragment" link matching no heading slug, HTML id
// or a[name].
func (r *LinkFragmentsRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, link := range ctx.RefContext().BrokenLinks() {
		violations = append(violations, lint.NewViolation("Invalid link fragments").
			Assertion("Expected link fragment to reference an existing heading's generated name," +
				" got link fragment that matches to none").
			Fix("Add missing anchor").
			At(link).
			Build())
	}
	return violations, nil
}
