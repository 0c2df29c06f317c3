package rules

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/lint/refs"
	"github.com/yaklabco/mdcheck/pkg/style"
)

// HeadingIncrementRule checks that heading levels increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD001",
			Name:        "heading-increment",
			Requirement: "Headings should increment one level at a time",
			Rationale: "Headings represent the structure of a document and can be confusing when skipped" +
				" - especially for accessibility scenarios",
		})),
	}
}

// Check compares each heading with the one before it in document order.
func (r *HeadingIncrementRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	headings := ctx.Headings()

	var violations []lint.Violation
	for i := 1; i < len(headings); i++ {
		prev, cur := headings[i-1].HeadingLevel(), headings[i].HeadingLevel()
		if cur <= prev+1 {
			continue
		}

		expected := strings.Repeat("#", prev+1)
		violations = append(violations, lint.NewViolation("Heading level incremented by more then one at a time").
			Assertion(fmt.Sprintf("Expected %s or less, got %s", expected, strings.Repeat("#", cur))).
			Fix(fmt.Sprintf("Decrease the heading level so it will be %s, %s or less",
				expected, strings.Repeat("#", prev))).
			At(headings[i]).
			Build())
	}

	return violations, nil
}

// HeadingStyleRule checks that headings use a consistent style.
type HeadingStyleRule struct {
	lint.BaseRule
}

// NewHeadingStyleRule creates a new heading style rule.
func NewHeadingStyleRule() *HeadingStyleRule {
	return &HeadingStyleRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:            "MD003",
			Name:            "heading-style",
			Requirement:     "Heading style should be consistent",
			Rationale:       rationaleConsistentStyle,
			AdditionalLinks: []string{"https://www.markdownguide.org/basic-syntax/#headings"},
			FmtFixable:      true,
		})),
	}
}

// headingStyleName returns the name used in MD003 messages.
func headingStyleName(s style.Heading) string {
	if s == style.Setext {
		return "SetExt"
	}
	return "ATX"
}

// Check compares each heading with the configured or first-seen style.
func (r *HeadingStyleRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	headings := ctx.Headings()
	src := ctx.Source()

	configured := ctx.Config.Style.Headings
	var preferred style.Heading
	switch configured {
	case config.HeadingATX:
		preferred = style.ATX
	case config.HeadingSetext:
		preferred = style.Setext
	default:
		configured = config.HeadingConsistent
		if len(headings) > 0 {
			preferred = style.HeadingOf(headings[0], src)
		}
	}

	var violations []lint.Violation
	for _, heading := range headings {
		actual := style.HeadingOf(heading, src)
		if actual == preferred {
			continue
		}

		var b *lint.ViolationBuilder
		if configured == config.HeadingConsistent {
			b = lint.NewViolation("Inconsistent headings style").
				Assertion(fmt.Sprintf("First heading in this file is %q, but this one is %q",
					headingStyleName(preferred), headingStyleName(actual)))
		} else {
			b = lint.NewViolation("Wrong heading style").
				Assertion(fmt.Sprintf("Expected %q, got %q",
					headingStyleName(preferred), headingStyleName(actual)))
		}
		violations = append(violations, b.
			Fix(fmt.Sprintf("Change heading style to %q", headingStyleName(preferred))).
			Fix(`Alternatively, you can enforce specific heading style via either the "headings" option` +
				` from the "style" section in config file or via the "--style-headings" CLI option`).
			At(heading).
			Build())
	}

	return violations, nil
}

// HeadingBlankLinesRule checks that headings are surrounded by blank lines.
type HeadingBlankLinesRule struct {
	lint.BaseRule
}

// NewHeadingBlankLinesRule creates a new heading blank lines rule.
func NewHeadingBlankLinesRule() *HeadingBlankLinesRule {
	return &HeadingBlankLinesRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD022",
			Name:        "blanks-around-headings",
			Requirement: "Heading should be surrounded with blank lines",
			Rationale: "Aside from aesthetic reasons, some parsers, including kramdown, will not parse headings" +
				" that don't have a blank line before, and will parse them as regular text",
			FmtFixable: true,
		})),
	}
}

// Check requires a blank line after every heading and, except for the
// first heading, a blank line before it. The start and end of the file
// count as blank.
func (r *HeadingBlankLinesRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for i, heading := range ctx.Headings() {
		blankAfter := isBlankOrQuoteLine(ctx, heading.EndLine()+1)

		if i == 0 {
			if !blankAfter {
				violations = append(violations, lint.NewViolation("Heading is not followed by blank line").
					Assertion("Expected a blank line after the heading, got none").
					Fix("Add a blank line after the the header").
					At(heading).
					Build())
			}
			continue
		}

		blankBefore := heading.StartLine() <= 1 || isBlankOrQuoteLine(ctx, heading.StartLine()-1)
		if !blankBefore || !blankAfter {
			violations = append(violations, lint.NewViolation("Heading is not surrounded with blank lines").
				Assertion("Expected a blank line before and after the heading, got none").
				Fix("Ensure there is a blank line before and after the header").
				At(heading).
				Build())
		}
	}
	return violations, nil
}

// isBlankOrQuoteLine reports whether a line is empty once blockquote
// markers are removed. Lines past the end of the file count as blank.
func isBlankOrQuoteLine(ctx *lint.RuleContext, lineNum int) bool {
	if lineNum > ctx.File.LineCount() {
		return true
	}
	return strings.TrimSpace(lint.StripBlockquotePrefix(ctx.File.LineText(lineNum))) == ""
}

var (
	indentedHeadingRe      = regexp.MustCompile(`^\s+#+`)
	indentedQuoteHeadingRe = regexp.MustCompile(`^>\s\s+#+`)
)

// HeadingStartLeftRule checks that headings start at the beginning of the line.
type HeadingStartLeftRule struct {
	lint.BaseRule
}

// NewHeadingStartLeftRule creates a new heading start left rule.
func NewHeadingStartLeftRule() *HeadingStartLeftRule {
	return &HeadingStartLeftRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD023",
			Name:        "heading-start-left",
			Requirement: "Headings should start at the beginning of the line",
			Rationale: "Headings that don't start at the beginning of the line will not be parsed as headings," +
				" and will instead appear as regular text",
			FmtFixable: true,
		})),
	}
}

// Check flags headings whose line is indented, or indented after a quote marker.
func (r *HeadingStartLeftRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, heading := range ctx.Headings() {
		line := lint.FirstLine(ctx.File, heading)
		if !indentedHeadingRe.MatchString(line) && !indentedQuoteHeadingRe.MatchString(line) {
			continue
		}
		violations = append(violations, lint.NewViolation("Heading is shifted").
			Assertion("Expected heading to start at the beginning of the line, got shifted heading").
			Fix("Ensure that all headings start at the beginning of the line" +
				"(heading inside block quote is an exception)").
			At(heading).
			Build())
	}
	return violations, nil
}

// NoDuplicateHeadingRule checks that heading contents are unique.
type NoDuplicateHeadingRule struct {
	lint.BaseRule
}

// NewNoDuplicateHeadingRule creates a new duplicate heading rule.
func NewNoDuplicateHeadingRule() *NoDuplicateHeadingRule {
	return &NoDuplicateHeadingRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD024",
			Name:        "no-duplicate-heading",
			Requirement: "Heading content should be unique",
			Rationale: "Some Markdown parsers generate anchors for headings based on the heading name;" +
				" headings with the same content can cause problems with that",
		})),
	}
}

// Check flags every heading whose text was already seen. Texts are
// compared after Unicode case folding, since such headings share an anchor.
func (r *NoDuplicateHeadingRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	fold := cases.Fold()
	seen := make(map[string]struct{})

	var violations []lint.Violation
	for _, heading := range ctx.Headings() {
		key := fold.String(strings.TrimSpace(refs.HeadingText(heading)))
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			continue
		}
		violations = append(violations, lint.NewViolation("Multiple headings with the same content").
			Assertion("Expected heading to have unique content, got a duplicate").
			Fix("Ensure that the content of each heading is different").
			At(heading).
			Build())
	}
	return violations, nil
}

// SingleH1Rule checks that there is at most one H1 heading.
type SingleH1Rule struct {
	lint.BaseRule
}

// NewSingleH1Rule creates a new single H1 rule.
func NewSingleH1Rule() *SingleH1Rule {
	return &SingleH1Rule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD025",
			Name:        "single-h1",
			Requirement: "Document should have a single top-level heading",
			Rationale: "A top-level heading is an h1 on the first line of the file, and serves as the title" +
				" for the document. If this convention is in use, then there can not be more than one title" +
				" for the document, and the entire document should be contained within this heading",
		})),
	}
}

// Check flags every depth-1 heading after the first.
func (r *SingleH1Rule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	seenH1 := false
	for _, heading := range ctx.Headings() {
		if heading.HeadingLevel() != 1 {
			continue
		}
		if !seenH1 {
			seenH1 = true
			continue
		}
		violations = append(violations, lint.NewViolation("Found multiple top-level headings").
			Assertion("Expected single top-level heading, got several").
			Fix("Structure your document so there is a single h1 heading that is the title for the document." +
				" Subsequent headings must be lower-level headings (h2, h3, etc.)").
			At(heading).
			Build())
	}
	return violations, nil
}

// NoTrailingPunctuationRule checks that headings do not end with a period.
type NoTrailingPunctuationRule struct {
	lint.BaseRule
}

// NewNoTrailingPunctuationRule creates a new trailing punctuation rule.
func NewNoTrailingPunctuationRule() *NoTrailingPunctuationRule {
	return &NoTrailingPunctuationRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD026",
			Name:        "no-trailing-punctuation",
			Requirement: "Heading should not have a trailing punctuation",
			Rationale:   "Headings are not meant to be full sentences",
			AdditionalLinks: []string{
				"https://cirosantilli.com/markdown-style-guide/#punctuation-at-the-end-of-headers",
			},
		})),
	}
}

// Check flags headings whose concatenated text ends with '.'.
func (r *NoTrailingPunctuationRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, heading := range ctx.Headings() {
		if !strings.HasSuffix(heading.PlainText(), ".") {
			continue
		}
		violations = append(violations, lint.NewViolation("Found trailing punctuation in the heading").
			Assertion("Expected heading to end without trailing punctuation, got one").
			Fix("Remove trailing punctuation").
			At(heading).
			Build())
	}
	return violations, nil
}
