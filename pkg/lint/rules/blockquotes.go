package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

var blockquoteMultiSpace = regexp.MustCompile(`>\s\s+\S`)

// NoMultipleSpaceBlockquoteRule checks for multiple spaces after the quote marker.
type NoMultipleSpaceBlockquoteRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceBlockquoteRule creates a new no-multiple-space-blockquote rule.
func NewNoMultipleSpaceBlockquoteRule() *NoMultipleSpaceBlockquoteRule {
	return &NoMultipleSpaceBlockquoteRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD027",
			Name:        "no-multiple-space-blockquote",
			Requirement: "Block quote symbol (>) should be followed by a single space",
			Rationale:   rationaleConsistentFmt,
			FmtFixable:  true,
		})),
	}
}

// Check matches the first source line of every blockquote.
func (r *NoMultipleSpaceBlockquoteRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, bq := range ctx.Blockquotes() {
		if !blockquoteMultiSpace.MatchString(lint.FirstLine(ctx.File, bq)) {
			continue
		}
		violations = append(violations, lint.NewViolation("Multiple spaces after block quote symbol").
			Assertion("Expected a single space after the block quote symbol (>), got multiple").
			Fix(`Remove any extraneous space after the ">" symbol`).
			At(bq).
			Build())
	}
	return violations, nil
}

// NoBlanksBlockquoteRule checks for blank lines splitting a blockquote.
type NoBlanksBlockquoteRule struct {
	lint.BaseRule
}

// NewNoBlanksBlockquoteRule creates a new no-blanks-blockquote rule.
func NewNoBlanksBlockquoteRule() *NoBlanksBlockquoteRule {
	return &NoBlanksBlockquoteRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD028",
			Name:        "no-blanks-blockquote",
			Requirement: "Block quote should not have blank lines",
			Rationale: "Some parsers will treat two block quotes separated by one or more blank lines" +
				" as the same block quote, while others will treat them as separate block quotes",
		})),
	}
}

// Check compares each blockquote with the next one in document order and
// flags the pair when only whitespace separates them. A nested quote starts
// before its parent ends, so parent and child are never compared.
func (r *NoBlanksBlockquoteRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	quotes := ctx.Blockquotes()

	var violations []lint.Violation
	for i := 0; i+1 < len(quotes); i++ {
		end, start := quotes[i].Position.End.Offset, quotes[i+1].Position.Start.Offset
		if start < end || !onlyWhitespaceBetween(ctx.File, end, start) {
			continue
		}
		violations = append(violations, lint.NewViolation("Found a blank line inside block quote").
			Assertion("Expected block quote to be a single one, got a separation with a blank line").
			Fix("If you want to have a single block quote - remove blank line").
			Fix(`If you want to have block quotes split - add any text between them,` +
				` for example an empty comment "<!--  -->"`).
			Span(ctx.File.PositionOf(end+1, start-1)).
			Build())
	}
	return violations, nil
}

func onlyWhitespaceBetween(file *mdast.FileSnapshot, start, end int) bool {
	return strings.TrimSpace(mdast.Slice(file.Content, start, end)) == ""
}
