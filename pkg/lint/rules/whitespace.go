package rules

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// NoTrailingSpacesRule checks for trailing spaces.
type NoTrailingSpacesRule struct {
	lint.BaseRule
}

// NewNoTrailingSpacesRule creates a new no-trailing-spaces rule.
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD009",
			Name:        "no-trailing-spaces",
			Requirement: "Trailing spaces should not be used in a document",
			Rationale: "Except when being used to create a line break, trailing whitespace has no purpose" +
				" and does not affect the rendering of content",
			FmtFixable: true,
		})),
	}
}

// Check flags every line outside fenced code that ends with a space. The
// violation covers the trailing whitespace run.
func (r *NoTrailingSpacesRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	return scanLineViolations(ctx, func(line string) (int, int, bool) {
		if !strings.HasSuffix(line, " ") {
			return 0, 0, false
		}
		return len(strings.TrimRight(line, " \t")), len(line), true
	}, func() *lint.ViolationBuilder {
		return lint.NewViolation("Found trailing space").
			Assertion("Expected no trailing space, found one").
			Fix("Remove trailing space")
	})
}

// NoHardTabsRule checks for hard tab characters.
type NoHardTabsRule struct {
	lint.BaseRule
}

// NewNoHardTabsRule creates a new no-hard-tabs rule.
func NewNoHardTabsRule() *NoHardTabsRule {
	return &NoHardTabsRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD010",
			Name:        "no-hard-tabs",
			Requirement: "Hard tabs should not be used",
			Rationale: "Hard tabs are often rendered inconsistently by different editors" +
				" and can be harder to work with than spaces",
			FmtFixable: true,
		})),
	}
}

// Check flags every line outside fenced code that contains a tab.
func (r *NoHardTabsRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	return scanLineViolations(ctx, func(line string) (int, int, bool) {
		return 0, len(line), strings.Contains(line, "\t")
	}, func() *lint.ViolationBuilder {
		return lint.NewViolation("Found hard tab").
			Assertion("Expected space, got hard tab").
			Fix("Replace hard tab with space or remove them")
	})
}

// scanLineViolations reports one violation for every line outside fenced
// code accepted by match. match returns the byte range within the line that
// the violation covers.
func scanLineViolations(
	ctx *lint.RuleContext,
	match func(line string) (from, to int, ok bool),
	build func() *lint.ViolationBuilder,
) ([]lint.Violation, error) {
	var violations []lint.Violation
	cancelled := false

	lint.ScanLines(ctx.File, func(lineNum int, line string) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		if from, to, ok := match(line); ok {
			start := ctx.File.LineStart(lineNum)
			span := ctx.File.PositionOf(start+from, start+to)
			violations = append(violations, build().Span(span).Build())
		}
		return true
	})

	if cancelled {
		return nil, errCancelled(ctx)
	}
	return violations, nil
}

// NoMultipleBlanksRule checks for runs of blank lines.
type NoMultipleBlanksRule struct {
	lint.BaseRule
}

// NewNoMultipleBlanksRule creates a new no-multiple-blanks rule.
func NewNoMultipleBlanksRule() *NoMultipleBlanksRule {
	return &NoMultipleBlanksRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD012",
			Name:        "no-multiple-blanks",
			Requirement: "Single blank line should be used to separate elements",
			Rationale: "Except in a code block, blank lines serve no purpose" +
				" and do not affect the rendering of content",
			FmtFixable: true,
		})),
	}
}

// Check flags every empty line outside code blocks that is followed by
// another empty line, so a run of n blank lines yields n-1 violations. Lines
// are read from the line index, which recognizes LF and CRLF alike.
func (r *NoMultipleBlanksRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	file := ctx.File
	code := ctx.CodeBlocks()

	var violations []lint.Violation
	for lineNum := 1; lineNum < file.LineCount(); lineNum++ {
		if ctx.Cancelled() {
			return nil, errCancelled(ctx)
		}
		next := file.Lines[lineNum]
		if next.StartOffset == len(file.Content) {
			break
		}
		if file.LineText(lineNum) != "" || file.LineText(lineNum+1) != "" {
			continue
		}
		line := file.Lines[lineNum-1]
		if insideAny(code, line.StartOffset) {
			continue
		}
		violations = append(violations, lint.NewViolation("Multiple consecutive blank lines").
			Assertion("Expected single blank line, got multiple").
			Fix("Remove unnecessary blank line").
			Span(file.PositionOf(line.StartOffset, line.EndOffset)).
			Build())
	}
	return violations, nil
}

// insideAny reports whether offset falls strictly inside one of the nodes.
func insideAny(nodes []*mdast.Node, offset int) bool {
	for _, n := range nodes {
		if n.HasPosition() && offset > n.Position.Start.Offset && offset < n.Position.End.Offset {
			return true
		}
	}
	return false
}
