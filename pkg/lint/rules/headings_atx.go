package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

// Word characters follow the Unicode definition so "#Überblick" counts as
// a heading without a space.
var (
	atxNoSpacePattern       = regexp.MustCompile(`^#+[\p{L}\p{N}_]`)
	atxMultiSpacePattern    = regexp.MustCompile(`^#+\s\s+[\p{L}\p{N}_]`)
	closedATXMultiSpaceTail = regexp.MustCompile(`\s\s+#+\s*$`)
	closedATXMultiSpace     = regexp.MustCompile(`^#+.*\s\s+#+\s*$`)
)

// errCancelled wraps the context error of a cancelled rule.
func errCancelled(ctx *lint.RuleContext) error {
	return fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
}

// NoMissingSpaceATXRule checks for missing space after hash on ATX headings.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates a new no-missing-space-atx rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD018",
			Name:        "no-missing-space-atx",
			Requirement: "Hash symbol in ATX-style heading should be followed with a space symbol",
			Rationale:   rationaleImproperRender,
			FmtFixable:  true,
		})),
	}
}

// Check scans lines outside fenced code. Such lines are paragraphs to the
// parser, so the tree cannot be used.
func (r *NoMissingSpaceATXRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	cancelled := false

	lint.ScanLines(ctx.File, func(lineNum int, line string) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		if !atxNoSpacePattern.MatchString(line) {
			return true
		}

		start := ctx.File.LineStart(lineNum)
		width := strings.IndexByte(line, ' ')
		if width < 0 {
			width = len(line)
		}
		violations = append(violations, lint.NewViolation("Missing a space after a hash in ATX-style heading").
			Assertion("Expected a space after the hash symbol, got none").
			Fix(fixSeparateHash).
			Span(ctx.File.PositionOf(start, start+width)).
			Build())
		return true
	})

	if cancelled {
		return nil, errCancelled(ctx)
	}
	return violations, nil
}

// NoMultipleSpaceATXRule checks for multiple spaces after hash on ATX headings.
type NoMultipleSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceATXRule creates a new no-multiple-space-atx rule.
func NewNoMultipleSpaceATXRule() *NoMultipleSpaceATXRule {
	return &NoMultipleSpaceATXRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD019",
			Name:        "no-multiple-space-atx",
			Requirement: "Hash symbol in ATX-style heading should be followed with a single space",
			Rationale:   rationaleExtraSpace,
			FmtFixable:  true,
		})),
	}
}

// Check inspects the first line of every heading.
func (r *NoMultipleSpaceATXRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, heading := range ctx.Headings() {
		line := lint.StripBlockquotePrefix(lint.FirstLine(ctx.File, heading))
		if !atxMultiSpacePattern.MatchString(line) {
			continue
		}
		violations = append(violations, lint.NewViolation("Found multiple spaces after hash in atx style heading").
			Assertion("Expected single space, got multiple").
			Fix(fixSeparateHash).
			At(heading).
			Build())
	}
	return violations, nil
}

// NoMissingSpaceClosedATXRule checks for missing space inside closed ATX headings.
type NoMissingSpaceClosedATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceClosedATXRule creates a new no-missing-space-closed-atx rule.
func NewNoMissingSpaceClosedATXRule() *NoMissingSpaceClosedATXRule {
	return &NoMissingSpaceClosedATXRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD020",
			Name:        "no-missing-space-closed-atx",
			Requirement: "Hashes in closed ATX-style heading should be followed & preceded by spaces",
			Rationale:   rationaleImproperRender,
			FmtFixable:  true,
		})),
	}
}

// isClosedATXWithoutSpace reports whether a line opens with '#', ends with
// a closing hash run and has no space before that run.
func isClosedATXWithoutSpace(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	heading := strings.TrimRight(line, " ")
	if !strings.HasSuffix(heading, "#") {
		return false
	}
	heading = strings.TrimRight(heading, "#")
	if strings.Trim(heading, "# ") == "" {
		return false
	}
	return !strings.HasSuffix(heading, " ")
}

// Check scans lines outside fenced code.
func (r *NoMissingSpaceClosedATXRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	cancelled := false

	lint.ScanLines(ctx.File, func(lineNum int, line string) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		if !isClosedATXWithoutSpace(line) {
			return true
		}
		violations = append(violations, lint.NewViolation("Missing space inside hashes in closed atx style heading").
			Assertion("Expected a space before the closing hashes, got none").
			Fix(fixSeparateHash).
			Span(lint.LinePosition(ctx.File, lineNum)).
			Build())
		return true
	})

	if cancelled {
		return nil, errCancelled(ctx)
	}
	return violations, nil
}

// NoMultipleSpaceClosedATXRule checks for multiple spaces inside closed ATX headings.
type NoMultipleSpaceClosedATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceClosedATXRule creates a new no-multiple-space-closed-atx rule.
func NewNoMultipleSpaceClosedATXRule() *NoMultipleSpaceClosedATXRule {
	return &NoMultipleSpaceClosedATXRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD021",
			Name:        "no-multiple-space-closed-atx",
			Requirement: "Single space should be used after/before hashes in closed ATX-style headings",
			Rationale:   rationaleExtraSpace,
			FmtFixable:  true,
		})),
	}
}

// Check scans lines outside fenced code. The violation covers the run of
// whitespace and the closing hashes.
func (r *NoMultipleSpaceClosedATXRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	cancelled := false

	lint.ScanLines(ctx.File, func(lineNum int, line string) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		if !closedATXMultiSpace.MatchString(line) {
			return true
		}

		start := ctx.File.LineStart(lineNum)
		loc := closedATXMultiSpaceTail.FindStringIndex(line)
		violations = append(violations, lint.NewViolation("Multiple spaces inside hashes on closed atx style heading").
			Assertion("Expected single space after/before hash in closed ATX-style heading, got more").
			Fix(fixSeparateHash).
			Span(ctx.File.PositionOf(start+loc[0], start+loc[1])).
			Build())
		return true
	})

	if cancelled {
		return nil, errCancelled(ctx)
	}
	return violations, nil
}
