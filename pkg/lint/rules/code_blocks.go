package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/style"
)

// CommandsShowOutputRule checks for shell code blocks with only prompts.
type CommandsShowOutputRule struct {
	lint.BaseRule
}

// NewCommandsShowOutputRule creates a new commands-show-output rule.
func NewCommandsShowOutputRule() *CommandsShowOutputRule {
	return &CommandsShowOutputRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD014",
			Name:        "commands-show-output",
			Requirement: "Code blocks should not have all lines starting with a dollar sign",
			Rationale: "It is easier to copy/paste and less noisy if the dollar signs are omitted" +
				" when they are not needed",
			AdditionalLinks: []string{"https://cirosantilli.com/markdown-style-guide#dollar-signs-in-shell-code"},
		})),
	}
}

// Check flags code blocks whose every non-blank line starts with '$'.
func (r *CommandsShowOutputRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, code := range ctx.CodeBlocks() {
		if !allDollarLines(codeValue(code)) {
			continue
		}
		violations = append(violations, lint.NewViolation("All lines in a code block start with a dollar sign").
			Assertion("Expected to have a command output, got all lines with a dollar sign").
			Fix("The dollar signs are unnecessary in this situation, and should not be included").
			At(code).
			Build())
	}
	return violations, nil
}

func codeValue(code *mdast.Node) string {
	if code.Block == nil || code.Block.Code == nil {
		return ""
	}
	return code.Block.Code.Value
}

func allDollarLines(value string) bool {
	seen := false
	for line := range strings.SplitSeq(value, "\n") {
		line = strings.TrimLeft(line, " ")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "$") {
			return false
		}
		seen = true
	}
	return seen
}

// BlanksAroundFencesRule checks that fenced code is surrounded by blank lines.
type BlanksAroundFencesRule struct {
	lint.BaseRule
}

// NewBlanksAroundFencesRule creates a new blanks-around-fences rule.
func NewBlanksAroundFencesRule() *BlanksAroundFencesRule {
	return &BlanksAroundFencesRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD031",
			Name:        "blanks-around-fences",
			Requirement: "Fenced code blocks should be surrounded by blank lines",
			Rationale: "Aside from aesthetic reasons, some parsers, including kramdown, will not parse" +
				" fenced code blocks that don't have blank lines before and after them",
		})),
	}
}

// Check requires a blank line before and after every fenced block. A block
// on the first line needs no line before it; a block at the end of the file
// needs the file to end with a newline, which leaves an empty last line.
// Blocks inside list items are skipped unless linter.md031_list_items is set.
func (r *BlanksAroundFencesRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	src := ctx.Source()
	listItems := ctx.Config.Linter.MD031ListItems

	var violations []lint.Violation
	for _, code := range ctx.CodeBlocks() {
		if style.CodeBlockOf(code, src) != style.Fenced {
			continue
		}
		if !listItems && mdast.HasAncestor(code, mdast.NodeListItem) {
			continue
		}

		before := code.StartLine() - 1
		after := code.EndLine() + 1
		blankBefore := before < 1 || isBlankOrQuoteLine(ctx, before)
		blankAfter := after <= ctx.File.LineCount() && isBlankOrQuoteLine(ctx, after)
		if blankBefore && blankAfter {
			continue
		}
		violations = append(violations, lint.NewViolation("Fenced code blocks should be surrounded by blank lines").
			Assertion("Expected blank lines before/after code block, got none").
			Fix("Add a blank line before and after the code block").
			At(code).
			Build())
	}
	return violations, nil
}

// CodeBlockStyleRule checks that code blocks share one style.
type CodeBlockStyleRule struct {
	lint.BaseRule
}

// NewCodeBlockStyleRule creates a new code block style rule.
func NewCodeBlockStyleRule() *CodeBlockStyleRule {
	return &CodeBlockStyleRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD046",
			Name:        "code-block-style",
			Requirement: "Code block style should be consistent",
			Rationale:   rationaleConsistentFmt,
		})),
	}
}

const fencedInListHint = `It seems that you are indenting a fenced code block. If your intent is to have` +
	` a fenced code block within the list item, then please make sure that the code block is aligned` +
	` with a list item.
For example:

- List item

   ` + "```sh" + `
   echo Hello
   ` + "```" + `

Otherwise, remove the indentation from the code block.`

// Check compares every code block with linter.md046_style, or with the
// first block's style when that is "consistent".
func (r *CodeBlockStyleRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	blocks := ctx.CodeBlocks()
	if len(blocks) == 0 {
		return nil, nil
	}
	src := ctx.Source()

	consistent := false
	var preferred style.CodeBlock
	switch ctx.Config.Linter.MD046Style {
	case config.CodeBlockFenced:
		preferred = style.Fenced
	case config.CodeBlockIndented:
		preferred = style.Indented
	default:
		consistent = true
		preferred = style.CodeBlockOf(blocks[0], src)
	}

	var violations []lint.Violation
	for _, code := range blocks {
		actual := style.CodeBlockOf(code, src)
		if actual == preferred {
			continue
		}

		var b *lint.ViolationBuilder
		if consistent {
			b = lint.NewViolation("Inconsistent code block style").
				Fix(fmt.Sprintf("Code block style is configured to be consistent across the document."+
					" First code block has a %s style, but this one is %s", preferred, actual))
		} else {
			b = lint.NewViolation("Wrong code block style").
				Fix(fmt.Sprintf("Code block style is configured to be %s, but this one is %s", preferred, actual))
		}
		b.Assertion(fmt.Sprintf("Expected %s code block style, got %s", preferred, actual))

		if preferred == style.Fenced && style.IsFencedButIndented(code, src) {
			b.Fix(fencedInListHint)
		} else {
			b.Fix(fmt.Sprintf("Consider changing it to the %s code block style", preferred))
		}
		violations = append(violations, b.
			Fix("See code block reference: https://www.markdownguide.org/extended-syntax/#fenced-code-blocks").
			At(code).
			Build())
	}
	return violations, nil
}
