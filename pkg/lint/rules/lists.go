package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/style"
)

// ULStyleRule checks that unordered list markers are consistent.
type ULStyleRule struct {
	lint.BaseRule
}

// NewULStyleRule creates a new unordered list style rule.
func NewULStyleRule() *ULStyleRule {
	return &ULStyleRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD004",
			Name:        "ul-style",
			Requirement: "Unordered list elements style should be consistent",
			Rationale:   rationaleConsistentFmt,
			FmtFixable:  true,
		})),
	}
}

// Check compares the marker of every unordered item with the configured
// marker, or with the marker of the first unordered item in the file.
func (r *ULStyleRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	src := ctx.Source()

	var items []*mdast.Node
	for _, item := range ctx.ListItems() {
		if item.Parent != nil && !item.Parent.IsOrderedList() {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	preferred := ctx.Config.Style.UnorderedLists.Marker()
	consistent := preferred == 0
	if consistent {
		preferred = style.Marker(items[0], src)
	}

	var violations []lint.Violation
	for _, item := range items {
		actual := style.Marker(item, src)
		if actual == preferred {
			continue
		}

		want, got := string(preferred), string(actual)
		var b *lint.ViolationBuilder
		if consistent {
			b = lint.NewViolation("Inconsistent unordered list item style").
				Assertion(fmt.Sprintf("Expected %q marker since first unordered list element uses it, got %q", want, got))
		} else {
			b = lint.NewViolation("Wrong unordered list item style").
				Assertion(fmt.Sprintf("Expected %q, got %q", want, got))
		}
		violations = append(violations, b.
			Fix(fmt.Sprintf("Consider replacing %q with %q", got, want)).
			At(item).
			Build())
	}
	return violations, nil
}

// ListIndentRule checks that items of one list share their indentation.
type ListIndentRule struct {
	lint.BaseRule
}

// NewListIndentRule creates a new list indent rule.
func NewListIndentRule() *ListIndentRule {
	return &ListIndentRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD005",
			Name:        "list-indent",
			Requirement: "List items on the same level should have a consistent indentation",
			Rationale:   rationaleImproperRender,
			FmtFixable:  true,
		})),
	}
}

// Check compares each item's indentation with the first item of its list.
// Ordered lists whose first item is indented may instead right-align their
// numbers, so "  9." followed by " 10." is accepted.
func (r *ListIndentRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, list := range ctx.Lists() {
		items := lint.ListItems(list)
		if len(items) == 0 {
			continue
		}

		expected := lint.Indent(ctx.File, items[0])
		rightAligned := list.IsOrderedList() && expected > 0
		firstWidth := numberWidth(listStart(list))

		for i, item := range items {
			actual := lint.Indent(ctx.File, item)
			if actual == expected {
				continue
			}
			if rightAligned && actual+numberWidth(listStart(list)+i) == expected+firstWidth {
				continue
			}
			violations = append(violations, lint.NewViolation("Inconsistent indentation for list items at the same level").
				Assertion(fmt.Sprintf("Expected %d spaces, got %d spaces", expected, actual)).
				Fix(fmt.Sprintf("Align list item to be indented with %d spaces", expected)).
				At(item).
				Build())
		}
	}
	return violations, nil
}

// listStart returns the number of an ordered list's first item.
func listStart(list *mdast.Node) int {
	if attrs := list.ListAttrs(); attrs != nil && attrs.Ordered {
		return attrs.Start
	}
	return 1
}

// numberWidth returns the number of decimal digits in n.
func numberWidth(n int) int {
	return len(strconv.Itoa(n))
}

// ULIndentRule checks the indentation of nested unordered list items.
type ULIndentRule struct {
	lint.BaseRule
}

// ulIndentWidth is the indentation expected per nesting level.
const ulIndentWidth = 2

// NewULIndentRule creates a new unordered list indent rule.
func NewULIndentRule() *ULIndentRule {
	return &ULIndentRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD007",
			Name:        "ul-indent",
			Requirement: "Unordered list items should be indented with 2 or 4 spaces",
			Rationale: "Indenting by 2 spaces allows the content of a nested list to be in line with the start" +
				" of the content of the parent list when a single space is used after the list marker." +
				" Indenting by 4 spaces is consistent with code blocks and simpler for editors to implement." +
				" Additionally, this can be a compatibility issue for other Markdown parsers," +
				" which require 4-space indents",
			AdditionalLinks: []string{
				"https://cirosantilli.com/markdown-style-guide/#indentation-of-content-inside-lists",
			},
			FmtFixable: true,
		})),
	}
}

// Check walks every top-level list. An unordered item at nesting depth d
// under k ordered lists is expected at (d-1)*2+k columns, since each "N. "
// marker is one column wider than "- ".
func (r *ULIndentRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	for _, list := range ctx.Lists() {
		if mdast.HasAncestor(list, mdast.NodeList) {
			continue
		}
		violations = r.walkList(ctx, list, 1, 0, violations)
	}
	return violations, nil
}

// walkList checks the items of list, found at the given depth below
// the given number of ordered lists.
func (r *ULIndentRule) walkList(
	ctx *lint.RuleContext, list *mdast.Node, depth, ordered int, violations []lint.Violation,
) []lint.Violation {
	unordered := !list.IsOrderedList()
	for _, item := range lint.ListItems(list) {
		if unordered {
			expected := (depth-1)*ulIndentWidth + ordered
			actual := lint.Indent(ctx.File, item)
			if actual != expected {
				violations = append(violations, lint.NewViolation("Wrong indentation of unordered list item").
					Assertion(fmt.Sprintf("Expected %d spaces, got %d", expected, actual)).
					Fix(fmt.Sprintf("Indent the list item with %d spaces", expected)).
					At(item).
					Build())
			}
		}

		nested := ordered
		if !unordered {
			nested++
		}
		violations = r.walk(ctx, item, depth, nested, violations)
	}
	return violations
}

// walk descends into node looking for lists nested one level deeper.
func (r *ULIndentRule) walk(
	ctx *lint.RuleContext, node *mdast.Node, depth, ordered int, violations []lint.Violation,
) []lint.Violation {
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeList {
			violations = r.walkList(ctx, child, depth+1, ordered, violations)
			continue
		}
		violations = r.walk(ctx, child, depth, ordered, violations)
	}
	return violations
}

// OLPrefixRule checks that ordered list prefixes are sequential.
type OLPrefixRule struct {
	lint.BaseRule
}

// NewOLPrefixRule creates a new ordered list prefix rule.
func NewOLPrefixRule() *OLPrefixRule {
	return &OLPrefixRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD029",
			Name:        "ol-prefix",
			Requirement: "Ordered list item prefix should be consistent",
			Rationale:   rationaleConsistentFmt,
			FmtFixable:  true,
		})),
	}
}

// Check flags ordered lists whose prefixes are neither all zero, all one,
// nor counting up by one from 0 or 1. It also flags a code block or quote
// at the top level that splits two ordered lists.
func (r *OLPrefixRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	src := ctx.File.Content

	var violations []lint.Violation
	for _, list := range ctx.Lists() {
		if !list.IsOrderedList() {
			continue
		}
		if validPrefixes(itemNumbers(src, list)) {
			continue
		}
		violations = append(violations, lint.NewViolation("Ordered list item prefix should go in ordered").
			Fix("Fix the prefixes to be in numerical order").
			At(list).
			Build())
	}

	if split := splitOrderedList(ctx.Root); split != nil {
		violations = append(violations, lint.NewViolation(
			"Improperly-indented code block or quote appears between two list items and breaks the list in two").
			Fix("Indent the code block or quote so it becomes part of the preceding list item as intended").
			At(split).
			Build())
	}
	return violations, nil
}

// itemNumbers reads the written number of every item in an ordered list.
// Items whose prefix cannot be read yield -1.
func itemNumbers(src []byte, list *mdast.Node) []int {
	items := lint.ListItems(list)
	numbers := make([]int, len(items))
	for i, item := range items {
		text := mdast.Slice(src, item.Position.Start.Offset, item.Position.End.Offset)
		end := strings.IndexAny(text, ".)")
		if end <= 0 {
			numbers[i] = -1
			continue
		}
		n, err := strconv.Atoi(text[:end])
		if err != nil {
			n = -1
		}
		numbers[i] = n
	}
	return numbers
}

func validPrefixes(numbers []int) bool {
	if len(numbers) == 0 {
		return true
	}
	first := numbers[0]
	if first != 0 && first != 1 {
		return false
	}

	same, counting := true, true
	for i, n := range numbers {
		if n != first {
			same = false
		}
		if n != first+i {
			counting = false
		}
	}
	return same || counting
}

// splitOrderedList returns the first top-level code block or blockquote
// sitting between two ordered lists.
func splitOrderedList(root *mdast.Node) *mdast.Node {
	if root == nil {
		return nil
	}
	for mid := root.FirstChild; mid != nil; mid = mid.Next {
		if mid.Kind != mdast.NodeCode && mid.Kind != mdast.NodeBlockquote {
			continue
		}
		if mid.Prev == nil || mid.Next == nil {
			continue
		}
		if mid.Prev.IsOrderedList() && mid.Next.IsOrderedList() {
			return mid
		}
	}
	return nil
}

// ListMarkerSpaceRule checks the spacing after list markers.
type ListMarkerSpaceRule struct {
	lint.BaseRule
}

// NewListMarkerSpaceRule creates a new list marker space rule.
func NewListMarkerSpaceRule() *ListMarkerSpaceRule {
	return &ListMarkerSpaceRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD030",
			Name:        "list-marker-space",
			Requirement: "List marker should be followed by configured number of spaces",
			Rationale:   rationaleImproperRender,
			FmtFixable:  true,
		})),
	}
}

// Check counts the whitespace between each item's marker and its content.
// Items with no content on the marker line are skipped.
func (r *ListMarkerSpaceRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	expected := ctx.Config.SpacesAfterListMarker()

	var violations []lint.Violation
	for _, item := range ctx.ListItems() {
		actual, ok := spacesAfterMarker(lint.RestOfLine(ctx.File, item))
		if !ok || actual == expected {
			continue
		}
		violations = append(violations, lint.NewViolation("Wrong number of spaces after the list marker").
			Assertion(fmt.Sprintf("Expected %d spaces, got %d", expected, actual)).
			Fix(fmt.Sprintf("Ensure %d spaces are used after the list marker", expected)).
			At(item).
			Build())
	}
	return violations, nil
}

// spacesAfterMarker strips a bullet or "N." / "N)" marker from the start
// of line and returns the width of the whitespace run that follows. It
// reports false when line has no marker or nothing after it.
func spacesAfterMarker(line string) (int, bool) {
	rest := line
	switch {
	case rest == "":
		return 0, false
	case strings.IndexByte("-*+", rest[0]) >= 0:
		rest = rest[1:]
	default:
		digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
		if digits == 0 || digits == len(rest) || (rest[digits] != '.' && rest[digits] != ')') {
			return 0, false
		}
		rest = rest[digits+1:]
	}

	n := lint.LeadingWhitespace(rest)
	if n == len(rest) {
		return 0, false
	}
	return n, true
}

// Compile-time interface checks.
var (
	_ lint.Rule = (*ULStyleRule)(nil)
	_ lint.Rule = (*ListIndentRule)(nil)
	_ lint.Rule = (*ULIndentRule)(nil)
	_ lint.Rule = (*OLPrefixRule)(nil)
	_ lint.Rule = (*ListMarkerSpaceRule)(nil)
)
