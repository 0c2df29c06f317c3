package rules

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

// NoInlineHTMLRule checks for raw HTML outside the allow-list.
type NoInlineHTMLRule struct {
	lint.BaseRule
}

// NewNoInlineHTMLRule creates a new no-inline-html rule.
func NewNoInlineHTMLRule() *NoInlineHTMLRule {
	return &NoInlineHTMLRule{
		BaseRule: lint.NewBaseRule(newMetadata(lint.Metadata{
			Code:        "MD033",
			Name:        "no-inline-html",
			Requirement: "Only whitelisted HTML should be used",
			Rationale: "Raw HTML is allowed in Markdown, but this rule is included for those who want their" +
				" documents to only include 'pure' Markdown, or for those who are rendering Markdown documents" +
				" into something other than HTML",
		})),
	}
}

// Check parses every HTML node as a body fragment and flags it unless each
// element is allowed. Closing tags such as "</a>" arrive as separate nodes
// and are skipped.
func (r *NoInlineHTMLRule) Check(ctx *lint.RuleContext) ([]lint.Violation, error) {
	allowed := ctx.Config.Linter.MD033AllowedHTMLTags

	assertion := "Expected no inline HTML, got some"
	if len(allowed) > 0 {
		assertion = fmt.Sprintf("Expected no inline HTML except [%s], got some", strings.Join(allowed, ", "))
	}

	var violations []lint.Violation
	for _, node := range ctx.HTML() {
		value := strings.TrimSpace(node.Value())
		if value == "" || strings.HasPrefix(value, "</") {
			continue
		}
		ok, err := onlyAllowedElements(value, allowed)
		if err != nil {
			return nil, fmt.Errorf("parse html at line %d: %w", node.StartLine(), err)
		}
		if ok {
			continue
		}
		violations = append(violations, lint.NewViolation("Non-whitelisted inline HTML").
			Assertion(assertion).
			Fix(`If your intention was show this HTML tag as a text, consider escaping it with "\".`+
				` For example: "\<br\>"`).
			Fix("If it's not the case, consider using Markdown instead of HTML").
			Fix(`If this HTML tag is needed, then consider adding a name of this element to the list of`+
				` allowed tags. Use "md033_allowed_html_tags" option from the "linter" section in the config file`).
			At(node).
			Build())
	}
	return violations, nil
}

// onlyAllowedElements reports whether every element in an HTML fragment is
// html, body or in allowed.
func onlyAllowedElements(fragment string, allowed []string) (bool, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return false, err
	}

	var visit func(n *html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode && !isAllowedElement(n.Data, allowed) {
			return false
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	for _, n := range nodes {
		if !visit(n) {
			return false, nil
		}
	}
	return true, nil
}

func isAllowedElement(name string, allowed []string) bool {
	if name == atom.Html.String() || name == atom.Body.String() {
		return true
	}
	return slices.ContainsFunc(allowed, func(tag string) bool {
		return strings.EqualFold(strings.TrimSpace(tag), name)
	})
}
