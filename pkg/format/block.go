package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/style"
)

const (
	setextRule1 = "============="
	setextRule2 = "-------------"
	thematic    = "---"
)

type renderer struct {
	src  string
	opts Options

	// singleLine renders breaks as spaces, for ATX headings and table cells.
	singleLine bool

	// linkDepth counts enclosing links; nested links render their text only.
	linkDepth int

	// spanDepth counts enclosing emphasis, strong, delete and link spans.
	spanDepth int

	inTable bool
}

// blocks renders the children of parent. Adjacent inline children form one
// paragraph. With loose set, children are separated by a blank line.
func (r *renderer) blocks(parent *mdast.Node, rc RenderContext, loose bool) ([]string, error) {
	var out []string
	emit := func(lines []string) {
		if len(out) > 0 && loose {
			out = append(out, "")
		}
		out = append(out, lines...)
	}

	for child := parent.FirstChild; child != nil; child = child.Next {
		if child.IsInline() {
			var b strings.Builder
			for ; ; child = child.Next {
				if err := r.inline(&b, child, rc); err != nil {
					return nil, err
				}
				if child.Next == nil || !child.Next.IsInline() {
					break
				}
			}
			emit(strings.Split(b.String(), "\n"))
			continue
		}

		lines, err := r.block(child, rc)
		if err != nil {
			return nil, err
		}
		emit(lines)
	}
	return out, nil
}

func (r *renderer) block(n *mdast.Node, rc RenderContext) ([]string, error) {
	switch n.Kind {
	case mdast.NodeHeading:
		return r.heading(n, rc)
	case mdast.NodeParagraph:
		text, err := r.inlines(n, rc)
		if err != nil {
			return nil, err
		}
		return strings.Split(text, "\n"), nil
	case mdast.NodeList:
		return r.list(n, rc)
	case mdast.NodeBlockquote:
		return r.blockquote(n, rc)
	case mdast.NodeCode:
		return r.code(n), nil
	case mdast.NodeThematicBreak:
		return []string{thematic}, nil
	case mdast.NodeTable:
		return r.table(n, rc)
	case mdast.NodeDefinition:
		return []string{definition(n)}, nil
	case mdast.NodeFootnoteDefinition:
		return r.footnoteDefinition(n, rc)
	case mdast.NodeFrontMatter:
		return frontMatter(n), nil
	case mdast.NodeHTML:
		return strings.Split(n.Value(), "\n"), nil
	default:
		return nil, unsupported(n)
	}
}

func (r *renderer) heading(n *mdast.Node, rc RenderContext) ([]string, error) {
	depth := min(max(n.HeadingLevel(), 1), 6)

	if depth <= 2 && r.setext(n) {
		text, err := r.inlines(n, rc)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			rule := setextRule1
			if depth == 2 {
				rule = setextRule2
			}
			return append(strings.Split(text, "\n"), rule), nil
		}
	}

	r.singleLine = true
	text, err := r.inlines(n, rc)
	r.singleLine = false
	if err != nil {
		return nil, err
	}

	hashes := strings.Repeat("#", depth)
	if text == "" {
		return []string{hashes}, nil
	}
	return []string{hashes + " " + protectClosingHashes(text)}, nil
}

func (r *renderer) setext(n *mdast.Node) bool {
	switch r.opts.Headings {
	case config.HeadingSetext:
		return true
	case config.HeadingATX:
		return false
	default:
		return style.HeadingOf(n, r.src) == style.Setext
	}
}

// protectClosingHashes escapes a trailing '#' run that would otherwise be
// read as an ATX closing sequence.
func protectClosingHashes(text string) string {
	trimmed := strings.TrimRight(text, "#")
	if trimmed == text {
		return text
	}
	if trimmed == "" || strings.HasSuffix(trimmed, " ") {
		return trimmed + `\` + text[len(trimmed):]
	}
	return text
}

func (r *renderer) list(n *mdast.Node, rc RenderContext) ([]string, error) {
	attrs := n.ListAttrs()
	if attrs == nil {
		attrs = &mdast.ListAttrs{}
	}
	inner := rc.EnterList(attrs.Ordered, attrs.Spread, attrs.Start)
	alternate := adjacentLists(n)%2 == 1

	var out []string
	for item := n.FirstChild; item != nil; item = item.Next {
		if item.Kind != mdast.NodeListItem {
			return nil, unsupported(item)
		}
		lines, err := r.listItem(item, inner, alternate)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && inner.List.Spread {
			out = append(out, "")
		}
		out = append(out, lines...)
		inner.List.Item++
	}
	return out, nil
}

// adjacentLists counts the lists of the same kind directly before n.
// Two such lists written with one marker would parse back as a single list.
func adjacentLists(n *mdast.Node) int {
	count := 0
	for prev := n.Prev; prev != nil && prev.Kind == mdast.NodeList; prev = prev.Prev {
		if prev.IsOrderedList() != n.IsOrderedList() {
			break
		}
		count++
	}
	return count
}

func (r *renderer) listItem(item *mdast.Node, rc RenderContext, alternate bool) ([]string, error) {
	marker := string(r.opts.ListMarker)
	switch {
	case rc.List.Ordered && alternate:
		marker = strconv.Itoa(rc.List.Item) + ")"
	case rc.List.Ordered:
		marker = strconv.Itoa(rc.List.Item) + "."
	case alternate && r.opts.ListMarker == '-':
		marker = "*"
	case alternate:
		marker = "-"
	}
	gap := strings.Repeat(" ", r.opts.SpacesAfterMarker)
	indent := strings.Repeat(" ", len(marker)+r.opts.SpacesAfterMarker)

	lead := marker + gap
	if attrs := item.Block; attrs != nil && attrs.ListItem != nil && attrs.ListItem.Checked != nil {
		if *attrs.ListItem.Checked {
			lead += "[x] "
		} else {
			lead += "[ ] "
		}
	}

	body, err := r.blocks(item, rc, rc.List.Spread)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return []string{strings.TrimRight(lead, " ")}, nil
	}

	out := make([]string, len(body))
	out[0] = lead + body[0]
	for i, line := range body[1:] {
		out[i+1] = prefixLine(indent, line)
	}
	return out, nil
}

func (r *renderer) blockquote(n *mdast.Node, rc RenderContext) ([]string, error) {
	body, err := r.blocks(n, rc.EnterBlockquote(), true)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return []string{">"}, nil
	}
	for i, line := range body {
		body[i] = prefixLine("> ", line)
	}
	return body, nil
}

// prefixLine prepends prefix, dropping its trailing spaces on blank lines.
func prefixLine(prefix, line string) string {
	if line == "" {
		return strings.TrimRight(prefix, " ")
	}
	return prefix + line
}

func (r *renderer) code(n *mdast.Node) []string {
	attrs := n.Block.Code
	if attrs == nil {
		attrs = &mdast.CodeAttrs{}
	}

	lang := attrs.Lang
	if lang == "" && r.opts.Languages != nil {
		lang = r.opts.Languages.Guess(attrs.Value)
	}
	if lang == "" {
		lang = r.opts.CodeLanguage
	}
	info := lang
	if attrs.Meta != "" {
		info += " " + attrs.Meta
	}

	fence := codeFence(attrs.Value)
	out := []string{fence + info}
	if attrs.Value != "" {
		out = append(out, strings.Split(attrs.Value, "\n")...)
	}
	return append(out, fence)
}

// codeFence returns a backtick fence longer than any backtick run that
// starts a line of value.
func codeFence(value string) string {
	longest := 0
	for line := range strings.SplitSeq(value, "\n") {
		line = strings.TrimLeft(line, " ")
		run := len(line) - len(strings.TrimLeft(line, "`"))
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}

func definition(n *mdast.Node) string {
	var label, dest, title string
	if n.Block != nil {
		if ref := n.Block.Reference; ref != nil {
			label = ref.Label
			if label == "" {
				label = ref.Identifier
			}
		}
		if link := n.Block.Link; link != nil {
			dest, title = link.Destination, link.Title
		}
	}
	return "[" + label + "]: " + destination(dest) + titleSuffix(title)
}

func (r *renderer) footnoteDefinition(n *mdast.Node, rc RenderContext) ([]string, error) {
	label := ""
	if n.Block != nil && n.Block.Reference != nil {
		label = n.Block.Reference.Label
		if label == "" {
			label = n.Block.Reference.Identifier
		}
	}
	lead := "[^" + label + "]:"

	body, err := r.blocks(n, rc, true)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return []string{lead}, nil
	}

	out := make([]string, len(body))
	out[0] = lead + " " + body[0]
	for i, line := range body[1:] {
		out[i+1] = prefixLine("    ", line)
	}
	return out, nil
}

func frontMatter(n *mdast.Node) []string {
	delim := "---"
	raw := ""
	if n.Block != nil && n.Block.FrontMatter != nil {
		if n.Block.FrontMatter.Format == "toml" {
			delim = "+++"
		}
		raw = n.Block.FrontMatter.Raw
	}
	out := []string{delim}
	if raw != "" {
		for line := range strings.SplitSeq(raw, "\n") {
			out = append(out, strings.TrimSuffix(line, "\r"))
		}
	}
	return append(out, delim)
}
