package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// mapInlines maps the inline children of gmParent onto parent and merges
// adjacent text so a soft-wrapped run becomes one Text node.
func (m *mapper) mapInlines(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapInline(child, parent)
	}
	mergeTexts(parent)
}

// mapInline converts a single goldmark inline node and appends the result.
func (m *mapper) mapInline(gmNode ast.Node, parent *mdast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		m.mapText(gmn, parent)
	case *ast.String:
		mdast.AppendChild(parent, mdast.NewText(string(gmn.Value)))
	case *ast.CodeSpan:
		mdast.AppendChild(parent, m.mapCodeSpan(gmn))
	case *ast.Emphasis:
		mdast.AppendChild(parent, m.mapEmphasis(gmn))
	case *ast.Link:
		mdast.AppendChild(parent, m.mapLink(gmn))
	case *ast.Image:
		mdast.AppendChild(parent, m.mapImage(gmn))
	case *ast.AutoLink:
		mdast.AppendChild(parent, m.mapAutoLink(gmn))
	case *ast.RawHTML:
		mdast.AppendChild(parent, m.mapRawHTML(gmn))
	case *east.Strikethrough:
		mdast.AppendChild(parent, m.mapStrikethrough(gmn))
	case *east.TaskCheckBox:
		m.mapTaskCheckBox(gmn)
	case *east.FootnoteLink:
		mdast.AppendChild(parent, m.mapFootnoteLink(gmn))
	default:
		m.mapInlines(gmNode, parent)
	}
}

// mapText converts a goldmark Text node. Soft breaks become "\n" inside the
// value; hard breaks become a Break node after the text.
func (m *mapper) mapText(t *ast.Text, parent *mdast.Node) {
	seg := t.Segment
	start, end := seg.Start, seg.Stop
	raw := seg.Value(m.src)

	if m.trimNextText {
		trimmed := bytes.TrimLeft(raw, " \t")
		start += len(raw) - len(trimmed)
		raw = trimmed
		m.trimNextText = false
	}

	value := raw
	if !t.IsRaw() {
		value = unescapeText(raw)
	}
	s := string(value)
	if t.SoftLineBreak() {
		s = strings.TrimRight(s, " \t") + "\n"
	}

	if s != "" {
		node := mdast.NewText(s)
		node.Position = m.pos(start, end)
		mdast.AppendChild(parent, node)
	}
	m.cursor = max(m.cursor, end)

	if t.HardLineBreak() {
		brEnd := lineEndOf(m.src, end)
		br := mdast.NewNode(mdast.NodeBreak)
		br.Position = m.pos(end, brEnd)
		mdast.AppendChild(parent, br)
		m.cursor = brEnd
	}
}

// mapCodeSpan converts inline code, including its backtick runs.
func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	ticks := max(runLength(m.src, start, '`'), 1)

	var buf bytes.Buffer
	from := start + ticks
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(m.src))
			from = max(from, t.Segment.Stop)
		}
	}

	end := from
	fence := bytes.Repeat([]byte{'`'}, ticks)
	if idx := bytes.Index(m.src[min(from, len(m.src)):], fence); idx >= 0 {
		end = from + idx + ticks
	}

	node := mdast.NewNode(mdast.NodeInlineCode)
	node.Inline = mdast.NewInlineAttrs().WithText(strings.ReplaceAll(buf.String(), "\n", " "))
	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// mapEmphasis converts emphasis (level 1) and strong emphasis (level 2).
func (m *mapper) mapEmphasis(e *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if e.Level >= 2 {
		kind = mdast.NodeStrong
	}
	node := mdast.NewNode(kind)

	start := skipGap(m.src, m.cursor, m.inQuote())
	m.cursor = start + e.Level
	m.mapInlines(e, node)
	end := min(m.cursor+e.Level, len(m.src))

	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// mapStrikethrough converts GFM strikethrough to a Delete node.
func (m *mapper) mapStrikethrough(s *east.Strikethrough) *mdast.Node {
	node := mdast.NewNode(mdast.NodeDelete)

	start := skipGap(m.src, m.cursor, m.inQuote())
	tildes := max(runLength(m.src, start, '~'), 1)
	m.cursor = start + tildes
	m.mapInlines(s, node)
	end := min(m.cursor+tildes, len(m.src))

	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// linkTail classifies the source after a link's text. goldmark resolves
// reference links into plain links, so the syntax is read back from source.
type linkTail struct {
	style  mdast.ReferenceStyle
	inline bool
	label  string
	end    int
}

func (m *mapper) classifyLinkTail(textOpen, textClose int) linkTail {
	textLabel := ""
	if textClose-1 > textOpen+1 {
		textLabel = string(m.src[textOpen+1 : textClose-1])
	}

	if textClose >= len(m.src) {
		return linkTail{style: mdast.RefStyleShortcut, label: textLabel, end: textClose}
	}

	switch m.src[textClose] {
	case '(':
		end := matchParen(m.src, textClose)
		if end < 0 {
			end = lineEndOf(m.src, textClose)
		}
		return linkTail{inline: true, end: end}
	case '[':
		end := matchBracket(m.src, textClose)
		if end < 0 {
			break
		}
		if end == textClose+2 {
			return linkTail{style: mdast.RefStyleCollapsed, label: textLabel, end: end}
		}
		return linkTail{style: mdast.RefStyleFull, label: string(m.src[textClose+1 : end-1]), end: end}
	}
	return linkTail{style: mdast.RefStyleShortcut, label: textLabel, end: textClose}
}

// mapLink converts a goldmark Link into a Link or LinkReference.
func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	node := mdast.NewNode(mdast.NodeLink)

	m.cursor = start + 1
	m.mapInlines(link, node)

	textClose := matchBracket(m.src, start)
	if textClose < 0 {
		textClose = min(m.cursor+1, len(m.src))
	}
	tail := m.classifyLinkTail(start, textClose)

	if tail.inline {
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(link.Destination),
			Title:       string(unescapeText(link.Title)),
		})
	} else {
		node.Kind = mdast.NodeLinkReference
		node.Inline = mdast.NewInlineAttrs().WithReference(&mdast.ReferenceAttrs{
			Identifier: util.ToLinkReference([]byte(tail.label)),
			Label:      tail.label,
			Style:      tail.style,
		})
	}

	node.Position = m.pos(start, tail.end)
	m.cursor = tail.end
	return node
}

// mapImage converts a goldmark Image into an Image or ImageReference.
// The alternative text is flattened; images keep no children.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	open := min(start+1, len(m.src))

	alt := mdast.NewNode(mdast.NodeParagraph)
	m.cursor = open + 1
	m.mapInlines(img, alt)

	textClose := matchBracket(m.src, open)
	if textClose < 0 {
		textClose = min(m.cursor+1, len(m.src))
	}
	tail := m.classifyLinkTail(open, textClose)

	node := mdast.NewNode(mdast.NodeImage)
	node.Inline = mdast.NewInlineAttrs()
	node.Inline.Alt = alt.PlainText()
	if tail.inline {
		node.Inline.Link = &mdast.LinkAttrs{
			Destination: string(img.Destination),
			Title:       string(unescapeText(img.Title)),
		}
	} else {
		node.Kind = mdast.NodeImageReference
		node.Inline.Reference = &mdast.ReferenceAttrs{
			Identifier: util.ToLinkReference([]byte(tail.label)),
			Label:      tail.label,
			Style:      tail.style,
		}
	}

	node.Position = m.pos(start, tail.end)
	m.cursor = tail.end
	return node
}

// mapAutoLink converts <url> autolinks and GFM bare URLs into a Link with a
// single text child holding the label.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	label := string(al.Label(m.src))
	url := string(al.URL(m.src))
	if al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}

	textStart, textEnd := start, start+len(label)
	end := textEnd
	if start < len(m.src) && m.src[start] == '<' {
		textStart++
		textEnd = textStart + len(label)
		end = textEnd
		if closeIdx := indexFrom(m.src, textEnd, '>'); closeIdx >= 0 {
			end = closeIdx + 1
		}
	}

	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{Destination: url})
	text := mdast.NewText(label)
	text.Position = m.pos(textStart, min(textEnd, len(m.src)))
	mdast.AppendChild(node, text)

	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// mapRawHTML converts inline HTML.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTML)
	segs := raw.Segments
	if segs.Len() == 0 {
		node.Inline = mdast.NewInlineAttrs()
		return node
	}

	start := segs.At(0).Start
	end := segs.At(segs.Len() - 1).Stop
	node.Inline = mdast.NewInlineAttrs().WithText(mdast.Slice(m.src, start, end))
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapTaskCheckBox records the checkbox state on the enclosing list item.
func (m *mapper) mapTaskCheckBox(cb *east.TaskCheckBox) {
	pos := skipGap(m.src, m.cursor, m.inQuote())
	if pos < len(m.src) && m.src[pos] == '[' {
		m.cursor = min(pos+3, len(m.src))
	}
	if len(m.items) > 0 {
		checked := cb.IsChecked
		m.items[len(m.items)-1].Block.ListItem.Checked = &checked
	}
	m.trimNextText = true
}

// mapFootnoteLink converts a footnote call.
func (m *mapper) mapFootnoteLink(fl *east.FootnoteLink) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	if start < len(m.src) && m.src[start] == '!' {
		start++
	}
	end := matchBracket(m.src, start)
	if end < 0 {
		end = start
	}

	label := m.footnotes[fl.Index]
	node := mdast.NewNode(mdast.NodeFootnoteReference)
	node.Inline = mdast.NewInlineAttrs().WithReference(&mdast.ReferenceAttrs{
		Identifier: util.ToLinkReference([]byte(label)),
		Label:      label,
	})
	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// mergeTexts joins adjacent Text children.
func mergeTexts(parent *mdast.Node) {
	for child := parent.FirstChild; child != nil; {
		next := child.Next
		if child.Kind == mdast.NodeText && next != nil && next.Kind == mdast.NodeText {
			child.Inline.Text += next.Inline.Text
			switch {
			case !next.HasPosition():
			case !child.HasPosition():
				child.Position = next.Position
			default:
				child.Position.End = next.Position.End
			}
			mdast.RemoveChild(parent, next)
			continue
		}
		child = next
	}
}
