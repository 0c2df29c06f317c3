package goldmark

import (
	"bytes"
	"regexp"
	"strings"

	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Front matter formats.
const (
	FrontMatterYAML = "yaml"
	FrontMatterTOML = "toml"
)

// mapFrontMatter adds a FrontMatter node when the document opens with a
// metadata block. The frontmatter extension removes the block from the
// goldmark tree, so its extent is read back from the source.
func (m *mapper) mapFrontMatter(root *mdast.Node) {
	data := frontmatter.Get(m.pctx)
	if data == nil || len(m.src) == 0 {
		return
	}

	delim := m.src[0]
	format := FrontMatterYAML
	if delim == '+' {
		format = FrontMatterTOML
	}

	bodyStart := nextLineStart(m.src, 0)
	bodyEnd, end := len(m.src), len(m.src)
	for line := bodyStart; line < len(m.src); line = nextLineStart(m.src, line) {
		content := m.src[line:lineEndOf(m.src, line)]
		trimmed := bytes.TrimRight(content, " \t")
		if len(trimmed) >= 3 && len(bytes.Trim(trimmed, string(delim))) == 0 {
			bodyEnd = line
			end = line + len(trimmed)
			break
		}
	}

	raw := mdast.Slice(m.src, bodyStart, bodyEnd)
	raw = strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

	attrs := &mdast.FrontMatterAttrs{Format: format, Raw: raw}
	var decoded map[string]any
	if err := data.Decode(&decoded); err == nil {
		attrs.Data = decoded
	}

	node := mdast.NewNode(mdast.NodeFrontMatter)
	node.Block = mdast.NewBlockAttrs()
	node.Block.FrontMatter = attrs
	node.Position = m.pos(0, end)
	mdast.AppendChild(root, node)
	m.cursor = end
}

// mapFootnoteList maps the footnote definitions goldmark gathered into one
// list. Each definition is positioned at its own "[^label]:" line.
func (m *mapper) mapFootnoteList(list *east.FootnoteList, parent *mdast.Node) {
	resume := m.cursor
	first := true
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		fn, ok := child.(*east.Footnote)
		if !ok {
			continue
		}
		node := m.mapFootnote(fn)
		mdast.AppendChild(parent, node)
		if first {
			resume = max(resume, node.Position.End.Offset)
			first = false
		}
	}
	m.cursor = resume
}

func (m *mapper) mapFootnote(fn *east.Footnote) *mdast.Node {
	label := string(fn.Ref)
	start := m.findFootnoteDefinition(label)
	if start < 0 {
		start = skipGap(m.src, m.cursor, m.inQuote())
	}
	colon := min(start+len("[^")+len(label)+len("]:"), len(m.src))

	node := mdast.NewNode(mdast.NodeFootnoteDefinition)
	node.Block = mdast.NewBlockAttrs().WithReference(&mdast.ReferenceAttrs{
		Identifier: util.ToLinkReference(fn.Ref),
		Label:      label,
	})

	m.cursor = colon
	m.mapChildren(fn, node)

	end := colon
	if last := node.LastChild; last != nil && last.HasPosition() {
		end = max(end, last.Position.End.Offset)
	}
	node.Position = m.pos(start, end)
	return node
}

// findFootnoteDefinition returns the offset of "[^label]:" at the start of a
// line (after container prefixes), or -1.
func (m *mapper) findFootnoteDefinition(label string) int {
	needle := []byte("[^" + label + "]:")
	from := 0
	for from < len(m.src) {
		idx := bytes.Index(m.src[from:], needle)
		if idx < 0 {
			return -1
		}
		at := from + idx
		if stripLinePrefix(m.src, lineStartOf(m.src, at)) == at {
			return at
		}
		from = at + 1
	}
	return -1
}

var definitionPattern = regexp.MustCompile(`^[ \t>]*\[((?:[^\[\]\\]|\\.)+)\]:`)

// recoverDefinitions adds Definition nodes for link reference definitions.
// goldmark stores them only in the parser context, so candidate lines are
// matched in the source and confirmed against the context.
func (m *mapper) recoverDefinitions(root *mdast.Node) {
	if len(m.pctx.References()) == 0 {
		return
	}

	leaves := mdast.FindAll(root, func(n *mdast.Node) bool {
		switch n.Kind {
		case mdast.NodeParagraph, mdast.NodeCode, mdast.NodeHTML, mdast.NodeHeading,
			mdast.NodeTable, mdast.NodeFrontMatter:
			return n.IsBlock() && n.HasPosition()
		default:
			return false
		}
	})
	covered := func(offset int) bool {
		for _, leaf := range leaves {
			if offset >= leaf.Position.Start.Offset && offset < leaf.Position.End.Offset {
				return true
			}
		}
		return false
	}

	for lineNo := 1; lineNo <= m.snap.LineCount(); lineNo++ {
		lineStart := m.snap.LineStart(lineNo)
		line := m.snap.LineContent(lineNo)
		match := definitionPattern.FindSubmatchIndex(line)
		if match == nil {
			continue
		}

		start := lineStart + stripLinePrefix(line, 0)
		if covered(start) {
			continue
		}

		label := string(line[match[2]:match[3]])
		ref, ok := m.pctx.Reference(util.ToLinkReference([]byte(label)))
		if !ok {
			continue
		}

		node := mdast.NewNode(mdast.NodeDefinition)
		node.Block = mdast.NewBlockAttrs().WithReference(&mdast.ReferenceAttrs{
			Identifier: util.ToLinkReference([]byte(label)),
			Label:      label,
		})
		node.Block.Link = &mdast.LinkAttrs{
			Destination: string(ref.Destination()),
			Title:       string(unescapeText(ref.Title())),
		}
		node.Position = m.pos(start, trimmedLineEnd(m.src, start))

		insertByOffset(root, node)
	}
}

// insertByOffset places node among the descendants of parent so document
// order is preserved, descending into the container that encloses it.
func insertByOffset(parent, node *mdast.Node) {
	offset := node.Position.Start.Offset

	for child := parent.FirstChild; child != nil; child = child.Next {
		if !encloses(child, offset) {
			continue
		}
		switch child.Kind {
		case mdast.NodeBlockquote, mdast.NodeListItem, mdast.NodeFootnoteDefinition:
			insertByOffset(child, node)
			return
		case mdast.NodeList:
			for item := child.FirstChild; item != nil; item = item.Next {
				if encloses(item, offset) {
					insertByOffset(item, node)
					return
				}
			}
		default:
		}
	}

	for child := parent.FirstChild; child != nil; child = child.Next {
		if child.HasPosition() && child.Position.Start.Offset > offset {
			mdast.InsertBefore(child, node)
			return
		}
	}
	mdast.AppendChild(parent, node)
}

func encloses(n *mdast.Node, offset int) bool {
	return n.HasPosition() && n.Position.Start.Offset <= offset && offset < n.Position.End.Offset
}
