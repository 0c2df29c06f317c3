package goldmark

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// Nodes are visited in document order while cursor tracks the first source
// byte not yet claimed by a mapped node. Constructs without content
// segments (markers, fences, empty items) are located by scanning forward
// from the cursor.
type mapper struct {
	src  []byte
	snap *mdast.FileSnapshot
	pctx parser.Context

	cursor     int
	quoteDepth int

	// items is the stack of list items being mapped, for task checkboxes.
	items []*mdast.Node

	// footnotes maps goldmark footnote indexes to their labels.
	footnotes map[int]string

	// trimNextText drops the space between a task checkbox and its text.
	trimNextText bool
}

// newMapper creates a new mapper for the given snapshot.
func newMapper(snap *mdast.FileSnapshot, pctx parser.Context) *mapper {
	return &mapper{
		src:       snap.Content,
		snap:      snap,
		pctx:      pctx,
		footnotes: map[int]string{},
	}
}

func (m *mapper) pos(start, end int) mdast.Position {
	return m.snap.PositionOf(start, end)
}

func (m *mapper) inQuote() bool {
	return m.quoteDepth > 0
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewRoot()

	_ = ast.Walk(gmDoc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering && fn.Index > 0 {
			m.footnotes[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})

	m.mapFrontMatter(root)
	m.mapChildren(gmDoc, root)
	m.recoverDefinitions(root)

	root.Position = m.pos(0, len(m.src))
	return root
}

// mapChildren recursively maps all block children of a goldmark node.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	reorder := false
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*east.FootnoteList); ok {
			m.mapFootnoteList(list, parent)
			reorder = true
			continue
		}
		if child.Type() == ast.TypeInline {
			m.mapInline(child, parent)
			continue
		}
		if node := m.mapBlock(child); node != nil {
			mdast.AppendChild(parent, node)
		}
	}
	if reorder {
		reorderByOffset(parent)
	}
	mergeTexts(parent)
}

// mapBlock converts a single goldmark block node to an mdast.Node.
func (m *mapper) mapBlock(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return m.mapHeading(gmn)
	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(gmNode)
	case *ast.List:
		return m.mapList(gmn)
	case *ast.ListItem:
		return m.mapListItem(gmn)
	case *ast.Blockquote:
		return m.mapBlockquote(gmn)
	case *ast.FencedCodeBlock:
		return m.mapFencedCode(gmn)
	case *ast.CodeBlock:
		return m.mapIndentedCode(gmn)
	case *ast.ThematicBreak:
		return m.mapThematicBreak()
	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)
	case *east.Table:
		return m.mapTable(gmn)
	default:
		return nil
	}
}

// mapParagraph converts a goldmark Paragraph or TextBlock.
func (m *mapper) mapParagraph(gmNode ast.Node) *mdast.Node {
	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return nil
	}

	start := lines.At(0).Start
	end := trimRightSpace(m.src, start, lines.At(lines.Len()-1).Stop)

	node := mdast.NewNode(mdast.NodeParagraph)
	m.cursor = start
	m.mapInlines(gmNode, node)
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapHeading converts ATX and setext headings.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := mdast.NewHeading(h.Level)
	lines := h.Lines()

	var start, end int
	switch {
	case lines.Len() == 0:
		start = skipGap(m.src, m.cursor, m.inQuote())
		end = trimmedLineEnd(m.src, start)
		start = backOverLineIndent(m.src, start)
	case m.isATX(lines.At(0).Start):
		first := lines.At(0)
		start = backOverLineIndent(m.src, hashRunStart(m.src, first.Start))
		end = trimmedLineEnd(m.src, first.Start)
	default:
		first, last := lines.At(0), lines.At(lines.Len()-1)
		start = backOverLineIndent(m.src, first.Start)
		underline := nextLineStart(m.src, max(last.Start, last.Stop-1))
		end = trimmedLineEnd(m.src, underline)
	}

	m.cursor = start
	m.mapInlines(h, node)
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// isATX reports whether heading content starting at offset is preceded by
// an opening hash run on the same line.
func (m *mapper) isATX(contentStart int) bool {
	hashes := hashRunStart(m.src, contentStart)
	return hashes < backOverIndent(m.src, contentStart)
}

// hashRunStart returns the offset of the opening '#' run before contentStart.
func hashRunStart(src []byte, contentStart int) int {
	pos := backOverIndent(src, contentStart)
	for pos > 0 && src[pos-1] == '#' {
		pos--
	}
	if pos == backOverIndent(src, contentStart) {
		return contentStart
	}
	return pos
}

// backOverLineIndent moves offset back over leading indentation, but only
// when nothing except whitespace precedes it on the line.
func backOverLineIndent(src []byte, offset int) int {
	back := backOverIndent(src, offset)
	if back == lineStartOf(src, offset) {
		return back
	}
	return offset
}

// mapList converts a goldmark List.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)
	node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
		Ordered: list.IsOrdered(),
		Start:   list.Start,
		Spread:  !list.IsTight,
		Marker:  list.Marker,
	})

	m.mapChildren(list, node)

	if node.FirstChild != nil {
		node.Position = m.pos(node.FirstChild.Position.Start.Offset, node.LastChild.Position.End.Offset)
	}
	return node
}

// mapListItem converts a goldmark ListItem. The item starts at its marker.
func (m *mapper) mapListItem(item *ast.ListItem) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	markerEnd := listMarkerEnd(m.src, start)

	node := mdast.NewNode(mdast.NodeListItem)
	node.Block = mdast.NewBlockAttrs()
	node.Block.ListItem = &mdast.ListItemAttrs{}

	m.cursor = markerEnd
	m.items = append(m.items, node)
	m.mapChildren(item, node)
	m.items = m.items[:len(m.items)-1]

	end := markerEnd
	if last := node.LastChild; last != nil && last.HasPosition() {
		end = max(end, last.Position.End.Offset)
	}
	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// listMarkerEnd returns the offset just after the list marker at start.
func listMarkerEnd(src []byte, start int) int {
	if start >= len(src) {
		return start
	}
	switch src[start] {
	case '-', '*', '+':
		return start + 1
	}
	pos := start
	for pos < len(src) && src[pos] >= '0' && src[pos] <= '9' {
		pos++
	}
	if pos > start && pos < len(src) && (src[pos] == '.' || src[pos] == ')') {
		return pos + 1
	}
	return start
}

// mapBlockquote converts a goldmark Blockquote. The quote starts at its '>'.
func (m *mapper) mapBlockquote(bq *ast.Blockquote) *mdast.Node {
	start := skipGap(m.src, m.cursor, false)
	if m.inQuote() && lineStartOf(m.src, start) > m.cursor {
		// A new line inside an enclosing quote: skip the outer markers.
		for range m.quoteDepth {
			if start < len(m.src) && m.src[start] == '>' {
				start = skipGap(m.src, start+1, false)
			}
		}
	}

	node := mdast.NewNode(mdast.NodeBlockquote)
	m.cursor = min(start+1, len(m.src))
	m.quoteDepth++
	m.mapChildren(bq, node)
	m.quoteDepth--

	end := min(start+1, len(m.src))
	if last := node.LastChild; last != nil && last.HasPosition() {
		end = max(end, last.Position.End.Offset)
	}
	node.Position = m.pos(start, end)
	m.cursor = end
	return node
}

// mapFencedCode converts a fenced code block, including both fences.
func (m *mapper) mapFencedCode(fc *ast.FencedCodeBlock) *mdast.Node {
	open := skipGap(m.src, m.cursor, m.inQuote())
	fenceChar := byte('`')
	if open < len(m.src) && m.src[open] == '~' {
		fenceChar = '~'
	}
	fenceLen := max(runLength(m.src, open, fenceChar), 3)
	start := backOverLineIndent(m.src, open)

	lines := fc.Lines()
	var value bytes.Buffer
	for i := range lines.Len() {
		line := lines.At(i)
		value.Write(line.Value(m.src))
	}

	lastLine := open
	if lines.Len() > 0 {
		lastLine = lines.At(lines.Len() - 1).Start
	}
	end := lineEndOf(m.src, lastLine)
	if closing := nextLineStart(m.src, lastLine); closing < len(m.src) {
		p := stripLinePrefix(m.src, closing)
		if p < len(m.src) && m.src[p] == fenceChar && runLength(m.src, p, fenceChar) >= fenceLen {
			end = trimmedLineEnd(m.src, p)
		}
	}

	var info string
	if fc.Info != nil {
		info = strings.TrimSpace(string(unescapeText(fc.Info.Segment.Value(m.src))))
	}
	lang, meta, _ := strings.Cut(info, " ")

	node := mdast.NewNode(mdast.NodeCode)
	node.Block = mdast.NewBlockAttrs().WithCode(&mdast.CodeAttrs{
		Lang:   lang,
		Meta:   strings.TrimSpace(meta),
		Value:  strings.TrimSuffix(strings.TrimSuffix(value.String(), "\n"), "\r"),
		Fenced: true,
	})
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapIndentedCode converts an indented code block.
func (m *mapper) mapIndentedCode(cb *ast.CodeBlock) *mdast.Node {
	lines := cb.Lines()
	if lines.Len() == 0 {
		return nil
	}

	var value bytes.Buffer
	for i := range lines.Len() {
		line := lines.At(i)
		value.Write(line.Value(m.src))
	}

	start := backOverLineIndent(m.src, lines.At(0).Start)
	end := trimRightSpace(m.src, start, lines.At(lines.Len()-1).Stop)

	node := mdast.NewNode(mdast.NodeCode)
	node.Block = mdast.NewBlockAttrs().WithCode(&mdast.CodeAttrs{
		Value: strings.TrimRight(value.String(), "\r\n"),
	})
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapThematicBreak locates the break line from the cursor.
func (m *mapper) mapThematicBreak() *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	end := trimmedLineEnd(m.src, start)

	node := mdast.NewNode(mdast.NodeThematicBreak)
	node.Position = m.pos(backOverLineIndent(m.src, start), end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapHTMLBlock converts a raw HTML block.
func (m *mapper) mapHTMLBlock(hb *ast.HTMLBlock) *mdast.Node {
	lines := hb.Lines()

	var value bytes.Buffer
	start := skipGap(m.src, m.cursor, m.inQuote())
	stop := start
	for i := range lines.Len() {
		line := lines.At(i)
		if i == 0 {
			start = line.Start
		}
		value.Write(line.Value(m.src))
		stop = line.Stop
	}
	if hb.HasClosure() {
		value.Write(hb.ClosureLine.Value(m.src))
		stop = hb.ClosureLine.Stop
	}
	end := trimRightSpace(m.src, start, stop)

	node := mdast.NewNode(mdast.NodeHTML)
	node.Block = mdast.NewBlockAttrs()
	node.Block.HTML = strings.TrimRight(value.String(), "\r\n")
	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

// mapTable converts a GFM table. Rows occupy consecutive lines; the
// delimiter row follows the header and has no node of its own.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	start := skipGap(m.src, m.cursor, m.inQuote())
	firstLine, _ := m.snap.LineAt(start)

	align := make([]mdast.Align, len(table.Alignments))
	for i, a := range table.Alignments {
		align[i] = convertAlignment(a)
	}

	node := mdast.NewNode(mdast.NodeTable)
	node.Block = mdast.NewBlockAttrs().WithTable(&mdast.TableAttrs{Align: align})

	end := start
	rowIdx := 0
	for gmRow := table.FirstChild(); gmRow != nil; gmRow = gmRow.NextSibling() {
		lineNo := firstLine + rowIdx
		if rowIdx > 0 {
			lineNo++
		}
		rowStart := stripLinePrefix(m.src, m.snap.LineStart(lineNo))
		rowEnd := trimmedLineEnd(m.src, rowStart)

		row := mdast.NewNode(mdast.NodeTableRow)
		for gmCell := gmRow.FirstChild(); gmCell != nil; gmCell = gmCell.NextSibling() {
			mdast.AppendChild(row, m.mapTableCell(gmCell))
		}
		row.Position = m.pos(rowStart, rowEnd)
		mdast.AppendChild(node, row)

		end = rowEnd
		rowIdx++
	}

	node.Position = m.pos(start, end)
	m.cursor = max(m.cursor, end)
	return node
}

func (m *mapper) mapTableCell(gmCell ast.Node) *mdast.Node {
	cell := mdast.NewNode(mdast.NodeTableCell)
	lines := gmCell.Lines()
	if lines.Len() == 0 {
		return cell
	}
	seg := lines.At(0)
	m.cursor = seg.Start
	m.mapInlines(gmCell, cell)
	cell.Position = m.pos(seg.Start, trimRightSpace(m.src, seg.Start, seg.Stop))
	return cell
}

func convertAlignment(a east.Alignment) mdast.Align {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignRight:
		return mdast.AlignRight
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignNone:
		return mdast.AlignNone
	default:
		return mdast.AlignNone
	}
}

// reorderByOffset sorts children by start offset. goldmark gathers footnote
// definitions into one list at the first definition's position.
func reorderByOffset(parent *mdast.Node) {
	children := parent.Children()
	slices.SortStableFunc(children, func(a, b *mdast.Node) int {
		return a.Position.Start.Offset - b.Position.Start.Offset
	})
	for _, child := range children {
		mdast.RemoveChild(parent, child)
	}
	for _, child := range children {
		mdast.AppendChild(parent, child)
	}
}

// unescapeText resolves backslash escapes and character references.
func unescapeText(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
