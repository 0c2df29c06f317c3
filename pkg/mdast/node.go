package mdast

import "strconv"

// NodeKind classifies the type of a document tree node.
// The set is closed: every consumer switches over exactly these kinds.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeRoot NodeKind = iota

	// Block-level nodes.
	NodeHeading
	NodeParagraph
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCode
	NodeThematicBreak
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeDefinition
	NodeFootnoteDefinition
	NodeFrontMatter

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeDelete
	NodeBreak
	NodeInlineCode
	NodeLink
	NodeImage
	NodeLinkReference
	NodeImageReference
	NodeFootnoteReference

	// NodeHTML is raw HTML, either a block or an inline fragment.
	NodeHTML

	nodeKindCount
)

var nodeKindNames = [...]string{
	NodeRoot:               "Root",
	NodeHeading:            "Heading",
	NodeParagraph:          "Paragraph",
	NodeList:               "List",
	NodeListItem:           "ListItem",
	NodeBlockquote:         "Blockquote",
	NodeCode:               "Code",
	NodeThematicBreak:      "ThematicBreak",
	NodeTable:              "Table",
	NodeTableRow:           "TableRow",
	NodeTableCell:          "TableCell",
	NodeDefinition:         "Definition",
	NodeFootnoteDefinition: "FootnoteDefinition",
	NodeFrontMatter:        "FrontMatter",
	NodeText:               "Text",
	NodeEmphasis:           "Emphasis",
	NodeStrong:             "Strong",
	NodeDelete:             "Delete",
	NodeBreak:              "Break",
	NodeInlineCode:         "InlineCode",
	NodeLink:               "Link",
	NodeImage:              "Image",
	NodeLinkReference:      "LinkReference",
	NodeImageReference:     "ImageReference",
	NodeFootnoteReference:  "FootnoteReference",
	NodeHTML:               "HTML",
}

// String returns the kind name, or "NodeKind(N)" for values outside the set.
func (k NodeKind) String() string {
	if k.Valid() {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the defined node kinds.
func (k NodeKind) Valid() bool {
	return k < nodeKindCount
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position is the source span. It is the zero value for synthesized nodes.
	Position Position

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeRoot, NodeHeading, NodeParagraph, NodeList, NodeListItem,
		NodeBlockquote, NodeCode, NodeThematicBreak, NodeTable, NodeTableRow,
		NodeTableCell, NodeDefinition, NodeFootnoteDefinition, NodeFrontMatter:
		return true
	case NodeHTML:
		return n.Block != nil
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	if n.Kind == NodeHTML {
		return n.Block == nil
	}
	return n.Kind.Valid() && !n.IsBlock()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Index returns the position of n among its siblings, or -1 without a parent.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	idx := 0
	for sib := n.Parent.FirstChild; sib != nil; sib = sib.Next {
		if sib == n {
			return idx
		}
		idx++
	}
	return -1
}

// Value returns the literal payload of leaf nodes: text, inline code,
// code block contents, raw HTML and raw front matter. Other kinds return "".
func (n *Node) Value() string {
	switch n.Kind {
	case NodeText, NodeInlineCode:
		if n.Inline != nil {
			return n.Inline.Text
		}
	case NodeCode:
		if n.Block != nil && n.Block.Code != nil {
			return n.Block.Code.Value
		}
	case NodeHTML:
		if n.Block != nil {
			return n.Block.HTML
		}
		if n.Inline != nil {
			return n.Inline.Text
		}
	case NodeFrontMatter:
		if n.Block != nil && n.Block.FrontMatter != nil {
			return n.Block.FrontMatter.Raw
		}
	default:
	}
	return ""
}

// HeadingLevel returns the depth of a heading node, or 0 for other kinds.
func (n *Node) HeadingLevel() int {
	if n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// ListAttrs returns the list attributes of a List node, or nil.
func (n *Node) ListAttrs() *ListAttrs {
	if n.Block == nil {
		return nil
	}
	return n.Block.List
}

// IsOrderedList reports whether n is an ordered List node.
func (n *Node) IsOrderedList() bool {
	attrs := n.ListAttrs()
	return n.Kind == NodeList && attrs != nil && attrs.Ordered
}

// PlainText concatenates the values of all Text descendants in document order.
func (n *Node) PlainText() string {
	var buf []byte
	for _, text := range FindByKind(n, NodeText) {
		buf = append(buf, text.Value()...)
	}
	return string(buf)
}
