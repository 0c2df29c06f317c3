package refs

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Collect walks the tree to build a reference Context.
func Collect(root *mdast.Node) *Context {
	ctx := NewContext()
	if root == nil {
		return ctx
	}

	coll := &collector{ctx: ctx}
	_ = mdast.Walk(root, coll.visit) //nolint:errcheck // visitor never returns error

	return ctx
}

// collector builds a Context by walking the tree.
type collector struct {
	ctx *Context
}

// visit processes a single node during tree traversal.
func (c *collector) visit(node *mdast.Node) error {
	switch node.Kind {
	case mdast.NodeHeading:
		c.ctx.Anchors.AddHeading(HeadingText(node), node)
	case mdast.NodeLink:
		if node.Inline != nil && node.Inline.Link != nil &&
			strings.HasPrefix(node.Inline.Link.Destination, "#") {
			c.ctx.FragmentLinks = append(c.ctx.FragmentLinks, node)
		}
	case mdast.NodeHTML:
		c.collectHTMLAnchors(node)
	default:
	}
	return nil
}

// HeadingText concatenates the literal text and code span values of a
// heading, in document order.
func HeadingText(heading *mdast.Node) string {
	var buf strings.Builder
	_ = mdast.Walk(heading, func(n *mdast.Node) error { //nolint:errcheck // visitor never returns error
		if n.Kind == mdast.NodeText || n.Kind == mdast.NodeInlineCode {
			buf.WriteString(n.Value())
		}
		return nil
	})
	return buf.String()
}

// collectHTMLAnchors extracts id attributes, and name attributes of <a>
// elements, from a raw HTML fragment.
func (c *collector) collectHTMLAnchors(node *mdast.Node) {
	nodes, err := html.ParseFragment(strings.NewReader(node.Value()), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch {
				case attr.Key == "id" && attr.Val != "":
					c.ctx.Anchors.Add(&Anchor{ID: attr.Val, Source: AnchorFromHTMLID, Node: node})
				case attr.Key == "name" && attr.Val != "" && n.DataAtom == atom.A:
					c.ctx.Anchors.Add(&Anchor{ID: attr.Val, Source: AnchorFromHTMLName, Node: node})
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
}
