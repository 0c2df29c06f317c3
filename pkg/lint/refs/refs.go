// Package refs indexes in-document link targets: heading slugs and HTML
// anchors, and the links that point at them by fragment.
package refs

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Context holds all fragment-related data for a document.
type Context struct {
	// Anchors is the map of valid fragment targets.
	Anchors *AnchorMap

	// FragmentLinks are the links whose destination starts with '#', in
	// document order.
	FragmentLinks []*mdast.Node
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{Anchors: NewAnchorMap()}
}

// ValidateFragment reports whether a "#fragment" destination names an
// anchor in the document. The comparison is exact.
func (c *Context) ValidateFragment(destination string) bool {
	id, ok := strings.CutPrefix(destination, "#")
	if !ok {
		return true
	}
	return c.Anchors.Has(id)
}

// BrokenLinks returns the fragment links that name no anchor.
func (c *Context) BrokenLinks() []*mdast.Node {
	var broken []*mdast.Node
	for _, link := range c.FragmentLinks {
		if !c.ValidateFragment(ExtractFragment(link)) {
			broken = append(broken, link)
		}
	}
	return broken
}

// ExtractFragment returns the destination of a fragment link node.
func ExtractFragment(link *mdast.Node) string {
	if link == nil || link.Inline == nil || link.Inline.Link == nil {
		return ""
	}
	return link.Inline.Link.Destination
}
