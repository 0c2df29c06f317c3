package lint

import "github.com/yaklabco/mdcheck/pkg/mdast"

// NodeCache holds the nodes most rules ask for, collected in one walk.
//
// # Purpose
//
// Most rules start by listing headings, lists or code blocks. Walking the
// tree once per file instead of once per rule keeps linting O(nodes).
//
// # Thread Safety
//
// The engine builds the cache before rules start and never writes to it
// afterwards, so concurrent rules can read it without locks.
//
// # IMPORTANT: Do Not Mutate Returned Slices
//
// The slices are shared by every rule running on the file. Copy a slice
// before sorting or filtering it in place.
type NodeCache struct {
	headings    []*mdast.Node
	lists       []*mdast.Node
	listItems   []*mdast.Node
	code        []*mdast.Node
	blockquotes []*mdast.Node
	links       []*mdast.Node
	html        []*mdast.Node
}

// Initial capacity constants for pre-allocation based on typical document structure.
const (
	initCapHeadings    = 16
	initCapLists       = 8
	initCapListItems   = 32
	initCapCode        = 8
	initCapBlockquotes = 4
	initCapLinks       = 16
	initCapHTML        = 4
)

// NewNodeCache walks root once and indexes its nodes by kind, in document order.
func NewNodeCache(root *mdast.Node) *NodeCache {
	nc := &NodeCache{
		headings:    make([]*mdast.Node, 0, initCapHeadings),
		lists:       make([]*mdast.Node, 0, initCapLists),
		listItems:   make([]*mdast.Node, 0, initCapListItems),
		code:        make([]*mdast.Node, 0, initCapCode),
		blockquotes: make([]*mdast.Node, 0, initCapBlockquotes),
		links:       make([]*mdast.Node, 0, initCapLinks),
		html:        make([]*mdast.Node, 0, initCapHTML),
	}
	if root == nil {
		return nc
	}

	//nolint:errcheck // Walk visitor never returns error in this usage
	mdast.Walk(root, func(node *mdast.Node) error {
		switch node.Kind {
		case mdast.NodeHeading:
			nc.headings = append(nc.headings, node)
		case mdast.NodeList:
			nc.lists = append(nc.lists, node)
		case mdast.NodeListItem:
			nc.listItems = append(nc.listItems, node)
		case mdast.NodeCode:
			nc.code = append(nc.code, node)
		case mdast.NodeBlockquote:
			nc.blockquotes = append(nc.blockquotes, node)
		case mdast.NodeLink:
			nc.links = append(nc.links, node)
		case mdast.NodeHTML:
			nc.html = append(nc.html, node)
		default:
		}
		return nil
	})

	return nc
}

// Headings returns all heading nodes.
func (nc *NodeCache) Headings() []*mdast.Node { return nc.headings }

// Lists returns all list nodes, ordered and unordered.
func (nc *NodeCache) Lists() []*mdast.Node { return nc.lists }

// ListItems returns all list item nodes.
func (nc *NodeCache) ListItems() []*mdast.Node { return nc.listItems }

// Code returns all code block nodes, fenced and indented.
func (nc *NodeCache) Code() []*mdast.Node { return nc.code }

// Blockquotes returns all blockquote nodes.
func (nc *NodeCache) Blockquotes() []*mdast.Node { return nc.blockquotes }

// Links returns all inline link nodes, autolinks included.
func (nc *NodeCache) Links() []*mdast.Node { return nc.links }

// HTML returns all raw HTML nodes, block and inline.
func (nc *NodeCache) HTML() []*mdast.Node { return nc.html }
