package mdast

// NewNode creates a detached node of the given kind with no position.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewRoot creates a new root node.
func NewRoot() *Node {
	return NewNode(NodeRoot)
}

// NewText creates a Text node holding value.
func NewText(value string) *Node {
	n := NewNode(NodeText)
	n.Inline = NewInlineAttrs().WithText(value)
	return n
}

// NewHeading creates a Heading node of the given depth.
func NewHeading(depth int) *Node {
	n := NewNode(NodeHeading)
	n.Block = NewBlockAttrs().WithHeadingLevel(depth)
	return n
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)
	link(parent, parent.LastChild, child)
}

// InsertBefore places n immediately before sibling, which must be attached.
func InsertBefore(sibling, n *Node) {
	if sibling == nil || n == nil || sibling.Parent == nil || sibling == n {
		return
	}
	parent := sibling.Parent
	detach(n)
	link(parent, sibling.Prev, n)
}

// RemoveChild detaches child from parent. It does nothing if child belongs
// to another node.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	detach(child)
}

// SetFile points node and all its descendants at file.
func SetFile(node *Node, file *FileSnapshot) {
	for n := range All(node) {
		n.File = file
	}
}

// link inserts the detached child into parent directly after prev, or first
// when prev is nil.
func link(parent, prev, child *Node) {
	next := parent.FirstChild
	if prev != nil {
		next = prev.Next
		prev.Next = child
	} else {
		parent.FirstChild = child
	}
	if next != nil {
		next.Prev = child
	} else {
		parent.LastChild = child
	}

	child.Parent = parent
	child.Prev = prev
	child.Next = next
}

// detach unlinks n from its parent and siblings.
func detach(n *Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		parent.LastChild = n.Prev
	}
	n.Parent, n.Prev, n.Next = nil, nil, nil
}
