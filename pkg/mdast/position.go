package mdast

// Point is a single location in a file.
type Point struct {
	// Line is 1-based.
	Line int

	// Column is 1-based and counts bytes.
	Column int

	// Offset is the 0-based byte offset.
	Offset int
}

// Position is the source span of a node. End is exclusive.
type Position struct {
	Start Point
	End   Point
}

// IsValid returns true if the position refers to real source text.
func (p Position) IsValid() bool {
	return p.Start.Line > 0 && p.Start.Column > 0 &&
		p.End.Line > 0 && p.End.Column > 0 &&
		p.Start.Offset <= p.End.Offset
}

// IsSingleLine returns true if start and end are on the same line.
func (p Position) IsSingleLine() bool {
	return p.Start.Line == p.End.Line
}

// Len returns the length of the span in bytes.
func (p Position) Len() int {
	return p.End.Offset - p.Start.Offset
}

// HasPosition reports whether the node was produced from source text.
func (n *Node) HasPosition() bool {
	return n.Position.IsValid()
}

// Text returns the source text covered by this node.
// Returns "" if the node has no associated file or position.
func (n *Node) Text() string {
	if n.File == nil || !n.HasPosition() {
		return ""
	}
	return Slice(n.File.Content, n.Position.Start.Offset, n.Position.End.Offset)
}

// StartLine returns the 1-based first line of the node, or 0.
func (n *Node) StartLine() int {
	return n.Position.Start.Line
}

// EndLine returns the 1-based last line of the node, or 0.
func (n *Node) EndLine() int {
	return n.Position.End.Line
}
