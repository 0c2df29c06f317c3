package format

// ContextKind identifies the container a node is rendered in.
type ContextKind int

const (
	// DocumentContext is the top level.
	DocumentContext ContextKind = iota
	// ListContext is inside a list item.
	ListContext
	// BlockquoteContext is inside a blockquote that is not in a list.
	BlockquoteContext
	// BlockquoteInListContext is inside a blockquote nested in a list item.
	BlockquoteInListContext
)

var contextKindNames = [...]string{
	DocumentContext:         "Document",
	ListContext:             "List",
	BlockquoteContext:       "Blockquote",
	BlockquoteInListContext: "BlockquoteInList",
}

func (k ContextKind) String() string {
	if k < 0 || int(k) >= len(contextKindNames) {
		return "ContextKind(?)"
	}
	return contextKindNames[k]
}

// ListState describes the innermost enclosing list.
type ListState struct {
	// Level is 0 for a top-level list and grows by one per nested list.
	Level int

	Ordered bool

	// Item is the number rendered for the current ordered item.
	Item int

	Spread bool
}

// RenderContext is threaded through rendering so each node knows its
// container. It is a value type; entering a container returns a new one.
type RenderContext struct {
	Kind ContextKind

	// List is meaningful in ListContext and BlockquoteInListContext.
	List ListState

	// Depth is the blockquote nesting depth.
	Depth int
}

// Document returns the top-level context.
func Document() RenderContext {
	return RenderContext{Kind: DocumentContext}
}

// InList reports whether an enclosing list item exists.
func (c RenderContext) InList() bool {
	return c.Kind == ListContext || c.Kind == BlockquoteInListContext
}

// EnterList returns the context for the items of a list.
func (c RenderContext) EnterList(ordered, spread bool, start int) RenderContext {
	level := 0
	if c.InList() {
		level = c.List.Level + 1
	}
	return RenderContext{
		Kind:  ListContext,
		List:  ListState{Level: level, Ordered: ordered, Item: start, Spread: spread},
		Depth: c.Depth,
	}
}

// EnterBlockquote returns the context for the children of a blockquote.
func (c RenderContext) EnterBlockquote() RenderContext {
	next := c
	next.Depth++
	switch c.Kind {
	case ListContext, BlockquoteInListContext:
		next.Kind = BlockquoteInListContext
	default:
		next.Kind = BlockquoteContext
	}
	return next
}
