package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading depth (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// ListItem holds task-list state for NodeListItem.
	ListItem *ListItemAttrs

	// Code holds code block attributes for NodeCode.
	Code *CodeAttrs

	// Table holds column alignments for NodeTable.
	Table *TableAttrs

	// Reference holds identifier and label for NodeDefinition and NodeFootnoteDefinition.
	Reference *ReferenceAttrs

	// Link holds destination and title for NodeDefinition.
	Link *LinkAttrs

	// FrontMatter holds the metadata block for NodeFrontMatter.
	FrontMatter *FrontMatterAttrs

	// HTML is the raw text of a block-level NodeHTML.
	HTML string
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// Start is the number of the first item for ordered lists.
	Start int

	// Spread is true for loose lists (blank lines between items).
	Spread bool

	// Marker is the bullet or delimiter character ('-', '+', '*', '.', ')').
	Marker byte
}

// ListItemAttrs holds attributes for list item nodes.
type ListItemAttrs struct {
	// Checked is nil for plain items and non-nil for task items.
	Checked *bool
}

// CodeAttrs holds attributes for code block nodes.
type CodeAttrs struct {
	// Lang is the first word of the info string.
	Lang string

	// Meta is the remainder of the info string.
	Meta string

	// Value is the code content with the trailing newline removed.
	Value string

	// Fenced is false for indented code blocks.
	Fenced bool
}

// Align is a table column alignment.
type Align uint8

// Table column alignments.
const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// TableAttrs holds attributes for table nodes.
type TableAttrs struct {
	// Align has one entry per column.
	Align []Align
}

// FrontMatterAttrs holds a document metadata block.
type FrontMatterAttrs struct {
	// Format is "yaml" or "toml".
	Format string

	// Raw is the text between the delimiters.
	Raw string

	// Data is the decoded metadata, nil when decoding failed.
	Data map[string]any
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the literal value for NodeText, NodeInlineCode and inline NodeHTML.
	Text string

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// Reference holds identifier, label and style for reference nodes.
	Reference *ReferenceAttrs

	// Alt is the alternative text for NodeImage and NodeImageReference.
	Alt string
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleFull represents full reference links: [text][label] or ![alt][label].
	RefStyleFull ReferenceStyle = iota

	// RefStyleCollapsed represents collapsed reference links: [label][] or ![label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label] or ![label].
	RefStyleShortcut
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// ReferenceAttrs holds the reference fields shared by references and definitions.
type ReferenceAttrs struct {
	// Identifier is the normalized (case-folded) label.
	Identifier string

	// Label is the label as written in the source.
	Label string

	// Style is meaningful for NodeLinkReference and NodeImageReference only.
	Style ReferenceStyle
}

// LinkAttrs holds attributes for link, image and definition nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCode sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCode(attrs *CodeAttrs) *BlockAttrs {
	a.Code = attrs
	return a
}

// WithTable sets table attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithTable(attrs *TableAttrs) *BlockAttrs {
	a.Table = attrs
	return a
}

// WithReference sets reference attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithReference(attrs *ReferenceAttrs) *BlockAttrs {
	a.Reference = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text string) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithReference sets reference attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithReference(attrs *ReferenceAttrs) *InlineAttrs {
	a.Reference = attrs
	return a
}
