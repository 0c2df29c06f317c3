package refs

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// AnchorSource indicates the origin of an anchor.
type AnchorSource int

const (
	// AnchorFromHeading is generated from a Markdown heading.
	AnchorFromHeading AnchorSource = iota

	// AnchorFromHTMLID is from an HTML element's id attribute.
	AnchorFromHTMLID

	// AnchorFromHTMLName is from an HTML anchor's name attribute.
	AnchorFromHTMLName
)

// String returns a short name for the source.
func (s AnchorSource) String() string {
	switch s {
	case AnchorFromHeading:
		return "heading"
	case AnchorFromHTMLID:
		return "id"
	case AnchorFromHTMLName:
		return "name"
	default:
		return "unknown"
	}
}

// Anchor represents a valid link target within the document.
type Anchor struct {
	// ID is the anchor identifier without the leading '#'.
	ID string

	// Source indicates how the anchor was generated.
	Source AnchorSource

	// Node is the heading or HTML node the anchor comes from.
	Node *mdast.Node
}

// AnchorMap provides anchor lookup by ID.
type AnchorMap struct {
	// anchors maps anchor IDs to their definitions.
	anchors map[string][]*Anchor

	// seenCounts tracks how many times each heading slug has been seen,
	// used for generating duplicate suffixes.
	seenCounts map[string]int

	lower cases.Caser
}

// NewAnchorMap creates an empty AnchorMap.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{
		anchors:    make(map[string][]*Anchor),
		seenCounts: make(map[string]int),
		lower:      cases.Lower(language.Und),
	}
}

// Add adds an anchor to the map.
func (m *AnchorMap) Add(anchor *Anchor) {
	m.anchors[anchor.ID] = append(m.anchors[anchor.ID], anchor)
}

// AddHeading registers the slug of a heading. A repeated slug is also
// reachable with a "-N" suffix, N counting earlier repeats.
// Returns the generated anchor ID.
func (m *AnchorMap) AddHeading(text string, node *mdast.Node) string {
	base := m.Slug(text)

	count := m.seenCounts[base]
	m.seenCounts[base] = count + 1

	id := base
	if count > 0 {
		id = base + "-" + strconv.Itoa(count)
	}
	m.Add(&Anchor{ID: id, Source: AnchorFromHeading, Node: node})
	return id
}

// slugDropped lists the characters removed from heading text.
var slugDropped = strings.NewReplacer(",", "", ".", "", "+", "", "&", "", " ", "-")

// Slug converts heading text to a section fragment: lowercase, the
// characters ",.+&" removed and each space turned into a dash.
// "Seek & Destroy" becomes "seek--destroy".
func (m *AnchorMap) Slug(text string) string {
	return slugDropped.Replace(m.lower.String(text))
}

// Has returns true if the anchor ID exists.
func (m *AnchorMap) Has(id string) bool {
	_, ok := m.anchors[id]
	return ok
}

// Lookup returns the first anchor with the given ID, or nil.
func (m *AnchorMap) Lookup(id string) *Anchor {
	anchors := m.anchors[id]
	if len(anchors) == 0 {
		return nil
	}
	return anchors[0]
}

// Count returns the total number of unique anchor IDs.
func (m *AnchorMap) Count() int {
	return len(m.anchors)
}
