// Package style classifies how a node was written in the source.
//
// Every heuristic slices the node's source span through mdast.SliceString,
// so a node with a missing or out-of-range position falls back to the
// documented default rather than failing.
package style

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Heading is the written form of a heading.
type Heading int

const (
	// ATX headings open with a run of '#'.
	ATX Heading = iota
	// Setext headings are underlined with '=' or '-'.
	Setext
)

// String returns "atx" or "setext".
func (h Heading) String() string {
	if h == Setext {
		return "setext"
	}
	return "atx"
}

// CodeBlock is the written form of a code block.
type CodeBlock int

const (
	// Fenced blocks are wrapped in ``` or ~~~ lines.
	Fenced CodeBlock = iota
	// Indented blocks are indented by four spaces.
	Indented
)

// String returns "fenced" or "indented".
func (c CodeBlock) String() string {
	if c == Indented {
		return "indented"
	}
	return "fenced"
}

// DefaultMarker is used when an unordered marker cannot be read.
const DefaultMarker byte = '-'

func source(n *mdast.Node, src string) string {
	return mdast.NodeSource(n, src)
}

// HeadingOf reports the style of a heading. Text without a leading '#' run
// is Setext.
func HeadingOf(n *mdast.Node, src string) Heading {
	text := strings.TrimLeft(source(n, src), " \t")
	if strings.HasPrefix(text, "#") {
		return ATX
	}
	if text == "" {
		return ATX
	}
	return Setext
}

// Marker returns the bullet of an unordered list item: '*', '-' or '+'.
// It falls back to DefaultMarker.
func Marker(item *mdast.Node, src string) byte {
	text := strings.TrimLeft(source(item, src), " \t")
	if text != "" {
		switch text[0] {
		case '*', '-', '+':
			return text[0]
		}
	}
	return DefaultMarker
}

// IsUnderscoreStrong reports whether a strong node is wrapped in "__".
// The slice must contain exactly two "__" runs.
func IsUnderscoreStrong(n *mdast.Node, src string) bool {
	return strings.Count(source(n, src), "__") == 2
}

// IsSuperscript reports whether a delete node uses single tildes, that is
// exactly two '~' in its slice.
func IsSuperscript(n *mdast.Node, src string) bool {
	return strings.Count(source(n, src), "~") == 2
}

// CodeBlockOf reports the style of a code block. A block is fenced when its
// slice opens with a fence. The closing fence is not consulted: an unclosed
// fence runs to the end of its container and is still a fenced block. Nodes
// without a usable position use their attributes.
func CodeBlockOf(n *mdast.Node, src string) CodeBlock {
	text := strings.TrimLeft(source(n, src), " \t")
	if text == "" {
		if n.Block != nil && n.Block.Code != nil && n.Block.Code.Fenced {
			return Fenced
		}
		return Indented
	}
	if hasFence(text) {
		return Fenced
	}
	return Indented
}

// IsFencedButIndented reports whether an indented code block contains a
// fence line, which usually means the fences were indented by mistake.
func IsFencedButIndented(n *mdast.Node, src string) bool {
	if CodeBlockOf(n, src) != Indented {
		return false
	}
	text := source(n, src)
	return strings.Contains(text, "```") || strings.Contains(text, "~~~")
}

func hasFence(text string) bool {
	return strings.HasPrefix(text, "```") || strings.HasPrefix(text, "~~~")
}
