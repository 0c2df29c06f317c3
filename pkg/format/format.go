// Package format renders a document tree in canonical Markdown form.
//
// Rendering is pure and deterministic: equivalent trees always produce the
// same text, and rendering the parse of canonical output reproduces it
// byte for byte. Block nodes render to lines without container prefixes;
// lists and blockquotes prefix the lines of their children, so nesting of
// any depth indents consistently.
package format

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// UnsupportedNodeKindError is returned when the tree holds a node the
// renderer cannot place, such as a kind outside the closed set or a table
// cell outside a table row.
type UnsupportedNodeKindError struct {
	Kind mdast.NodeKind
	Line int
}

func (e *UnsupportedNodeKindError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unsupported node kind %s at line %d", e.Kind, e.Line)
	}
	return fmt.Sprintf("unsupported node kind %s", e.Kind)
}

func unsupported(n *mdast.Node) error {
	return &UnsupportedNodeKindError{Kind: n.Kind, Line: n.StartLine()}
}

// LanguageGuesser names the language of an untagged code block.
type LanguageGuesser interface {
	Guess(code string) string
}

// Options controls the canonical form.
type Options struct {
	// Headings forces ATX or setext headings; consistent keeps each
	// heading's own style.
	Headings config.HeadingStyle

	// ListMarker is the bullet for unordered items.
	ListMarker byte

	// Strong forces the strong wrapper; consistent keeps each node's own.
	Strong config.StrongStyle

	// SpacesAfterMarker is the gap between a list marker and item content.
	SpacesAfterMarker int

	// CodeLanguage tags code blocks written without an info string.
	CodeLanguage string

	// Languages, when set, is asked before CodeLanguage applies.
	Languages LanguageGuesser
}

// DefaultOptions returns the options used when no configuration applies.
func DefaultOptions() Options {
	return Options{
		Headings:          config.HeadingConsistent,
		ListMarker:        '-',
		Strong:            config.StrongConsistent,
		SpacesAfterMarker: config.DefaultNumSpacesAfterListMarker,
		CodeLanguage:      config.DefaultCodeBlockLanguage,
	}
}

func (o Options) normalized() Options {
	switch o.ListMarker {
	case '-', '*', '+':
	default:
		o.ListMarker = '-'
	}
	if o.SpacesAfterMarker < 1 {
		o.SpacesAfterMarker = config.DefaultNumSpacesAfterListMarker
	}
	if o.CodeLanguage == "" {
		o.CodeLanguage = config.DefaultCodeBlockLanguage
	}
	return o
}

// Render returns the canonical text of the tree rooted at root. source is
// the text the tree was parsed from; it is consulted for the as-written
// style of headings, strong and delete nodes.
//
// An empty document renders as the empty string. Any other output ends in
// exactly one newline.
func Render(root *mdast.Node, source string, opts Options) (string, error) {
	if root == nil {
		return "", nil
	}
	r := &renderer{src: source, opts: opts.normalized()}

	var lines []string
	var err error
	if root.Kind == mdast.NodeRoot {
		lines, err = r.blocks(root, Document(), true)
	} else {
		lines, err = r.block(root, Document())
	}
	if err != nil {
		return "", err
	}

	out := strings.TrimRight(strings.Join(lines, "\n"), " \n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// Snapshot renders a parsed file with options resolved from cfg.
func Snapshot(snap *mdast.FileSnapshot, cfg *config.Config) (string, error) {
	if snap == nil {
		return "", nil
	}
	return Render(snap.Root, snap.Source(), OptionsFromConfig(cfg, snap))
}
