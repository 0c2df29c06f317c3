// Package goldmark parses Markdown into mdast trees using the goldmark
// library.
package goldmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrParse wraps every Parse failure except cancellation.
var ErrParse = errors.New("markdown parse failed")

// Parser turns Markdown bytes into a FileSnapshot. It is safe for concurrent
// use.
type Parser struct {
	flavor string
	md     goldmark.Markdown

	// plain is md without the front matter extension.
	plain goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors fall back to GFM.
func New(flavor string) *Parser {
	if flavor != FlavorCommonMark {
		flavor = FlavorGFM
	}
	return &Parser{
		flavor: flavor,
		md:     goldmark.New(options(flavor, true)...),
		plain:  goldmark.New(options(flavor, false)...),
	}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse copies content into a new snapshot and fills in its tree. Every node
// points back at the snapshot through its File field. A panic inside goldmark
// is returned as an ErrParse error.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))
	pctx := parser.NewContext()

	md := p.plain
	if hasFrontMatter(snapshot.Content) {
		md = p.md
	}
	doc, err := p.parse(md, snapshot.Content, pctx)
	if err == nil && md == p.md && !decodesToMapping(pctx) {
		pctx = parser.NewContext()
		doc, err = p.parse(p.plain, snapshot.Content, pctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot.Root = newMapper(snapshot, pctx).mapDocument(doc)
	mdast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
}

func (p *Parser) parse(md goldmark.Markdown, source []byte, pctx parser.Context) (doc gast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return md.Parser().Parse(text.NewReader(source), parser.WithContext(pctx)), nil
}

// hasFrontMatter reports whether source opens with a "---" or "+++" line,
// followed directly by a non-blank line, and later closed by the same
// delimiter. A blank line after the opener means a thematic break.
func hasFrontMatter(source []byte) bool {
	if len(source) == 0 {
		return false
	}
	delim := frontMatterDelim(source, 0)
	if delim == 0 {
		return false
	}
	body := nextLineStart(source, 0)
	if body >= len(source) || len(bytes.TrimSpace(source[body:lineEndOf(source, body)])) == 0 {
		return false
	}
	for line := body; line < len(source); line = nextLineStart(source, line) {
		if frontMatterDelim(source, line) == delim {
			return true
		}
	}
	return false
}

// frontMatterDelim returns '-' or '+' when the line at start is exactly a
// front matter delimiter, and 0 otherwise.
func frontMatterDelim(source []byte, start int) byte {
	line := bytes.TrimRight(source[start:lineEndOf(source, start)], " \t\r")
	switch string(line) {
	case "---":
		return '-'
	case "+++":
		return '+'
	}
	return 0
}

// decodesToMapping reports whether the front matter the extension captured
// holds at least one key.
func decodesToMapping(pctx parser.Context) bool {
	data := frontmatter.Get(pctx)
	if data == nil {
		return false
	}
	var decoded map[string]any
	return data.Decode(&decoded) == nil && len(decoded) > 0
}

// options configures goldmark for flavor. With meta set, front matter is
// recognized in both flavors. GFM registers the footnote parsers without their AST transformer,
// which would move definitions to the end of the document.
func options(flavor string, meta bool) []goldmark.Option {
	var opts []goldmark.Option
	if meta {
		opts = append(opts, goldmark.WithExtensions(&frontmatter.Extender{}))
	}
	if flavor != FlavorGFM {
		return opts
	}
	return append(opts,
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithBlockParsers(util.Prioritized(extension.NewFootnoteBlockParser(), 999)),
			parser.WithInlineParsers(util.Prioritized(extension.NewFootnoteParser(), 101)),
		),
	)
}
