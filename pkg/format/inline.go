package format

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/style"
)

func (r *renderer) inlines(parent *mdast.Node, rc RenderContext) (string, error) {
	var b strings.Builder
	for child := parent.FirstChild; child != nil; child = child.Next {
		if err := r.inline(&b, child, rc); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// span renders the children of an inline container. Its text never opens a
// line, so line-start escapes apply only after a newline.
func (r *renderer) span(parent *mdast.Node, rc RenderContext) (string, error) {
	r.spanDepth++
	defer func() { r.spanDepth-- }()
	return r.inlines(parent, rc)
}

func (r *renderer) inline(b *strings.Builder, n *mdast.Node, rc RenderContext) error {
	switch n.Kind {
	case mdast.NodeText:
		atLineStart := (b.Len() == 0 && r.spanDepth == 0) || strings.HasSuffix(b.String(), "\n")
		text := escapeText(n.Value(), atLineStart)
		if r.singleLine {
			text = strings.ReplaceAll(text, "\n", " ")
		}
		b.WriteString(text)
	case mdast.NodeEmphasis:
		return r.wrap(b, n, rc, "*")
	case mdast.NodeStrong:
		return r.wrap(b, n, rc, r.strongDelimiter(n))
	case mdast.NodeDelete:
		delim := "~~"
		if style.IsSuperscript(n, r.src) {
			delim = "~"
		}
		return r.wrap(b, n, rc, delim)
	case mdast.NodeBreak:
		trimTrailingSpaces(b)
		if r.singleLine {
			b.WriteString(" ")
		} else {
			b.WriteString("\\\n")
		}
	case mdast.NodeInlineCode:
		b.WriteString(codeSpan(n.Value(), r.inTable))
	case mdast.NodeLink:
		return r.link(b, n, rc)
	case mdast.NodeImage:
		var dest, title string
		if n.Inline != nil && n.Inline.Link != nil {
			dest, title = n.Inline.Link.Destination, n.Inline.Link.Title
		}
		b.WriteString("![" + r.alt(n) + "](" + destination(dest) + titleSuffix(title) + ")")
	case mdast.NodeLinkReference:
		r.linkDepth++
		text, err := r.span(n, rc)
		r.linkDepth--
		if err != nil {
			return err
		}
		b.WriteString("[" + text + "][" + referenceLabel(n) + "]")
	case mdast.NodeImageReference:
		b.WriteString("![" + r.alt(n) + "][" + referenceLabel(n) + "]")
	case mdast.NodeFootnoteReference:
		b.WriteString("[^" + referenceLabel(n) + "]")
	case mdast.NodeHTML:
		b.WriteString(n.Value())
	default:
		return unsupported(n)
	}
	return nil
}

func (r *renderer) wrap(b *strings.Builder, n *mdast.Node, rc RenderContext, delim string) error {
	text, err := r.span(n, rc)
	if err != nil {
		return err
	}
	b.WriteString(delim + text + delim)
	return nil
}

func (r *renderer) strongDelimiter(n *mdast.Node) string {
	switch r.opts.Strong {
	case config.StrongUnderscore:
		return "__"
	case config.StrongAsterisk:
		return "**"
	default:
		if style.IsUnderscoreStrong(n, r.src) {
			return "__"
		}
		return "**"
	}
}

func (r *renderer) link(b *strings.Builder, n *mdast.Node, rc RenderContext) error {
	if r.linkDepth > 0 {
		text, err := r.span(n, rc)
		if err != nil {
			return err
		}
		b.WriteString(text)
		return nil
	}

	var dest, title string
	if n.Inline != nil && n.Inline.Link != nil {
		dest, title = n.Inline.Link.Destination, n.Inline.Link.Title
	}
	if target, ok := autolinkTarget(n, dest, title); ok {
		b.WriteString("<" + target + ">")
		return nil
	}

	r.linkDepth++
	text, err := r.span(n, rc)
	r.linkDepth--
	if err != nil {
		return err
	}
	b.WriteString("[" + text + "](" + destination(dest) + titleSuffix(title) + ")")
	return nil
}

// autolinkTarget reports whether a link is its own text, in which case it
// renders in angle brackets.
func autolinkTarget(n *mdast.Node, dest, title string) (string, bool) {
	if title != "" || n.FirstChild == nil || n.FirstChild != n.LastChild || n.FirstChild.Kind != mdast.NodeText {
		return "", false
	}
	text := n.FirstChild.Value()
	if text == "" || text != strings.TrimPrefix(dest, "mailto:") {
		return "", false
	}
	if strings.ContainsAny(text, " \t\n<>") {
		return "", false
	}
	return text, true
}

func (r *renderer) alt(n *mdast.Node) string {
	alt := ""
	if n.Inline != nil {
		alt = n.Inline.Alt
	}
	alt = escapeInline(alt)
	return strings.ReplaceAll(alt, "\n", " ")
}

func referenceLabel(n *mdast.Node) string {
	if n.Inline == nil || n.Inline.Reference == nil {
		return ""
	}
	if n.Inline.Reference.Label != "" {
		return n.Inline.Reference.Label
	}
	return n.Inline.Reference.Identifier
}

// destination writes a link destination, switching to the angle-bracket
// form when the bare form would not parse back.
func destination(dest string) string {
	if dest == "" {
		return "<>"
	}
	if strings.ContainsAny(dest, " \t\n<>") || !balancedParens(dest) {
		r := strings.NewReplacer("<", `\<`, ">", `\>`)
		return "<" + r.Replace(dest) + ">"
	}
	return dest
}

func balancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// titleSuffix writes a literal title in double quotes.
func titleSuffix(title string) string {
	if title == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(` "`)
	for i := 0; i < len(title); i++ {
		switch c := title[i]; {
		case c == '\\' || c == '"':
			b.WriteByte('\\')
		case c == '&' && entityRef.MatchString(title[i:]):
			b.WriteByte('\\')
		}
		b.WriteByte(title[i])
	}
	b.WriteString(`"`)
	return b.String()
}

// codeSpan picks a backtick run longer than any inside value and pads the
// content when it would otherwise lose its edges.
func codeSpan(value string, inTable bool) string {
	longest, run := 0, 0
	for i := 0; i < len(value); i++ {
		if value[i] == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)

	if inTable {
		value = strings.ReplaceAll(value, "|", `\|`)
	}
	pad := strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") ||
		(len(value) >= 2 && value[0] == ' ' && value[len(value)-1] == ' ' && strings.Trim(value, " ") != "")
	if pad {
		value = " " + value + " "
	}
	return fence + value + fence
}

func trimTrailingSpaces(b *strings.Builder) {
	s := b.String()
	trimmed := strings.TrimRight(s, " ")
	if len(trimmed) != len(s) {
		b.Reset()
		b.WriteString(trimmed)
	}
}
