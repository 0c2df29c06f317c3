package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// corpus covers every node kind in a mix of nestings.
var corpus = map[string]string{
	"readme": `Project
=======

A *short* description with **bold**, ` + "`code`" + ` and a [link](https://example.com).

## Install

1. Download
2. Unpack
    - on Linux
    - on macOS
3. Run

## Usage

> Quote with a list:
>
> - one
> - two

` + "```" + `go
func main() {}
` + "```" + `

    indented code

| Name | Value |
|:-----|------:|
| a    | 1     |
| long | 22    |

Text with a footnote[^note] and ~~strike~~.

[^note]: The note.

[ref]: https://example.com/ref "Ref"
`,
	"nested": `- level one
  - level two
    - level three

      with a second paragraph

- back at one

  > quoted in item
  > over two lines
`,
	"references": `See [the docs][docs], [docs][] and [docs].

![logo][img]

[docs]: https://example.com/docs
[img]: logo.png
`,
	"tasks": `* [x] done
* [ ] open
+ mixed marker
`,
	"breaks": "line one  \nline two\\\nline three\n",
	"html": `<details>
<summary>More</summary>

Hidden text.

</details>
`,
	"front matter": "---\ntitle: Doc\ntags: [a, b]\n---\n\n# Doc\n",
	"escapes":      "Use \\* and \\[x\\] and a|b and 2 \\> 1.\n",
	"deep quote":   "> a\n> > b\n> > > c\n",
	"spread ordered": `3. first

4. second
   continued
`,
	"escaped underscores":  "\\_x\\_\n",
	"escaped entity":       "&amp;copy;\n",
	"escaped list marker":  "a\n\\- b\n",
	"escaped setext rule":  "foo\n\\=\\=\\=\n",
	"escaped hash":         "\\# not a heading\n",
	"escaped ordered":      "1\\. not a list\n",
	"escaped backticks":    "\\`x\\`\n",
	"escaped tildes":       "\\~\\~x\\~\\~\n",
	"quoted link title":    "[a](/u \"say \\\"hi\\\"\")\n",
	"quoted def title":     "[r]\n\n[r]: /u \"q\\\"t\"\n",
	"leading break":        "***\n\ntext\n\n***\n",
	"break around heading": "---\n\n# Title\n\n---\n",
	"front matter blank":   "---\na: 1\n\nb: 2\n---\n\ntext\n",
}

func TestRender_Idempotent(t *testing.T) {
	for name, in := range corpus {
		t.Run(name, func(t *testing.T) {
			once := render(t, in)
			twice := render(t, once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestRender_EscapesKeepLiteralText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"underscores", "\\_x\\_\n", "\\_x\\_\n"},
		{"intraword underscore", "snake_case\n", "snake_case\n"},
		{"entity", "&amp;copy;\n", "\\&copy;\n"},
		{"bare ampersand", "a & b\n", "a & b\n"},
		{"list marker", "a\n\\- b\n", "a\n\\- b\n"},
		{"setext rule", "foo\n\\=\\=\\=\n", "foo\n\\===\n"},
		{"hash", "\\# not a heading\n", "\\# not a heading\n"},
		{"ordered", "1\\. not a list\n", "1\\. not a list\n"},
		{"ordered paren", "2\\) not a list\n", "2\\) not a list\n"},
		{"backticks", "\\`x\\`\n", "\\`x\\`\n"},
		{"tildes", "\\~\\~x\\~\\~\n", "\\~\\~x\\~\\~\n"},
		{"plus", "\\+ item\n", "\\+ item\n"},
		{"hash inside emphasis", "*#1*\n", "*#1*\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, tt.in)
			assert.Equal(t, tt.want, out)

			before, after := parse(t, tt.in).Root, parse(t, out).Root
			assert.Equal(t, before.PlainText(), after.PlainText())
			assert.Equal(t, kinds(before), kinds(after))
		})
	}
}

func TestRender_TitlesDoNotGrow(t *testing.T) {
	assert.Equal(t, "[a](/u \"say \\\"hi\\\"\")\n", render(t, "[a](/u \"say \\\"hi\\\"\")\n"))
	assert.Equal(t, "[r][r]\n\n[r]: /u \"q\\\"t\"\n", render(t, "[r]\n\n[r]: /u \"q\\\"t\"\n"))
	assert.Equal(t, "![i](p.png \"a\\\\b &x\")\n", render(t, "![i](p.png \"a\\\\b &x\")\n"))
}

func TestRender_ThematicBreaksAreNotFrontMatter(t *testing.T) {
	assert.Equal(t, "---\n\ntext\n\n---\n", render(t, "***\n\ntext\n\n***\n"))
	assert.Equal(t, "---\n\n# Title\n\n---\n", render(t, "---\n\n# Title\n\n---\n"))
	assert.Equal(t, "---\na: 1\n\nb: 2\n---\n\ntext\n", render(t, "---\na: 1\n\nb: 2\n---\ntext\n"))
}

// kinds lists the node kinds of root in document order.
func kinds(root *mdast.Node) []mdast.NodeKind {
	var out []mdast.NodeKind
	for n := range mdast.All(root) {
		out = append(out, n.Kind)
	}
	return out
}

func TestRender_AdjacentListsStaySeparate(t *testing.T) {
	assert.Equal(t, "* a\n* b\n\n- c\n", render(t, "* a\n* b\n+ c\n"))
	assert.Equal(t, "1. a\n\n1) b\n", render(t, "1. a\n1) b\n"))
}

func TestRender_CanonicalInputIsStable(t *testing.T) {
	canonical := []string{
		"# Title\n\nText.\n",
		"- a\n- b\n  - c\n",
		"1. a\n\n2. b\n",
		"> a\n>\n> b\n",
		"```text\nx\n```\n",
		"| a   | b   |\n| --- | :-: |\n| 1   | 2   |\n",
		"Title\n=============\n\nBody.\n",
		"[a][b]\n\n[b]: https://x.example\n",
	}
	for _, in := range canonical {
		t.Run(splitLines(in)[0], func(t *testing.T) {
			assert.Equal(t, in, render(t, in))
		})
	}
}

func TestRender_OutputEndsWithSingleNewline(t *testing.T) {
	for name, in := range corpus {
		t.Run(name, func(t *testing.T) {
			out := render(t, in)
			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.False(t, strings.HasSuffix(out, "\n\n"))
			for _, line := range splitLines(out) {
				assert.Equal(t, strings.TrimRight(line, " "), line, "trailing space in %q", line)
			}
		})
	}
}
