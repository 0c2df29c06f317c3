package format_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/format"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

func parse(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()
	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	return snap
}

func render(t *testing.T, content string) string {
	t.Helper()
	out, err := format.Snapshot(parse(t, content), config.NewConfig())
	require.NoError(t, err)
	return out
}

func renderWith(t *testing.T, content string, opts format.Options) string {
	t.Helper()
	snap := parse(t, content)
	out, err := format.Render(snap.Root, snap.Source(), opts)
	require.NoError(t, err)
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"atx heading", "# Title\n", "# Title\n"},
		{"closed atx heading", "### Deep ###\n", "### Deep\n"},
		{"setext h1", "Title\n=====\n", "Title\n=============\n"},
		{"setext h2", "Sub\n---\n", "Sub\n-------------\n"},
		{"trailing blank lines", "text\n\n\n", "text\n"},
		{"missing final newline", "text", "text\n"},
		{"paragraph soft break", "one\ntwo\n", "one\ntwo\n"},
		{"hard break with spaces", "a  \nb\n", "a\\\nb\n"},
		{"hard break with backslash", "a\\\nb\n", "a\\\nb\n"},
		{"tab becomes space", "a\tb\n", "a b\n"},
		{"escapes", "a \\* b \\[c\\] 1 \\< 2\n", "a \\* b \\[c\\] 1 \\< 2\n"},
		{"emphasis", "_a_ and *b*\n", "*a* and *b*\n"},
		{"strong keeps underscores", "__b__\n", "__b__\n"},
		{"strong asterisks", "**b**\n", "**b**\n"},
		{"strikethrough", "~~gone~~\n", "~~gone~~\n"},
		{"inline code", "`x := 1`\n", "`x := 1`\n"},
		{"inline code with backtick", "`` a`b ``\n", "``a`b``\n"},
		{"thematic break", "***\n", "---\n"},
		{"indented code", "    x := 1\n", "```text\nx := 1\n```\n"},
		{"tilde fence", "~~~go\nx\n~~~\n", "```go\nx\n```\n"},
		{"fence with meta", "```go title=main.go\nx\n```\n", "```go title=main.go\nx\n```\n"},
		{"fence containing fence", "````md\n```\nx\n```\n````\n", "````md\n```\nx\n```\n````\n"},
		{"unordered list", "- a\n- b\n", "- a\n- b\n"},
		{"ordered renumbering", "57. foo\n1. bar\n", "57. foo\n58. bar\n"},
		{"ordered from one", "1. a\n1. b\n1. c\n", "1. a\n2. b\n3. c\n"},
		{"spread list", "- a\n\n- b\n- c\n", "- a\n\n- b\n\n- c\n"},
		{"nested list", "- a\n    - b\n", "- a\n  - b\n"},
		{"list in ordered list", "1. a\n   - b\n", "1. a\n   - b\n"},
		{"list soft break", "- a\nb\n", "- a\n  b\n"},
		{"task list", "- [x] done\n- [ ] todo\n", "- [x] done\n- [ ] todo\n"},
		{"code in list", "- a\n\n  ```go\n  x\n  ```\n", "- a\n\n  ```go\n  x\n  ```\n"},
		{"blockquote", "> a\n>\n> b\n", "> a\n>\n> b\n"},
		{"lazy blockquote", "> a\nb\n", "> a\n> b\n"},
		{"nested blockquote", "> a\n>\n> > b\n", "> a\n>\n> > b\n"},
		{"code in blockquote", "> ```\n> x\n> ```\n", "> ```text\n> x\n> ```\n"},
		{"blockquote in list", "- a\n\n  > q\n", "- a\n\n  > q\n"},
		{"link", "[text](http://x.com \"T\")\n", "[text](http://x.com \"T\")\n"},
		{"link with spaces", "[t](<a b>)\n", "[t](<a b>)\n"},
		{"autolink", "<https://x.com>\n", "<https://x.com>\n"},
		{"bare url", "see https://x.com now\n", "see <https://x.com> now\n"},
		{"email autolink", "<me@x.com>\n", "<me@x.com>\n"},
		{"image", "![alt](img.png)\n", "![alt](img.png)\n"},
		{"full reference", "[t][r]\n\n[r]: http://x\n", "[t][r]\n\n[r]: http://x\n"},
		{"shortcut reference", "[r]\n\n[r]: http://x \"T\"\n", "[r][r]\n\n[r]: http://x \"T\"\n"},
		{"image reference", "![a][r]\n\n[r]: i.png\n", "![a][r]\n\n[r]: i.png\n"},
		{"footnote", "a[^1]\n\n[^1]: note\n", "a[^1]\n\n[^1]: note\n"},
		{"html block", "<div>\nx\n</div>\n\ntext\n", "<div>\nx\n</div>\n\ntext\n"},
		{"inline html", "a <br> b\n", "a <br> b\n"},
		{"front matter", "---\ntitle: x\n---\n# H\n", "---\ntitle: x\n---\n\n# H\n"},
		{"blocks separated", "# H\ntext\n- a\n", "# H\n\ntext\n\n- a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.in))
		})
	}
}

func TestRender_ListMarkerFollowsFirstItem(t *testing.T) {
	assert.Equal(t, "* a\n* b\n", render(t, "* a\n* b\n"))
	assert.Equal(t, "+ a\n  + b\n", render(t, "+ a\n  * b\n"))
	assert.Equal(t, "- a\n- b\n", renderWith(t, "* a\n* b\n", format.DefaultOptions()))
}

func TestRender_Options(t *testing.T) {
	base := format.DefaultOptions()

	t.Run("forced atx", func(t *testing.T) {
		opts := base
		opts.Headings = config.HeadingATX
		assert.Equal(t, "# T\n", renderWith(t, "T\n===\n", opts))
	})

	t.Run("forced setext", func(t *testing.T) {
		opts := base
		opts.Headings = config.HeadingSetext
		assert.Equal(t, "T\n-------------\n\n### Deep\n", renderWith(t, "## T\n\n### Deep\n", opts))
	})

	t.Run("forced strong", func(t *testing.T) {
		opts := base
		opts.Strong = config.StrongAsterisk
		assert.Equal(t, "**b**\n", renderWith(t, "__b__\n", opts))
		opts.Strong = config.StrongUnderscore
		assert.Equal(t, "__b__\n", renderWith(t, "**b**\n", opts))
	})

	t.Run("marker", func(t *testing.T) {
		opts := base
		opts.ListMarker = '+'
		assert.Equal(t, "+ a\n  + b\n", renderWith(t, "- a\n  - b\n", opts))
	})

	t.Run("spaces after marker", func(t *testing.T) {
		opts := base
		opts.SpacesAfterMarker = 2
		assert.Equal(t, "1.  a\n    b\n", renderWith(t, "1. a\n   b\n", opts))
	})

	t.Run("default language", func(t *testing.T) {
		opts := base
		opts.CodeLanguage = "console"
		assert.Equal(t, "```console\nx\n```\n", renderWith(t, "```\nx\n```\n", opts))
	})

	t.Run("detected language", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Fmt.DetectCodeLanguage = true
		snap := parse(t, "```\npackage main\n```\n")
		out, err := format.Snapshot(snap, cfg)
		require.NoError(t, err)
		assert.Equal(t, "```go\npackage main\n```\n", out)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Style.UnorderedLists = config.ListPlus
	cfg.Style.NumSpacesAfterListMarker = 3
	cfg.Style.DefaultCodeBlockLanguage = "sh"

	opts := format.OptionsFromConfig(cfg, parse(t, "* a\n"))
	assert.Equal(t, byte('+'), opts.ListMarker)
	assert.Equal(t, 3, opts.SpacesAfterMarker)
	assert.Equal(t, "sh", opts.CodeLanguage)
	assert.Nil(t, opts.Languages)

	opts = format.OptionsFromConfig(nil, nil)
	assert.Equal(t, format.DefaultOptions(), opts)
}

func TestRender_Table(t *testing.T) {
	in := "|a|b|c|d|\n|:-|-:|:-:|-|\n|long cell|x|é|a\\|b|\n"
	want := "" +
		"| a         | b   | c   | d    |\n" +
		"| :-------- | --: | :-: | ---- |\n" +
		"| long cell | x   | é   | a\\|b |\n"

	assert.Equal(t, want, render(t, in))
}

func TestRender_TableWidthsAreShared(t *testing.T) {
	out := render(t, "| h | header two |\n|---|---|\n| wide value | x |\n")
	lines := splitLines(out)
	require.Len(t, lines, 3)
	for _, line := range lines[1:] {
		assert.Len(t, []rune(line), len([]rune(lines[0])))
	}
	assert.Equal(t, "| h          | header two |", lines[0])
	assert.Equal(t, "| wide value | x          |", lines[2])
}

func TestRender_UnsupportedNodeKind(t *testing.T) {
	tests := []struct {
		name string
		kind mdast.NodeKind
	}{
		{"unknown kind", mdast.NodeKind(200)},
		{"cell outside table", mdast.NodeTableCell},
		{"item outside list", mdast.NodeListItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mdast.NewRoot()
			mdast.AppendChild(root, mdast.NewNode(tt.kind))

			out, err := format.Render(root, "", format.DefaultOptions())
			require.Error(t, err)
			assert.Empty(t, out)

			var unsupported *format.UnsupportedNodeKindError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.kind, unsupported.Kind)
		})
	}
}

func TestRender_SynthesizedTree(t *testing.T) {
	root := mdast.NewRoot()
	heading := mdast.NewHeading(2)
	mdast.AppendChild(heading, mdast.NewText("Built"))
	mdast.AppendChild(root, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(para, mdast.NewText("a*b"))
	mdast.AppendChild(root, para)

	out, err := format.Render(root, "", format.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "## Built\n\na\\*b\n", out)
}

func TestRenderContext(t *testing.T) {
	doc := format.Document()
	assert.Equal(t, format.DocumentContext, doc.Kind)

	quote := doc.EnterBlockquote()
	assert.Equal(t, format.BlockquoteContext, quote.Kind)
	assert.Equal(t, 1, quote.Depth)
	assert.Equal(t, 2, quote.EnterBlockquote().Depth)

	list := doc.EnterList(true, false, 3)
	assert.Equal(t, format.ListContext, list.Kind)
	assert.Equal(t, 0, list.List.Level)
	assert.Equal(t, 3, list.List.Item)
	assert.Equal(t, 1, list.EnterList(false, false, 0).List.Level)

	inList := list.EnterBlockquote()
	assert.Equal(t, format.BlockquoteInListContext, inList.Kind)
	assert.Equal(t, 1, inList.Depth)
	assert.True(t, inList.List.Ordered)

	deeper := inList.EnterBlockquote()
	assert.Equal(t, format.BlockquoteInListContext, deeper.Kind)
	assert.Equal(t, 2, deeper.Depth)
	assert.Equal(t, "BlockquoteInList", deeper.Kind.String())
}
