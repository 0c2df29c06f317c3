package refs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint/refs"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

func collect(t *testing.T, content string) *refs.Context {
	t.Helper()
	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	return refs.Collect(snap.Root)
}

func TestAnchorMap_Slug(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Seek & Destroy", "seek--destroy"},
		{"Version 1.0.0", "version-100"},
		{"C++ Guide", "c-guide"},
		{"a, b", "a-b"},
		{"ÜBER", "über"},
		{"foo_bar", "foo_bar"},
	}

	m := refs.NewAnchorMap()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Slug(tt.text))
		})
	}
}

func TestAnchorMap_DuplicateHeadings(t *testing.T) {
	m := refs.NewAnchorMap()

	assert.Equal(t, "intro", m.AddHeading("Intro", nil))
	assert.Equal(t, "intro-1", m.AddHeading("Intro", nil))
	assert.Equal(t, "intro-2", m.AddHeading("Intro", nil))
	assert.Equal(t, 3, m.Count())
	assert.True(t, m.Has("intro-1"))
	assert.False(t, m.Has("intro-3"))
}

func TestCollect(t *testing.T) {
	ctx := collect(t, `# Seek & Destroy

## The `+"`code`"+` part

<a name="legacy"></a>
<div id="box">x</div>

[ok](#seek--destroy) [code](#the-code-part) [name](#legacy) [id](#box) [bad](#missing) [ext](https://x.example/#frag)
`)

	assert.True(t, ctx.Anchors.Has("seek--destroy"))
	assert.True(t, ctx.Anchors.Has("the-code-part"))
	assert.Equal(t, refs.AnchorFromHTMLName, ctx.Anchors.Lookup("legacy").Source)
	assert.Equal(t, refs.AnchorFromHTMLID, ctx.Anchors.Lookup("box").Source)

	require.Len(t, ctx.FragmentLinks, 5)
	broken := ctx.BrokenLinks()
	require.Len(t, broken, 1)
	assert.Equal(t, "#missing", refs.ExtractFragment(broken[0]))
}

func TestCollect_NameOnlyCountsOnAnchors(t *testing.T) {
	ctx := collect(t, "<div name=\"nope\"></div>\n\n[x](#nope)\n")
	assert.False(t, ctx.Anchors.Has("nope"))
	assert.Len(t, ctx.BrokenLinks(), 1)
}

func TestContext_ValidateFragment(t *testing.T) {
	ctx := refs.NewContext()
	ctx.Anchors.AddHeading("Usage", nil)

	assert.True(t, ctx.ValidateFragment("#usage"))
	assert.False(t, ctx.ValidateFragment("#Usage"))
	assert.False(t, ctx.ValidateFragment("#other"))
	assert.True(t, ctx.ValidateFragment("https://example.com"))
}

func TestCollect_NilRoot(t *testing.T) {
	ctx := refs.Collect(nil)
	assert.Equal(t, 0, ctx.Anchors.Count())
	assert.Empty(t, ctx.BrokenLinks())
}
