package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func TestScanLines_SkipsFencedCode(t *testing.T) {
	snap, _ := parse(t, "a\n```go\nin\n```\nb\n~~~\n```\n~~~\nc\n")

	var lines []int
	lint.ScanLines(snap, func(lineNum int, _ string) bool {
		lines = append(lines, lineNum)
		return true
	})
	// The empty line after the final newline is line 10.
	assert.Equal(t, []int{1, 5, 9, 10}, lines)
}

func TestScanLines_StopsEarly(t *testing.T) {
	snap, _ := parse(t, "a\nb\nc\n")

	count := 0
	lint.ScanLines(snap, func(int, string) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestFenceTracker(t *testing.T) {
	var f lint.FenceTracker
	assert.False(t, f.Next("text"))
	assert.True(t, f.Next("```"))
	assert.True(t, f.Next("code"))
	assert.True(t, f.Next("~~~ not a close"))
	assert.True(t, f.Next("```"))
	assert.False(t, f.Next("inline ```x``` pairs"))
}

func TestStripBlockquotePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"text", "text"},
		{"> text", "text"},
		{">text", "text"},
		{"> > - item", "- item"},
		{">   spaced", "  spaced"},
		{"  > indented", "indented"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.StripBlockquotePrefix(tt.in))
		})
	}
}

func TestIndent(t *testing.T) {
	snap, _ := parse(t, "- a\n  - b\n\n> - c\n>   - d\n")

	items := mdast.FindByKind(snap.Root, mdast.NodeListItem)
	require.Len(t, items, 4)

	var got []int
	for _, item := range items {
		got = append(got, lint.Indent(snap, item))
	}
	assert.Equal(t, []int{0, 2, 0, 2}, got)
}

func TestLineHelpers(t *testing.T) {
	snap, _ := parse(t, "abc\n   \nxyz")

	assert.False(t, lint.IsBlankLine(snap, 1))
	assert.True(t, lint.IsBlankLine(snap, 2))
	assert.True(t, lint.IsBlankLine(snap, 10))

	pos := lint.LinePosition(snap, 3)
	assert.Equal(t, 8, pos.Start.Offset)
	assert.Equal(t, 11, pos.End.Offset)
	assert.Equal(t, 3, pos.Start.Line)

	assert.Equal(t, 3, lint.LeadingWhitespace("   x"))
	assert.Equal(t, 0, lint.LeadingWhitespace("x  "))
}

func TestNodeCache(t *testing.T) {
	snap, _ := parse(t, "# A\n\n- x\n- [link](#a)\n\n> quote\n\n```\ncode\n```\n\n<div>hi</div>\n")

	nc := lint.NewNodeCache(snap.Root)
	assert.Len(t, nc.Headings(), 1)
	assert.Len(t, nc.Lists(), 1)
	assert.Len(t, nc.ListItems(), 2)
	assert.Len(t, nc.Blockquotes(), 1)
	assert.Len(t, nc.Code(), 1)
	assert.Len(t, nc.Links(), 1)
	assert.Len(t, nc.HTML(), 1)

	empty := lint.NewNodeCache(nil)
	assert.Empty(t, empty.Headings())
}

func TestRuleContext(t *testing.T) {
	snap, _ := parse(t, "# Seek & Destroy\n\n[x](#seek--destroy)\n")

	rc := lint.NewRuleContext(t.Context(), snap, nil, nil)
	require.NotNil(t, rc.Config)
	assert.False(t, rc.Cancelled())
	assert.Len(t, rc.Headings(), 1)
	assert.Equal(t, "# Seek & Destroy", rc.NodeSource(rc.Headings()[0]))

	refs := rc.RefContext()
	assert.Same(t, refs, rc.RefContext())
	assert.Empty(t, refs.BrokenLinks())
}
