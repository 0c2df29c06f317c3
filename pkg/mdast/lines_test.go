package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.LineInfo
	}{
		{name: "empty", content: "", want: []mdast.LineInfo{}},
		{name: "no trailing newline", content: "abc", want: []mdast.LineInfo{
			{StartOffset: 0, NewlineStart: 3, EndOffset: 3},
		}},
		{name: "trailing LF opens an empty last line", content: "abc\n", want: []mdast.LineInfo{
			{StartOffset: 0, NewlineStart: 3, EndOffset: 4},
			{StartOffset: 4, NewlineStart: 4, EndOffset: 4},
		}},
		{name: "CRLF", content: "ab\r\ncd", want: []mdast.LineInfo{
			{StartOffset: 0, NewlineStart: 2, EndOffset: 4},
			{StartOffset: 4, NewlineStart: 6, EndOffset: 6},
		}},
		{name: "mixed endings", content: "a\nb\r\n\n", want: []mdast.LineInfo{
			{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
			{StartOffset: 2, NewlineStart: 3, EndOffset: 5},
			{StartOffset: 5, NewlineStart: 5, EndOffset: 6},
			{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
		}},
		{name: "lone CR is content", content: "a\rb", want: []mdast.LineInfo{
			{StartOffset: 0, NewlineStart: 3, EndOffset: 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("a.md", []byte("one\ntwo\r\nthree"))
	require.Equal(t, 3, snap.LineCount())

	tests := []struct {
		offset   int
		line     int
		col      int
		describe string
	}{
		{offset: 0, line: 1, col: 1, describe: "file start"},
		{offset: 3, line: 1, col: 4, describe: "LF belongs to its line"},
		{offset: 4, line: 2, col: 1, describe: "second line start"},
		{offset: 8, line: 2, col: 5, describe: "LF of CRLF"},
		{offset: 9, line: 3, col: 1, describe: "last line start"},
		{offset: 14, line: 3, col: 6, describe: "end of content"},
		{offset: 99, line: 3, col: 91, describe: "past the end"},
		{offset: -1, line: 0, col: 0, describe: "negative"},
	}
	for _, tt := range tests {
		line, col := snap.LineAt(tt.offset)
		assert.Equal(t, tt.line, line, tt.describe)
		assert.Equal(t, tt.col, col, tt.describe)
	}

	empty := mdast.NewFileSnapshot("", nil)
	line, col := empty.LineAt(0)
	assert.Zero(t, line)
	assert.Zero(t, col)
}

func TestFileSnapshot_Offset(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("a.md", []byte("one\ntwo"))

	for offset := range len(snap.Content) {
		line, col := snap.LineAt(offset)
		got, ok := snap.Offset(line, col)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, got)
	}

	_, ok := snap.Offset(0, 1)
	assert.False(t, ok)
	_, ok = snap.Offset(3, 1)
	assert.False(t, ok)
	_, ok = snap.Offset(1, 0)
	assert.False(t, ok)
	_, ok = snap.Offset(1, 6)
	assert.False(t, ok)
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("a.md", []byte("# Title\r\n\nbody"))

	assert.Equal(t, "# Title", snap.LineText(1))
	assert.Empty(t, snap.LineText(2))
	assert.Equal(t, "body", snap.LineText(3))
	assert.Nil(t, snap.LineContent(0))
	assert.Nil(t, snap.LineContent(4))

	assert.Equal(t, 0, snap.LineStart(1))
	assert.Equal(t, 9, snap.LineStart(2))
	assert.Equal(t, 10, snap.LineStart(3))
	assert.Zero(t, snap.LineStart(7))
}

func TestFileSnapshot_PositionOfMultibyte(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("a.md", []byte("ab\ncé\n"))

	pos := snap.PositionOf(3, 5)
	assert.Equal(t, mdast.Point{Line: 2, Column: 1, Offset: 3}, pos.Start)
	// Offset 5 is inside "é" and moves back to its first byte.
	assert.Equal(t, mdast.Point{Line: 2, Column: 2, Offset: 4}, pos.End)

	swapped := snap.PositionOf(2, 0)
	assert.Equal(t, 0, swapped.Start.Offset)
	assert.Equal(t, 2, swapped.End.Offset)

	assert.Equal(t, mdast.Point{Line: 3, Column: 1, Offset: 7}, snap.PointAt(100))
	assert.Equal(t, mdast.Point{Line: 1, Column: 1, Offset: 0}, mdast.NewFileSnapshot("", nil).PointAt(5))
}
