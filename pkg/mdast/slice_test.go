package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

func TestSlice(t *testing.T) {
	t.Parallel()

	content := []byte("héllo")

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{name: "whole", start: 0, end: 6, want: "héllo"},
		{name: "past end clamps", start: 0, end: 100, want: "héllo"},
		{name: "negative start clamps", start: -5, end: 1, want: "h"},
		{name: "end inside rune snaps back", start: 0, end: 2, want: "h"},
		{name: "start inside rune snaps back", start: 2, end: 6, want: "éllo"},
		{name: "reversed is empty", start: 4, end: 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mdast.Slice(content, tt.start, tt.end))
			assert.Equal(t, tt.want, mdast.SliceString(string(content), tt.start, tt.end))
		})
	}
}

func TestClampOffset(t *testing.T) {
	t.Parallel()

	content := []byte("aé")

	assert.Equal(t, 0, mdast.ClampOffset(content, -1))
	assert.Equal(t, 1, mdast.ClampOffset(content, 1))
	assert.Equal(t, 1, mdast.ClampOffset(content, 2))
	assert.Equal(t, 3, mdast.ClampOffset(content, 3))
	assert.Equal(t, 3, mdast.ClampOffset(content, 9))
}

func TestNodeSource(t *testing.T) {
	t.Parallel()

	source := "# Title\n"
	snapshot := mdast.NewFileSnapshot("", []byte(source))
	heading := mdast.NewHeading(1)
	heading.Position = snapshot.PositionOf(0, 7)

	assert.Equal(t, "# Title", mdast.NodeSource(heading, source))
	assert.Empty(t, mdast.NodeSource(mdast.NewNode(mdast.NodeText), source))
	assert.Empty(t, mdast.NodeSource(nil, source))
}
