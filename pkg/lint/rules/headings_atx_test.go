package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

func TestNoMissingSpaceATXRule(t *testing.T) {
	rule := NewNoMissingSpaceATXRule()

	violations := check(t, rule, "#Heading\n\n## Fine\n\n```sh\n#comment\n```\n\n#Überblick\n", nil)
	assert.Equal(t, []int{1, 9}, startLines(violations))

	v := violations[0]
	assert.Equal(t, "Missing a space after a hash in ATX-style heading", v.Message)
	assert.Equal(t, 0, v.Position.Start.Offset)
	assert.Equal(t, 8, v.Position.End.Offset)

	// Digits count as heading text too.
	assert.Equal(t, []int{3}, startLines(check(t, rule, "#\n\n#1 is a number\n", nil)))
}

func TestNoMissingSpaceATXRule_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewNoMissingSpaceATXRule().Check(lint.NewRuleContext(ctx, parse(t, "#A\n"), nil, nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNoMultipleSpaceATXRule(t *testing.T) {
	rule := NewNoMultipleSpaceATXRule()

	assert.Equal(t, []int{1, 5}, startLines(check(t, rule, "##  Two\n\n# One\n\n> ##  Quoted\n", nil)))
	assert.Empty(t, check(t, rule, "# One\n\n## Two ##\n", nil))
}

func TestIsClosedATXWithoutSpace(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# A #", false},
		{"# A#", true},
		{"# A##  ", true},
		{"#A #", false},
		{"# A", false},
		{"##", false},
		{"# #", false},
		{"text #", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isClosedATXWithoutSpace(tt.line))
		})
	}
}

func TestNoMissingSpaceClosedATXRule(t *testing.T) {
	rule := NewNoMissingSpaceClosedATXRule()

	violations := check(t, rule, "# A#\n\n```\n# B#\n```\n\n## C ##\n", nil)
	assert.Equal(t, []int{1}, startLines(violations))
	assert.Equal(t, 4, violations[0].Position.End.Offset)
}

func TestNoMultipleSpaceClosedATXRule(t *testing.T) {
	rule := NewNoMultipleSpaceClosedATXRule()

	violations := check(t, rule, "# A  #\n\n## B ##\n", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Position.Start.Offset)
	assert.Equal(t, 6, violations[0].Position.End.Offset)
	assert.Equal(t, "Multiple spaces inside hashes on closed atx style heading", violations[0].Message)
}
