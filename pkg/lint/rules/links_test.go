package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoReversedLinksRule(t *testing.T) {
	rule := NewNoReversedLinksRule()

	violations := check(t, rule, "(text)[https://example.com]\n\n```\n(a)[b]\n```\n", nil)
	require.Len(t, violations, 1)
	assert.Equal(t, "Found reversed link syntax", violations[0].Message)
	assert.Equal(t, 0, violations[0].Position.Start.Offset)
	assert.Equal(t, 27, violations[0].Position.End.Offset)

	assert.Empty(t, check(t, rule, "[text](https://example.com)\n", nil))
}

func TestLinkFragmentsRule(t *testing.T) {
	rule := NewLinkFragmentsRule()

	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{"heading slug", "# Seek & Destroy\n\n[Song](#seek--destroy)\n", []int{}},
		{"missing anchor", "# Title\n\n[x](#missing)\n", []int{3}},
		{"html id", "<a id=\"here\"></a>\n\n[x](#here)\n", []int{}},
		{"external link", "[x](https://example.com/#frag)\n", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startLines(check(t, rule, tt.content, nil)))
		})
	}
}
