package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

// parse parses content with the GFM parser.
func parse(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()
	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(t.Context(), "doc.md", []byte(content))
	require.NoError(t, err)
	return snap
}

// check runs one rule against content. A nil cfg uses the defaults.
func check(t *testing.T, rule lint.Rule, content string, cfg *config.Config) []lint.Violation {
	t.Helper()
	violations, err := rule.Check(lint.NewRuleContext(t.Context(), parse(t, content), cfg, nil))
	require.NoError(t, err)
	return violations
}

// startLines returns the start line of every violation.
func startLines(violations []lint.Violation) []int {
	lines := make([]int, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, v.Position.Start.Line)
	}
	return lines
}

// withConfig returns a default config changed by fn.
func withConfig(fn func(cfg *config.Config)) *config.Config {
	cfg := config.NewConfig()
	fn(cfg)
	return cfg
}
