package analysis

import "github.com/yaklabco/mdcheck/pkg/lint"

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by issue count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts by rule code or file path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts by error count, then warnings, then total.
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// SortBy specifies how to sort ByFile and ByRule.
	SortBy SortField

	// Registry supplies rule names and fixability. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// DefaultOptions returns Options sorted by count.
func DefaultOptions() Options {
	return Options{SortBy: SortByCount}
}
