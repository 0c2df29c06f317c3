package analysis

// Report holds per-rule and per-file views of a run's issues.
type Report struct {
	ByRule []RuleAnalysis `json:"by_rule"`
	ByFile []FileAnalysis `json:"by_file"`
	Totals Totals         `json:"totals"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"files_checked"`
	FilesWithIssues int `json:"files_with_issues"`
	Issues          int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Notes           int `json:"notes"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// counts is the severity tally shared by rule and file views.
// Bug counts as an error; help counts as a note.
type counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	counts

	Path  string   `json:"path"`
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule or issue category.
type RuleAnalysis struct {
	counts

	RuleID   string   `json:"rule_id"`
	RuleName string   `json:"rule_name,omitempty"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
