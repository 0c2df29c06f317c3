package logging

// Structured field keys shared by every log call.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldJobs       = "jobs"

	// Run totals.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFilesModified   = "files_modified"
	FieldIssuesTotal     = "issues_total"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
