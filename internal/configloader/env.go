package configloader

import (
	"strings"
)

// EnvPrefix is the prefix for all mdcheck environment variables.
const EnvPrefix = "MDCHECK_"

// envKeySeparator separates config sections in environment variable names.
// A single underscore stays part of the key, so MDCHECK_RUN__JOBS maps to
// run.jobs and MDCHECK_LINTER__MD046_STYLE maps to linter.md046_style.
const envKeySeparator = "__"

// envKey converts an environment variable name to a koanf key path.
func envKey(name string) string {
	key := strings.TrimPrefix(name, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(key, envKeySeparator, "."))
}

// EnvVarName returns the environment variable that overrides a config key,
// e.g. "style.headings" becomes "MDCHECK_STYLE__HEADINGS".
func EnvVarName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", envKeySeparator))
}

// envVarDocs describes every key that can be overridden from the environment.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVarDocs = []struct {
	key, doc string
}{
	{"style.headings", "Heading style: consistent, atx or setext"},
	{"style.unordered_lists", "List marker: consistent, dash, asterisk or plus"},
	{"style.bold", "Strong emphasis: consistent, asterisk or underscore"},
	{"style.num_spaces_after_list_marker", "Spaces between a list marker and its text"},
	{"style.default_code_block_language", "Language for untagged fenced code"},
	{"linter.exclude", "Comma-separated rule codes or names to disable"},
	{"linter.md031_list_items", "Apply MD031 inside list items: true or false"},
	{"linter.md033_allowed_html_tags", "Comma-separated HTML elements allowed by MD033"},
	{"linter.md046_style", "Code block style: consistent, fenced or indented"},
	{"fmt.show_diff", "Print a diff with fmt --check: true or false"},
	{"fmt.detect_code_language", "Guess the language of untagged code: true or false"},
	{"run.extensions", "Comma-separated Markdown file extensions"},
	{"run.ignore", "Comma-separated ignore glob patterns"},
	{"run.jobs", "Number of parallel workers (0 = one per CPU)"},
	{"output.format", "Output format: text, json or sarif"},
	{"output.color", "Colour: auto, always or never"},
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVarDocs))
	for _, v := range envVarDocs {
		vars[EnvVarName(v.key)] = v.doc
	}
	return vars
}
