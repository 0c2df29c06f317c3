package rules

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

// docBase is the markdownlint release whose rule wording these rules follow.
const docBase = "https://github.com/DavidAnson/markdownlint/blob/v0.32.1/doc/"

// Texts shared by several rules.
const (
	rationaleConsistentStyle = "Consistent style makes it easier to understand a document"
	rationaleConsistentFmt   = "Consistent formatting makes it easier to understand a document"
	rationaleImproperRender  = "Violations of this rule can lead to improperly rendered content"
	rationaleExtraSpace      = "Extra space has no purpose and does not affect the rendering of content"
	fixSeparateHash          = "Separate the heading text from the hash character by a single space"
)

// docURL returns the upstream documentation link for a rule code.
func docURL(code string) string {
	return docBase + strings.ToLower(code) + ".md"
}

// newMetadata fills in the documentation link for a rule.
func newMetadata(meta lint.Metadata) lint.Metadata {
	if meta.Documentation == "" {
		meta.Documentation = docURL(meta.Code)
	}
	return meta
}
