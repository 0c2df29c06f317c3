package rules

import "github.com/yaklabco/mdcheck/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Heading rules
	registry.Register(NewHeadingIncrementRule())         // MD001
	registry.Register(NewHeadingStyleRule())             // MD003
	registry.Register(NewNoMissingSpaceATXRule())        // MD018
	registry.Register(NewNoMultipleSpaceATXRule())       // MD019
	registry.Register(NewNoMissingSpaceClosedATXRule())  // MD020
	registry.Register(NewNoMultipleSpaceClosedATXRule()) // MD021
	registry.Register(NewHeadingBlankLinesRule())        // MD022
	registry.Register(NewHeadingStartLeftRule())         // MD023
	registry.Register(NewNoDuplicateHeadingRule())       // MD024
	registry.Register(NewSingleH1Rule())                 // MD025
	registry.Register(NewNoTrailingPunctuationRule())    // MD026

	// List rules
	registry.Register(NewULStyleRule())         // MD004
	registry.Register(NewListIndentRule())      // MD005
	registry.Register(NewULIndentRule())        // MD007
	registry.Register(NewOLPrefixRule())        // MD029
	registry.Register(NewListMarkerSpaceRule()) // MD030

	// Whitespace rules
	registry.Register(NewNoTrailingSpacesRule()) // MD009
	registry.Register(NewNoHardTabsRule())       // MD010
	registry.Register(NewNoMultipleBlanksRule()) // MD012

	// Blockquote rules
	registry.Register(NewNoMultipleSpaceBlockquoteRule()) // MD027
	registry.Register(NewNoBlanksBlockquoteRule())        // MD028

	// Code block rules
	registry.Register(NewCommandsShowOutputRule()) // MD014
	registry.Register(NewBlanksAroundFencesRule()) // MD031
	registry.Register(NewCodeBlockStyleRule())     // MD046

	// HTML rules
	registry.Register(NewNoInlineHTMLRule()) // MD033

	// Link rules
	registry.Register(NewNoReversedLinksRule()) // MD011
	registry.Register(NewLinkFragmentsRule())   // MD051
}

// legacyAliases maps older markdownlint rule names to rule codes.
var legacyAliases = map[string]string{
	"header-increment":      "MD001",
	"header-style":          "MD003",
	"blanks-around-headers": "MD022",
	"header-start-left":     "MD023",
	"no-duplicate-header":   "MD024",
	"single-title":          "MD025",
}

// RegisterLegacyAliases registers the older markdownlint names so that
// configuration written for them keeps working.
func RegisterLegacyAliases(registry *lint.Registry) {
	for alias, code := range legacyAliases {
		registry.RegisterAlias(alias, code)
	}
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
