// Package lint provides the rule contract, registry and engine for mdcheck.
package lint

import (
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Metadata is the static description of a rule. It is attached to every
// issue the rule produces.
type Metadata struct {
	// Code is the rule identifier (e.g., "MD001").
	Code string

	// Name is the short kebab-case alias (e.g., "heading-increment").
	Name string

	// Requirement states what the rule expects of a document.
	Requirement string

	// Rationale explains what goes wrong when the requirement is not met.
	Rationale string

	// Documentation links to the upstream description of the rule.
	Documentation string

	// AdditionalLinks point to related reference material.
	AdditionalLinks []string

	// FmtFixable is true when "mdcheck fmt" resolves the violation.
	FmtFixable bool
}

// Violation is a single rule finding before it is enriched with Metadata.
type Violation struct {
	// Message is the short summary (e.g., "Found trailing space").
	Message string

	// Assertion is the expected-versus-actual detail. It may be empty.
	Assertion string

	// Fixes are human-readable suggestions, in order.
	Fixes []string

	// Position is the source span the violation refers to.
	Position mdast.Position
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// Metadata returns the static description of the rule.
	Metadata() Metadata

	// IsEnabled reports whether the rule runs under cfg.
	IsEnabled(cfg *config.Config) bool

	// Check runs the rule against one parsed file.
	//
	// Rules must:
	//   - treat the snapshot and config as read-only,
	//   - return violations in document order,
	//   - return an error only for internal failures, not violations.
	Check(rc *RuleContext) ([]Violation, error)
}
