package lint

import "github.com/yaklabco/mdcheck/pkg/mdast"

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation with the given message.
func NewViolation(message string) *ViolationBuilder {
	return &ViolationBuilder{v: Violation{Message: message}}
}

// Assertion sets the expected-versus-actual detail.
func (b *ViolationBuilder) Assertion(assertion string) *ViolationBuilder {
	b.v.Assertion = assertion
	return b
}

// At sets the position from a node.
func (b *ViolationBuilder) At(node *mdast.Node) *ViolationBuilder {
	if node != nil {
		b.v.Position = node.Position
	}
	return b
}

// Span sets an explicit position.
func (b *ViolationBuilder) Span(pos mdast.Position) *ViolationBuilder {
	b.v.Position = pos
	return b
}

// Fix appends a suggestion.
func (b *ViolationBuilder) Fix(fix string) *ViolationBuilder {
	b.v.Fixes = append(b.v.Fixes, fix)
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	out := b.v
	out.Fixes = append([]string(nil), b.v.Fixes...)
	return out
}
