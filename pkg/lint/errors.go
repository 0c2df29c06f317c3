package lint

import (
	"errors"
	"fmt"
)

// ErrRulePanic marks a RuleError recovered from a panic.
var ErrRulePanic = errors.New("rule panicked")

// RuleError is an internal failure of one rule on one file. The engine
// logs it and drops the rule's violations; sibling rules are unaffected.
type RuleError struct {
	Code string
	Path string
	Err  error
}

func (e *RuleError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rule %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("rule %s on %s: %v", e.Code, e.Path, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// recoveredError converts a recovered panic value into an error.
func recoveredError(value any) error {
	if err, ok := value.(error); ok {
		return fmt.Errorf("%w: %w", ErrRulePanic, err)
	}
	return fmt.Errorf("%w: %v", ErrRulePanic, value)
}
