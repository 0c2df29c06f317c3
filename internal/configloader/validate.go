package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "run.ignore[0]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap makes every validation error match config.ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return config.ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []error

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []string
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	return errors.Join(r.Errors...)
}

// Validate checks a configuration for errors and warnings. Rule names and
// aliases in linter.exclude are rewritten to their codes.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err)
	}

	validateIgnorePatterns(cfg, result)
	normalizeExcludes(cfg, registry, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Run.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				Field:   fmt.Sprintf("run.ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// normalizeExcludes converts rule names and aliases in linter.exclude to
// canonical codes, so "no-trailing-spaces" and "md009" both exclude MD009.
// Unknown entries are kept and reported as warnings.
func normalizeExcludes(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	if registry == nil || len(cfg.Linter.Exclude) == 0 {
		return
	}

	seen := make(map[string]bool, len(cfg.Linter.Exclude))
	normalized := make([]string, 0, len(cfg.Linter.Exclude))

	for _, entry := range cfg.Linter.Exclude {
		key := strings.TrimSpace(entry)
		code, found := registry.Resolve(key)
		if !found {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown rule %q in linter.exclude; it will be ignored", key))
			code = key
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		normalized = append(normalized, code)
	}

	cfg.Linter.Exclude = normalized
}
