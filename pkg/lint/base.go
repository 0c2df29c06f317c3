package lint

import "github.com/yaklabco/mdcheck/pkg/config"

// BaseRule provides the Metadata and IsEnabled parts of the Rule interface.
// Embed it in rule implementations and add a Check method.
//
// The metadata field is unexported to avoid a collision with the Metadata method.
type BaseRule struct {
	meta Metadata
}

// NewBaseRule creates a BaseRule describing a rule.
func NewBaseRule(meta Metadata) BaseRule {
	return BaseRule{meta: meta}
}

// Metadata returns the static description of the rule.
func (r *BaseRule) Metadata() Metadata {
	meta := r.meta
	meta.AdditionalLinks = append([]string(nil), r.meta.AdditionalLinks...)
	return meta
}

// Code returns the rule code.
func (r *BaseRule) Code() string {
	return r.meta.Code
}

// IsEnabled reports whether the rule code is absent from linter.exclude.
func (r *BaseRule) IsEnabled(cfg *config.Config) bool {
	return !cfg.IsExcluded(r.meta.Code)
}

