package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds all registered lint rules.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]Rule
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same code already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	meta := rule.Metadata()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode[strings.ToUpper(meta.Code)] = rule
	if meta.Name != "" {
		r.byName[meta.Name] = rule
	}
}

// RegisterAlias makes an additional name resolve to the rule with the given
// code. It returns false when no such rule is registered.
func (r *Registry) RegisterAlias(alias, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return false
	}
	r.byName[alias] = rule
	return true
}

// Get retrieves a rule by code or name.
// Codes are matched case-insensitively; names are matched exactly.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByCode(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

// GetByCode retrieves a rule by its code only.
func (r *Registry) GetByCode(code string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byCode[strings.ToUpper(code)]
	return rule, ok
}

// GetByName retrieves a rule by its name only.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Resolve returns the canonical code for a code or name.
func (r *Registry) Resolve(key string) (string, bool) {
	rule, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return rule.Metadata().Code, true
}

// Rules returns all registered rules sorted by code.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byCode))
	for _, rule := range r.byCode {
		result = append(result, rule)
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Metadata().Code, b.Metadata().Code)
	})

	return result
}

// Codes returns all registered rule codes in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byCode))
	for _, rule := range r.byCode {
		result = append(result, rule.Metadata().Code)
	}

	slices.Sort(result)
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
