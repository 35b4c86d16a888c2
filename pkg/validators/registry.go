// Package validators provides the built-in disclosure validators and a
// registry for plugging in custom ones.
package validators

import (
	"sync"

	"github.com/greenlens/sdk/pkg/validation"
	"github.com/greenlens/sdk/pkg/validators/completeness"
	"github.com/greenlens/sdk/pkg/validators/consistency"
	"github.com/greenlens/sdk/pkg/validators/quantification"
	"github.com/greenlens/sdk/pkg/validators/riskcoverage"
)

// =============================================================================
// Validator Registry - Plugin system for validators and adapters
// =============================================================================

// Registry manages registered validators and registry adapters.
type Registry struct {
	validators map[string]validation.Validator
	adapters   map[string]validation.Adapter
	mu         sync.RWMutex
}

// NewRegistry creates a registry with the built-in validators. Adapters
// require credentials or reference tables, so none are pre-registered.
func NewRegistry() *Registry {
	registry := &Registry{
		validators: make(map[string]validation.Validator),
		adapters:   make(map[string]validation.Adapter),
	}

	registry.RegisterValidator(consistency.New())
	registry.RegisterValidator(quantification.New())
	registry.RegisterValidator(completeness.New())
	registry.RegisterValidator(riskcoverage.New())

	return registry
}

// NewEmptyRegistry creates a registry with nothing pre-registered.
func NewEmptyRegistry() *Registry {
	return &Registry{
		validators: make(map[string]validation.Validator),
		adapters:   make(map[string]validation.Adapter),
	}
}

// RegisterValidator adds a validator to the registry, replacing any
// existing validator with the same name.
func (r *Registry) RegisterValidator(v validation.Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[v.Name()] = v
}

// GetValidator returns a validator by name, or nil.
func (r *Registry) GetValidator(name string) validation.Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validators[name]
}

// ListValidators returns all registered validator names.
func (r *Registry) ListValidators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	return names
}

// Validators returns the registered validators.
func (r *Registry) Validators() []validation.Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]validation.Validator, 0, len(r.validators))
	for _, v := range r.validators {
		out = append(out, v)
	}
	return out
}

// RegisterAdapter adds a registry adapter, replacing any existing adapter
// with the same name.
func (r *Registry) RegisterAdapter(a validation.Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Name()] = a
}

// GetAdapter returns an adapter by name, or nil.
func (r *Registry) GetAdapter(name string) validation.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[name]
}

// ListAdapters returns all registered adapter names.
func (r *Registry) ListAdapters() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}

// Adapters returns the registered adapters.
func (r *Registry) Adapters() []validation.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]validation.Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a)
	}
	return out
}

// =============================================================================
// Preset Validators - Ready-to-use validator instances
// =============================================================================

// Consistency returns a new internal consistency validator.
func Consistency() *consistency.Validator { return consistency.New() }

// Quantification returns a new quantification validator.
func Quantification() *quantification.Validator { return quantification.New() }

// Completeness returns a new TCFD completeness validator.
func Completeness() *completeness.Validator { return completeness.New() }

// RiskCoverage returns a new risk coverage validator.
func RiskCoverage() *riskcoverage.Validator { return riskcoverage.New() }

// Defaults returns the four built-in validators in pipeline order.
func Defaults() []validation.Validator {
	return []validation.Validator{
		consistency.New(),
		quantification.New(),
		completeness.New(),
		riskcoverage.New(),
	}
}
