// Package options provides functional options for evaluator construction.
package options

import (
	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/metrics"
	"github.com/greenlens/sdk/pkg/validation"
)

// =============================================================================
// Evaluator Options
// =============================================================================

// EvaluatorConfig holds the final evaluator configuration.
type EvaluatorConfig struct {
	// Validators are the rule validators to run. Nil means the default set.
	Validators []validation.Validator

	// Adapters are the external cross-validation adapters, run in order.
	Adapters []validation.Adapter

	// Weights overrides the scoring dimension weights.
	Weights map[string]float64

	// CrossValidate enables the adapter phase. Defaults to true.
	CrossValidate bool

	// Workers bounds concurrent evaluations in EvaluateBatch.
	Workers int

	Logger  core.Logger
	Metrics metrics.Collector
}

// EvaluatorOption is a function that configures the evaluator.
type EvaluatorOption func(*EvaluatorConfig)

// DefaultEvaluatorConfig returns the default evaluator configuration.
func DefaultEvaluatorConfig() *EvaluatorConfig {
	return &EvaluatorConfig{
		CrossValidate: true,
		Workers:       4,
		Logger:        &core.NopLogger{},
		Metrics:       &metrics.NopCollector{},
	}
}

// ApplyEvaluatorOptions applies options to config.
func ApplyEvaluatorOptions(cfg *EvaluatorConfig, opts ...EvaluatorOption) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithValidators replaces the default validator set.
func WithValidators(validators ...validation.Validator) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		c.Validators = validators
	}
}

// WithAdapters appends cross-validation adapters.
func WithAdapters(adapters ...validation.Adapter) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		c.Adapters = append(c.Adapters, adapters...)
	}
}

// WithWeights overrides the scoring dimension weights.
func WithWeights(weights map[string]float64) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		c.Weights = weights
	}
}

// WithCrossValidation toggles the adapter phase.
func WithCrossValidation(enabled bool) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		c.CrossValidate = enabled
	}
}

// WithWorkers bounds the batch worker pool.
func WithWorkers(n int) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithLogger sets the evaluator logger.
func WithLogger(logger core.Logger) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector metrics.Collector) EvaluatorOption {
	return func(c *EvaluatorConfig) {
		if collector != nil {
			c.Metrics = collector
		}
	}
}
