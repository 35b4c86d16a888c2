// Package validation defines the finding and result types shared by all
// validators and adapters, plus the pipeline that orchestrates them.
package validation

import (
	"context"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

// AdapterPrefix marks results produced by external cross-validation.
// The scorer uses it to separate dimension scores from adapter penalties.
const AdapterPrefix = "adapter:"

// Finding is a single reportable issue or note produced by a validator
// or adapter. Findings are immutable once created.
type Finding struct {
	// Validator is the name of the component that produced the finding.
	Validator string `json:"validator"`

	// Code is the machine-readable issue code, e.g. "CONSIST-001".
	Code string `json:"code"`

	Severity severity.Level `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Field points at the affected record field, when one applies.
	Field string `json:"field,omitempty"`

	// Evidence carries the original text or external data backing the finding.
	Evidence string `json:"evidence,omitempty"`

	Recommendation string `json:"recommendation,omitempty"`
}

// Result is the output of one validator or adapter for one record.
type Result struct {
	ValidatorName string `json:"validator_name"`

	// Score in [0,1]. Nil means "could not evaluate": the scorer excludes
	// nil-score results from aggregation entirely.
	Score *float64 `json:"score"`

	Findings []Finding `json:"findings"`

	// Metadata carries validator-specific diagnostics (sub-scores, coverage
	// maps, record counts). Informational only.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Score wraps a float score for Result.Score.
func Score(v float64) *float64 {
	return &v
}

// CountBySeverity returns the number of findings at the given severity.
func (r *Result) CountBySeverity(level severity.Level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == level {
			n++
		}
	}
	return n
}

// AdapterName prefixes an adapter's bare name for use as a result name.
func AdapterName(name string) string {
	return AdapterPrefix + name
}

// Validator is an internal rule validator: a pure function over the record.
// Implementations must be stateless between calls so that validating the
// same record twice yields identical results.
type Validator interface {
	// Name returns the validator name (e.g. "consistency").
	Name() string

	// Validate evaluates the record and returns a scored result.
	Validate(record *disclosure.Record) (*Result, error)
}

// Adapter cross-references the record against an external source.
// CrossValidate returns an error with kind no_data when the adapter was
// constructed without a reference dataset; any other error is an adapter
// fault. Both are recovered by the pipeline, never propagated.
type Adapter interface {
	// Name returns the bare adapter name (e.g. "sbti"); result names carry
	// the AdapterPrefix.
	Name() string

	// CrossValidate evaluates the record against the external source.
	CrossValidate(ctx context.Context, record *disclosure.Record) (*Result, error)
}
