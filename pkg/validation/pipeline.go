package validation

import (
	"context"
	"fmt"

	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

// Pipeline orchestrates validators and adapters over one record.
//
// Phase 1 runs every registered validator in registration order. A validator
// fault is converted into a zero-score critical result and the run continues.
//
// Phase 2 runs every adapter, distinguishing three outcomes: success, "no
// reference data" (null score, informational, never a penalty), and any other
// failure (null score, warning). Phase 1 results always precede phase 2
// results in the output.
type Pipeline struct {
	validators []Validator
	adapters   []Adapter
	logger     core.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger core.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline over the given validators and adapters.
func NewPipeline(validators []Validator, adapters []Adapter, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		validators: validators,
		adapters:   adapters,
		logger:     &core.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validators returns the registered validators in registration order.
func (p *Pipeline) Validators() []Validator {
	return p.validators
}

// Adapters returns the registered adapters in registration order.
func (p *Pipeline) Adapters() []Adapter {
	return p.adapters
}

// Run executes the pipeline. It never returns an error: every failure is
// converted into a result so the scorer always has a complete picture.
func (p *Pipeline) Run(ctx context.Context, record *disclosure.Record, crossValidate bool) []*Result {
	results := make([]*Result, 0, len(p.validators)+len(p.adapters))

	for _, v := range p.validators {
		results = append(results, p.runValidator(v, record))
	}

	if !crossValidate || len(p.adapters) == 0 {
		return results
	}

	for _, a := range p.adapters {
		results = append(results, p.runAdapter(ctx, a, record))
	}

	return results
}

func (p *Pipeline) runValidator(v Validator, record *disclosure.Record) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("validator %s panicked: %v", v.Name(), r)
			result = validatorFaultResult(v.Name(), fmt.Errorf("panic: %v", r))
		}
	}()

	result, err := v.Validate(record)
	if err != nil {
		p.logger.Error("validator %s failed: %v", v.Name(), err)
		return validatorFaultResult(v.Name(), err)
	}
	return result
}

func (p *Pipeline) runAdapter(ctx context.Context, a Adapter, record *disclosure.Record) (result *Result) {
	name := AdapterName(a.Name())

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("adapter %s panicked: %v", a.Name(), r)
			result = adapterFaultResult(a.Name(), fmt.Errorf("panic: %v", r))
		}
	}()

	result, err := a.CrossValidate(ctx, record)
	switch {
	case err == nil:
		return result
	case errors.IsNoData(err):
		// Missing data is never missing compliance: record the skip and move on.
		p.logger.Info("adapter %s skipped: %v", a.Name(), err)
		return &Result{
			ValidatorName: name,
			Score:         nil,
			Findings: []Finding{{
				Validator: a.Name(),
				Code:      "ADAPTER-NO-DATA",
				Severity:  severity.Info,
				Message:   fmt.Sprintf("External data not available from %s, skipped.", a.Name()),
			}},
			Metadata: map[string]any{"skipped": true},
		}
	default:
		p.logger.Error("adapter %s failed: %v", a.Name(), err)
		return adapterFaultResult(a.Name(), err)
	}
}

func validatorFaultResult(name string, err error) *Result {
	return &Result{
		ValidatorName: name,
		Score:         Score(0.0),
		Findings: []Finding{{
			Validator: name,
			Code:      "VALIDATOR-ERROR",
			Severity:  severity.Critical,
			Message:   fmt.Sprintf("Validator %s failed: %v", name, err),
		}},
	}
}

func adapterFaultResult(name string, err error) *Result {
	return &Result{
		ValidatorName: AdapterName(name),
		Score:         nil,
		Findings: []Finding{{
			Validator: name,
			Code:      "ADAPTER-ERROR",
			Severity:  severity.Warning,
			Message:   fmt.Sprintf("Adapter %s failed: %v", name, err),
		}},
	}
}
