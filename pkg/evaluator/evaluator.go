// Package evaluator is the one-call facade over the validation pipeline
// and scorer: Evaluate turns a disclosure record into an aggregated,
// graded result. EvaluateBatch runs independent records across a bounded
// worker pool.
package evaluator

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/metrics"
	"github.com/greenlens/sdk/pkg/options"
	"github.com/greenlens/sdk/pkg/scoring"
	"github.com/greenlens/sdk/pkg/validation"
	"github.com/greenlens/sdk/pkg/validators"
)

// Evaluator runs the full validation pipeline and scoring for records.
// Safe for concurrent use: validators are pure and the pipeline holds no
// per-run state.
type Evaluator struct {
	pipeline      *validation.Pipeline
	scorer        *scoring.Scorer
	collector     metrics.Collector
	logger        core.Logger
	crossValidate bool
	workers       int
}

// New creates an evaluator. Without options it runs the four default
// rule validators, no adapters, and default scoring weights.
func New(opts ...options.EvaluatorOption) *Evaluator {
	cfg := options.DefaultEvaluatorConfig()
	options.ApplyEvaluatorOptions(cfg, opts...)

	vals := cfg.Validators
	if vals == nil {
		vals = validators.Defaults()
	}

	timedValidators := make([]validation.Validator, len(vals))
	for i, v := range vals {
		timedValidators[i] = timedValidator{Validator: v, collector: cfg.Metrics}
	}
	timedAdapters := make([]validation.Adapter, len(cfg.Adapters))
	for i, a := range cfg.Adapters {
		timedAdapters[i] = timedAdapter{Adapter: a, collector: cfg.Metrics}
	}

	var scorerOpts []scoring.Option
	if cfg.Weights != nil {
		scorerOpts = append(scorerOpts, scoring.WithWeights(cfg.Weights))
	}

	return &Evaluator{
		pipeline:      validation.NewPipeline(timedValidators, timedAdapters, validation.WithLogger(cfg.Logger)),
		scorer:        scoring.NewScorer(scorerOpts...),
		collector:     cfg.Metrics,
		logger:        cfg.Logger,
		crossValidate: cfg.CrossValidate,
		workers:       cfg.Workers,
	}
}

// Evaluate runs the pipeline and scorer for one record. It fails only
// when the record itself is unusable; every downstream failure is folded
// into the result.
func (e *Evaluator) Evaluate(ctx context.Context, record *disclosure.Record) (*scoring.AggregatedResult, error) {
	const op = "evaluator.Evaluator.Evaluate"

	if record == nil {
		return nil, errors.E(op, errors.KindInvalidInput, "record is nil")
	}
	if strings.TrimSpace(record.CompanyName) == "" {
		return nil, errors.E(op, errors.KindInvalidInput, "record has no company name")
	}

	runID := uuid.NewString()
	timer := metrics.NewTimer(e.collector, metrics.EvaluationDuration.Name)

	results := e.pipeline.Run(ctx, record, e.crossValidate)
	aggregated := e.scorer.Aggregate(record, results)

	timer.ObserveDuration()
	e.observe(aggregated)
	e.logger.Info("evaluation %s: %s (%d) scored %.1f grade %s",
		runID, record.CompanyName, record.ReportYear, aggregated.OverallScore, aggregated.Grade)

	return aggregated, nil
}

// EvaluateBatch evaluates independent records concurrently on a bounded
// worker pool. The result slice is aligned with the input; a failed record
// leaves a nil slot and contributes to the joined error.
func (e *Evaluator) EvaluateBatch(ctx context.Context, records []*disclosure.Record) ([]*scoring.AggregatedResult, error) {
	results := make([]*scoring.AggregatedResult, len(records))
	errs := make([]error, len(records))

	workers := e.workers
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				result, err := e.Evaluate(ctx, records[i])
				if err != nil {
					errs[i] = fmt.Errorf("record %d: %w", i, err)
					continue
				}
				results[i] = result
			}
		}()
	}

	for i := range records {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results, stderrors.Join(errs...)
}

func (e *Evaluator) observe(result *scoring.AggregatedResult) {
	e.collector.CounterInc(metrics.EvaluationsTotal.Name, "grade", result.Grade)

	for _, res := range result.Results {
		if res.Score != nil && !strings.HasPrefix(res.ValidatorName, validation.AdapterPrefix) {
			e.collector.GaugeSet(metrics.ValidatorScore.Name, *res.Score, "validator", res.ValidatorName)
		}
		if skipped, ok := res.Metadata["skipped"].(bool); ok && skipped {
			e.collector.CounterInc(metrics.AdapterSkipsTotal.Name, "adapter", res.ValidatorName)
		}
		for _, f := range res.Findings {
			e.collector.CounterInc(metrics.FindingsTotal.Name,
				"validator", res.ValidatorName, "severity", string(f.Severity))
		}
	}
}

// timedValidator records per-validator latency.
type timedValidator struct {
	validation.Validator
	collector metrics.Collector
}

func (v timedValidator) Validate(record *disclosure.Record) (*validation.Result, error) {
	timer := metrics.NewTimer(v.collector, metrics.ValidatorDuration.Name, "validator", v.Name())
	defer timer.ObserveDuration()
	return v.Validator.Validate(record)
}

// timedAdapter records per-adapter latency.
type timedAdapter struct {
	validation.Adapter
	collector metrics.Collector
}

func (a timedAdapter) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	timer := metrics.NewTimer(a.collector, metrics.ValidatorDuration.Name, "validator", validation.AdapterName(a.Name()))
	defer timer.ObserveDuration()
	return a.Adapter.CrossValidate(ctx, record)
}
