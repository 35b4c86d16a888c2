package evaluator

import (
	"context"
	"fmt"
	"testing"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/metrics"
	"github.com/greenlens/sdk/pkg/options"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

type fixedValidator struct {
	name  string
	score float64
}

func (v fixedValidator) Name() string { return v.name }

func (v fixedValidator) Validate(record *disclosure.Record) (*validation.Result, error) {
	return &validation.Result{
		ValidatorName: v.name,
		Score:         validation.Score(v.score),
	}, nil
}

type fixedAdapter struct {
	name   string
	result *validation.Result
	err    error
}

func (a fixedAdapter) Name() string { return a.name }

func (a fixedAdapter) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	return a.result, a.err
}

func perfectValidators() options.EvaluatorOption {
	return options.WithValidators(
		fixedValidator{"consistency", 1.0},
		fixedValidator{"quantification", 1.0},
		fixedValidator{"completeness", 1.0},
		fixedValidator{"risk_coverage", 1.0},
	)
}

func testRecord() *disclosure.Record {
	return &disclosure.Record{CompanyName: "Acme Corporation", ReportYear: 2023}
}

func TestEvaluate_RejectsUnusableRecord(t *testing.T) {
	e := New(perfectValidators())

	if _, err := e.Evaluate(context.Background(), nil); err == nil {
		t.Error("nil record should error")
	}
	if _, err := e.Evaluate(context.Background(), &disclosure.Record{}); err == nil {
		t.Error("record without company name should error")
	}
}

func TestEvaluate_AggregatesValidatorScores(t *testing.T) {
	e := New(perfectValidators())

	got, err := e.Evaluate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.OverallScore != 100.0 || got.Grade != "A" {
		t.Errorf("score = %v grade = %q", got.OverallScore, got.Grade)
	}
	if got.CompanyName != "Acme Corporation" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if len(got.Results) != 4 {
		t.Errorf("Results = %d, want 4", len(got.Results))
	}
}

func TestEvaluate_AdapterPenaltyApplied(t *testing.T) {
	adapter := fixedAdapter{
		name: "sbti",
		result: &validation.Result{
			ValidatorName: validation.AdapterName("sbti"),
			Score:         validation.Score(0.7),
			Findings: []validation.Finding{
				{Validator: "sbti", Code: "SBTI-001", Severity: severity.Critical},
			},
		},
	}
	e := New(perfectValidators(), options.WithAdapters(adapter))

	got, err := e.Evaluate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.OverallScore != 95.0 {
		t.Errorf("OverallScore = %v, want 95 after penalty", got.OverallScore)
	}
	if got.CrossValidation.PenaltyApplied != 5 {
		t.Errorf("penalty = %v", got.CrossValidation.PenaltyApplied)
	}
}

func TestEvaluate_NoDataAdapterNeverPenalizes(t *testing.T) {
	adapter := fixedAdapter{
		name: "cdp",
		err:  errors.NoData("test", "dataset not provided"),
	}
	collector := metrics.NewInMemoryCollector()
	e := New(perfectValidators(),
		options.WithAdapters(adapter),
		options.WithMetrics(collector))

	got, err := e.Evaluate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.OverallScore != 100.0 {
		t.Errorf("OverallScore = %v, want 100", got.OverallScore)
	}

	var adapterResult *validation.Result
	for _, res := range got.Results {
		if res.ValidatorName == "adapter:cdp" {
			adapterResult = res
		}
	}
	if adapterResult == nil {
		t.Fatal("missing adapter result")
	}
	if adapterResult.Score != nil {
		t.Errorf("Score = %v, want nil for skipped adapter", *adapterResult.Score)
	}
	if len(adapterResult.Findings) != 1 || adapterResult.Findings[0].Severity != severity.Info {
		t.Errorf("Findings = %+v, want single info finding", adapterResult.Findings)
	}
	if got := collector.GetCounter(metrics.AdapterSkipsTotal.Name, "adapter", "adapter:cdp"); got != 1 {
		t.Errorf("skip counter = %v, want 1", got)
	}
}

func TestEvaluate_CrossValidationDisabled(t *testing.T) {
	adapter := fixedAdapter{
		name:   "sbti",
		result: &validation.Result{ValidatorName: validation.AdapterName("sbti")},
	}
	e := New(perfectValidators(),
		options.WithAdapters(adapter),
		options.WithCrossValidation(false))

	got, err := e.Evaluate(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(got.Results) != 4 {
		t.Errorf("Results = %d, want validators only", len(got.Results))
	}
}

func TestEvaluate_RecordsMetrics(t *testing.T) {
	collector := metrics.NewInMemoryCollector()
	e := New(perfectValidators(), options.WithMetrics(collector))

	if _, err := e.Evaluate(context.Background(), testRecord()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if got := collector.GetCounter(metrics.EvaluationsTotal.Name, "grade", "A"); got != 1 {
		t.Errorf("evaluations counter = %v, want 1", got)
	}
	if got := collector.GetGauge(metrics.ValidatorScore.Name, "validator", "consistency"); got != 1.0 {
		t.Errorf("score gauge = %v, want 1.0", got)
	}
	if got := collector.GetHistogram(metrics.ValidatorDuration.Name, "validator", "consistency"); len(got) != 1 {
		t.Errorf("duration observations = %v, want 1", got)
	}
	if got := collector.GetHistogram(metrics.EvaluationDuration.Name); len(got) != 1 {
		t.Errorf("evaluation duration observations = %v, want 1", got)
	}
}

func TestEvaluate_DefaultValidatorsAreIdempotent(t *testing.T) {
	e := New()
	record := &disclosure.Record{
		CompanyName: "Acme Corporation",
		ReportYear:  2023,
		Risks: []disclosure.RiskEntry{
			{Type: disclosure.RiskPhysical, Description: "Coastal flooding exposure"},
		},
	}

	first, err := e.Evaluate(context.Background(), record)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := e.Evaluate(context.Background(), record)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if first.OverallScore != second.OverallScore || first.Grade != second.Grade {
		t.Errorf("repeated evaluation differs: %v/%s vs %v/%s",
			first.OverallScore, first.Grade, second.OverallScore, second.Grade)
	}
	if len(first.Results) != len(second.Results) {
		t.Errorf("result counts differ: %d vs %d", len(first.Results), len(second.Results))
	}
}

func TestEvaluateBatch(t *testing.T) {
	e := New(perfectValidators(), options.WithWorkers(2))

	records := make([]*disclosure.Record, 5)
	for i := range records {
		records[i] = &disclosure.Record{
			CompanyName: fmt.Sprintf("Company %d", i),
			ReportYear:  2023,
		}
	}
	records[2] = nil // unusable record

	results, err := e.EvaluateBatch(context.Background(), records)
	if err == nil {
		t.Error("batch with unusable record should report an error")
	}
	if len(results) != 5 {
		t.Fatalf("results = %d, want 5", len(results))
	}
	for i, result := range results {
		if i == 2 {
			if result != nil {
				t.Error("failed record should leave a nil slot")
			}
			continue
		}
		if result == nil {
			t.Fatalf("result %d is nil", i)
		}
		if result.CompanyName != fmt.Sprintf("Company %d", i) {
			t.Errorf("result %d = %q, out of order", i, result.CompanyName)
		}
	}
}

func TestEvaluateBatch_Empty(t *testing.T) {
	e := New(perfectValidators())

	results, err := e.EvaluateBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("EvaluateBatch() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v", results)
	}
}
