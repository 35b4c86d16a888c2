package validation

import (
	"context"
	"fmt"
	"testing"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

type fakeValidator struct {
	name  string
	score float64
	err   error
	panic bool
}

func (v *fakeValidator) Name() string { return v.name }

func (v *fakeValidator) Validate(record *disclosure.Record) (*Result, error) {
	if v.panic {
		panic("boom")
	}
	if v.err != nil {
		return nil, v.err
	}
	return &Result{ValidatorName: v.name, Score: Score(v.score)}, nil
}

type fakeAdapter struct {
	name  string
	score float64
	err   error
	calls int
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) CrossValidate(ctx context.Context, record *disclosure.Record) (*Result, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return &Result{ValidatorName: AdapterName(a.name), Score: Score(a.score)}, nil
}

func TestPipeline_ValidatorFaultDoesNotAbortRun(t *testing.T) {
	p := NewPipeline([]Validator{
		&fakeValidator{name: "first", score: 0.8},
		&fakeValidator{name: "broken", err: fmt.Errorf("nil map write")},
		&fakeValidator{name: "last", score: 0.6},
	}, nil)

	results := p.Run(context.Background(), &disclosure.Record{CompanyName: "Acme"}, false)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	broken := results[1]
	if broken.ValidatorName != "broken" {
		t.Errorf("fault result name = %q", broken.ValidatorName)
	}
	if broken.Score == nil || *broken.Score != 0.0 {
		t.Errorf("fault result score = %v, want 0.0", broken.Score)
	}
	if len(broken.Findings) != 1 || broken.Findings[0].Code != "VALIDATOR-ERROR" {
		t.Fatalf("fault findings = %+v", broken.Findings)
	}
	if broken.Findings[0].Severity != severity.Critical {
		t.Errorf("fault severity = %q, want critical", broken.Findings[0].Severity)
	}
	if results[2].ValidatorName != "last" {
		t.Error("validators after the fault should still run")
	}
}

func TestPipeline_ValidatorPanicIsRecovered(t *testing.T) {
	p := NewPipeline([]Validator{&fakeValidator{name: "panicky", panic: true}}, nil)

	results := p.Run(context.Background(), &disclosure.Record{}, false)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Findings[0].Code != "VALIDATOR-ERROR" {
		t.Errorf("panic should convert to VALIDATOR-ERROR, got %+v", results[0].Findings)
	}
}

func TestPipeline_AdapterThreeWayOutcome(t *testing.T) {
	ok := &fakeAdapter{name: "cdp", score: 1.0}
	noData := &fakeAdapter{name: "sbti", err: errors.NoData("adapters.sbti", "no dataset")}
	broken := &fakeAdapter{name: "custom", err: errors.E(errors.KindInvalidInput, "adapters.custom", "no company column")}

	p := NewPipeline(nil, []Adapter{ok, noData, broken})
	results := p.Run(context.Background(), &disclosure.Record{}, true)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].ValidatorName != "adapter:cdp" || results[0].Score == nil {
		t.Errorf("success outcome wrong: %+v", results[0])
	}

	nd := results[1]
	if nd.Score != nil {
		t.Error("no-data outcome must have a null score")
	}
	if len(nd.Findings) != 1 || nd.Findings[0].Code != "ADAPTER-NO-DATA" || nd.Findings[0].Severity != severity.Info {
		t.Errorf("no-data outcome findings = %+v", nd.Findings)
	}

	fault := results[2]
	if fault.Score != nil {
		t.Error("fault outcome must have a null score")
	}
	if len(fault.Findings) != 1 || fault.Findings[0].Code != "ADAPTER-ERROR" || fault.Findings[0].Severity != severity.Warning {
		t.Errorf("fault outcome findings = %+v", fault.Findings)
	}
}

func TestPipeline_CrossValidateFlagSkipsAdapters(t *testing.T) {
	adapter := &fakeAdapter{name: "cdp", score: 1.0}
	p := NewPipeline([]Validator{&fakeValidator{name: "consistency", score: 1.0}}, []Adapter{adapter})

	results := p.Run(context.Background(), &disclosure.Record{}, false)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if adapter.calls != 0 {
		t.Error("adapter should not be invoked when cross-validation is off")
	}
}

func TestPipeline_OrderStable(t *testing.T) {
	p := NewPipeline(
		[]Validator{&fakeValidator{name: "a", score: 1}, &fakeValidator{name: "b", score: 1}},
		[]Adapter{&fakeAdapter{name: "x"}, &fakeAdapter{name: "y"}},
	)

	results := p.Run(context.Background(), &disclosure.Record{}, true)

	want := []string{"a", "b", "adapter:x", "adapter:y"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, name := range want {
		if results[i].ValidatorName != name {
			t.Errorf("results[%d] = %q, want %q", i, results[i].ValidatorName, name)
		}
	}
}

func TestResult_CountBySeverity(t *testing.T) {
	r := &Result{Findings: []Finding{
		{Severity: severity.Critical},
		{Severity: severity.Critical},
		{Severity: severity.Warning},
	}}
	if got := r.CountBySeverity(severity.Critical); got != 2 {
		t.Errorf("critical count = %d, want 2", got)
	}
	if got := r.CountBySeverity(severity.Info); got != 0 {
		t.Errorf("info count = %d, want 0", got)
	}
}
