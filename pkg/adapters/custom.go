package adapters

import (
	"context"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/reftable"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

// CompareFunc inspects the registry rows matched for a record and returns
// findings. rows is empty when the company was not found.
type CompareFunc func(record *disclosure.Record, rows []reftable.Row) []validation.Finding

// Custom adapts any CSV registry into the cross-validation pipeline. The
// caller supplies the comparison logic; matching, scoring and no-data
// handling follow the built-in adapters.
type Custom struct {
	Base
	name    string
	compare CompareFunc
}

// NewCustom creates an adapter around a user-provided registry.
func NewCustom(name, sourceURL string, compare CompareFunc, opts ...Option) *Custom {
	return &Custom{
		Base:    newBase(sourceURL, 3, opts...),
		name:    name,
		compare: compare,
	}
}

// Name returns the adapter name.
func (a *Custom) Name() string { return a.name }

// Status reports data readiness.
func (a *Custom) Status() Status {
	return Status{Name: a.name, DataLoaded: a.HasData(), SourceURL: a.sourceURL}
}

// CrossValidate resolves the company and applies the comparison function.
func (a *Custom) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	const op = "adapters.Custom.CrossValidate"

	if err := a.requireData(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := a.resolve(record.CompanyName)

	var findings []validation.Finding
	if a.compare != nil {
		findings = a.compare(record, rows)
	}

	criticals := 0
	for _, f := range findings {
		if f.Severity == severity.Critical {
			criticals++
		}
	}

	return &validation.Result{
		ValidatorName: validation.AdapterName(a.name),
		Score:         validation.Score(adapterScore(criticals)),
		Findings:      findings,
		Metadata:      map[string]any{"records_found": len(rows)},
	}, nil
}

// Benchmark summarizes the registry for a sector.
func (a *Custom) Benchmark(sector string) map[string]any {
	if !a.HasData() {
		return map[string]any{}
	}
	return map[string]any{"total_companies": len(a.sectorRows(sector))}
}
