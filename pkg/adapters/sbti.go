package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const sbtiSourceURL = "https://sciencebasedtargets.org/companies-taking-action"

// SBTi validates science-based target claims against the Science Based
// Targets initiative company dashboard. Lookups return the single best
// registry match.
type SBTi struct {
	Base
}

// NewSBTi creates an SBTi adapter. Without WithTable it stays in no-data
// mode and the pipeline skips it.
func NewSBTi(opts ...Option) *SBTi {
	return &SBTi{Base: newBase(sbtiSourceURL, 1, opts...)}
}

// Name returns the adapter name.
func (a *SBTi) Name() string { return "sbti" }

// Status reports data readiness.
func (a *SBTi) Status() Status {
	return Status{Name: a.Name(), DataLoaded: a.HasData(), SourceURL: a.sourceURL}
}

// CrossValidate checks that a disclosed science-based target claim is backed
// by a registry record. A claim with no record is critical: it is the
// strongest external signal of overstated commitments.
func (a *SBTi) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	const op = "adapters.SBTi.CrossValidate"

	if err := a.requireData(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []validation.Finding
	rows := a.resolve(record.CompanyName)

	if len(rows) == 0 {
		if record.ClaimsScienceBasedTarget() {
			findings = append(findings, validation.Finding{
				Validator:      a.Name(),
				Code:           "SBTI-001",
				Severity:       severity.Critical,
				Message:        "Company claims SBTi target but not found in SBTi database",
				Recommendation: "Verify SBTi status directly with the initiative",
			})
		}
	} else {
		registered := rows[0]
		for _, target := range record.Targets {
			if target.ScienceBased == nil || !*target.ScienceBased {
				continue
			}
			findings = append(findings, a.compareTarget(target, registered)...)
		}
	}

	criticals := 0
	for _, f := range findings {
		if f.Severity == severity.Critical {
			criticals++
		}
	}

	return &validation.Result{
		ValidatorName: validation.AdapterName(a.Name()),
		Score:         validation.Score(adapterScore(criticals)),
		Findings:      findings,
		Metadata:      map[string]any{"sbti_record_found": len(rows) > 0},
	}, nil
}

func (a *SBTi) compareTarget(target disclosure.TargetEntry, registered map[string]string) []validation.Finding {
	var findings []validation.Finding

	yearCol := a.table.ResolveColumn("target_year")
	if target.TargetYear != nil && yearCol != "" && registered[yearCol] != "" {
		registeredYear, err := strconv.Atoi(registered[yearCol])
		if err == nil && registeredYear != *target.TargetYear {
			findings = append(findings, validation.Finding{
				Validator: a.Name(),
				Code:      "SBTI-002",
				Severity:  severity.Warning,
				Message: fmt.Sprintf("Target year mismatch: disclosed %d, SBTi records %d",
					*target.TargetYear, registeredYear),
			})
		}
	}

	return findings
}

// Benchmark summarizes SBTi participation for a sector: company count and
// the fraction with targets set.
func (a *SBTi) Benchmark(sector string) map[string]any {
	if !a.HasData() {
		return map[string]any{}
	}

	rows := a.sectorRows(sector)
	statusCol := a.table.ResolveColumn("status")

	targetsSet := 0
	for _, row := range rows {
		if strings.EqualFold(strings.ReplaceAll(row[statusCol], " ", "_"), "targets_set") {
			targetsSet++
		}
	}

	return map[string]any{
		"total_companies": len(rows),
		"committed_pct":   float64(targetsSet) / float64(max(len(rows), 1)),
	}
}
