// Package quantification assesses the data density of a disclosure: whether
// the narrative is backed by enough quantitative metrics.
package quantification

import (
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const Name = "quantification"

// Sub-score weights: emission data carries the most signal, then targets,
// then risk quantification.
const (
	emissionsWeight = 0.40
	targetsWeight   = 0.35
	risksWeight     = 0.25
)

// check is one checklist item evaluated across all entries of its group.
type check struct {
	name string
	pass func(*disclosure.Record) bool
}

// Validator scores the three quantification checklists.
type Validator struct{}

// New creates a quantification validator.
func New() *Validator { return &Validator{} }

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate computes emissions (7 items), target (5 items) and risk (4 items)
// completeness fractions and combines them with fixed weights. Every unmet
// item emits a warning finding.
func (v *Validator) Validate(record *disclosure.Record) (*validation.Result, error) {
	var findings []validation.Finding

	run := func(checks []check) float64 {
		passed := 0
		for _, c := range checks {
			if c.pass(record) {
				passed++
				continue
			}
			findings = append(findings, validation.Finding{
				Validator: Name,
				Code:      "QUANT-" + strings.ToUpper(c.name),
				Severity:  severity.Warning,
				Message:   "Missing quantification: " + strings.ReplaceAll(c.name, "_", " "),
				Field:     c.name,
			})
		}
		return float64(passed) / float64(len(checks))
	}

	emissionsScore := run(emissionChecks)
	targetsScore := run(targetChecks)
	risksScore := run(riskChecks)

	overall := emissionsScore*emissionsWeight + targetsScore*targetsWeight + risksScore*risksWeight

	return &validation.Result{
		ValidatorName: Name,
		Score:         validation.Score(overall),
		Findings:      findings,
		Metadata: map[string]any{
			"sub_scores": map[string]float64{
				"emissions": emissionsScore,
				"targets":   targetsScore,
				"risks":     risksScore,
			},
		},
	}, nil
}

var emissionChecks = []check{
	{"has_scope1_absolute", scopeHasValue(disclosure.Scope1)},
	{"has_scope2_absolute", scopeHasValue(disclosure.Scope2)},
	{"has_scope3_absolute", scopeHasValue(disclosure.Scope3)},
	{"has_baseline_year", func(r *disclosure.Record) bool {
		return anyEmission(r, func(e disclosure.EmissionEntry) bool { return e.BaselineYear != nil })
	}},
	{"has_intensity_metric", func(r *disclosure.Record) bool {
		return anyEmission(r, func(e disclosure.EmissionEntry) bool { return e.IntensityValue != nil })
	}},
	{"has_methodology", func(r *disclosure.Record) bool {
		return anyEmission(r, func(e disclosure.EmissionEntry) bool { return e.Methodology != "" })
	}},
	{"has_third_party_assurance", func(r *disclosure.Record) bool {
		return anyEmission(r, func(e disclosure.EmissionEntry) bool { return e.AssuranceLevel != "" })
	}},
}

var targetChecks = []check{
	{"has_reduction_percentage", func(r *disclosure.Record) bool {
		return anyTarget(r, func(t disclosure.TargetEntry) bool { return t.ReductionPct != nil })
	}},
	{"has_target_year", func(r *disclosure.Record) bool {
		return anyTarget(r, func(t disclosure.TargetEntry) bool { return t.TargetYear != nil })
	}},
	{"has_base_year", func(r *disclosure.Record) bool {
		return anyTarget(r, func(t disclosure.TargetEntry) bool { return t.BaseYear != nil })
	}},
	{"has_interim_milestones", func(r *disclosure.Record) bool {
		return anyTarget(r, func(t disclosure.TargetEntry) bool { return len(t.InterimTargets) > 0 })
	}},
	{"has_scope_coverage", func(r *disclosure.Record) bool {
		return anyTarget(r, func(t disclosure.TargetEntry) bool { return len(t.ScopesCovered) > 0 })
	}},
}

var riskChecks = []check{
	{"has_financial_impact", func(r *disclosure.Record) bool {
		return anyRisk(r, func(rk disclosure.RiskEntry) bool { return rk.FinancialImpactValue != nil })
	}},
	{"has_time_horizon", func(r *disclosure.Record) bool {
		return anyRisk(r, func(rk disclosure.RiskEntry) bool { return rk.TimeHorizon != "" })
	}},
	{"has_likelihood", func(r *disclosure.Record) bool {
		return anyRisk(r, func(rk disclosure.RiskEntry) bool { return rk.Likelihood != "" })
	}},
	{"has_mitigation", func(r *disclosure.Record) bool {
		return anyRisk(r, func(rk disclosure.RiskEntry) bool { return rk.MitigationStrategy != "" })
	}},
}

func scopeHasValue(scope disclosure.Scope) func(*disclosure.Record) bool {
	return func(r *disclosure.Record) bool {
		return anyEmission(r, func(e disclosure.EmissionEntry) bool {
			return e.Scope == scope && e.Value != nil
		})
	}
}

func anyEmission(r *disclosure.Record, pred func(disclosure.EmissionEntry) bool) bool {
	for _, e := range r.Emissions {
		if pred(e) {
			return true
		}
	}
	return false
}

func anyTarget(r *disclosure.Record, pred func(disclosure.TargetEntry) bool) bool {
	for _, t := range r.Targets {
		if pred(t) {
			return true
		}
	}
	return false
}

func anyRisk(r *disclosure.Record, pred func(disclosure.RiskEntry) bool) bool {
	for _, rk := range r.Risks {
		if pred(rk) {
			return true
		}
	}
	return false
}
