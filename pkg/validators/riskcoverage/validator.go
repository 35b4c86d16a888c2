// Package riskcoverage assesses the breadth and depth of climate risk
// disclosure: both TCFD risk families must be present, and risks should
// carry quantified financial impact.
package riskcoverage

import (
	"fmt"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const Name = "risk_coverage"

// quantificationFloor is the fraction of risks that must carry a quantified
// financial impact before RISK-003 stops firing.
const quantificationFloor = 0.3

// Validator scores risk breadth and depth.
type Validator struct{}

// New creates a risk coverage validator.
func New() *Validator { return &Validator{} }

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate scores 0.5 * breadth + 0.5 * depth, where breadth counts the
// physical/transition families present and depth is the quantification rate.
// A missing family is a critical finding.
func (v *Validator) Validate(record *disclosure.Record) (*validation.Result, error) {
	var findings []validation.Finding

	hasPhysical := hasRiskType(record, disclosure.RiskPhysical)
	hasTransition := hasRiskType(record, disclosure.RiskTransition)

	if !hasPhysical {
		findings = append(findings, validation.Finding{
			Validator: v.Name(),
			Code:      "RISK-001",
			Severity:  severity.Critical,
			Message:   "No physical climate risks disclosed",
		})
	}
	if !hasTransition {
		findings = append(findings, validation.Finding{
			Validator: v.Name(),
			Code:      "RISK-002",
			Severity:  severity.Critical,
			Message:   "No transition climate risks disclosed",
		})
	}

	quantified := 0
	for _, risk := range record.Risks {
		if risk.FinancialImpactValue != nil {
			quantified++
		}
	}
	total := len(record.Risks)
	rate := float64(quantified) / float64(max(total, 1))

	if rate < quantificationFloor {
		findings = append(findings, validation.Finding{
			Validator: v.Name(),
			Code:      "RISK-003",
			Severity:  severity.Warning,
			Message:   fmt.Sprintf("Only %.0f%% of risks have quantified financial impact", rate*100),
		})
	}

	breadth := (boolToFloat(hasPhysical) + boolToFloat(hasTransition)) / 2
	score := breadth*0.5 + rate*0.5

	return &validation.Result{
		ValidatorName: v.Name(),
		Score:         validation.Score(score),
		Findings:      findings,
		Metadata: map[string]any{
			"physical_covered":    hasPhysical,
			"transition_covered":  hasTransition,
			"quantification_rate": rate,
			"risk_count":          total,
		},
	}, nil
}

func hasRiskType(record *disclosure.Record, t disclosure.RiskType) bool {
	for _, risk := range record.Risks {
		if risk.Type == t {
			return true
		}
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
