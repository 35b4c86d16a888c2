// Package completeness checks disclosure coverage against the TCFD
// four-pillar checklist, plus informational sector-specific keyword checks.
package completeness

import (
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const Name = "completeness"

// item is one checklist entry under a TCFD pillar.
type item struct {
	name    string
	covered func(*disclosure.Record) bool
}

// The 11-item four-pillar checklist. Order determines findings order.
var checklist = []item{
	// Governance
	{"board_oversight", func(r *disclosure.Record) bool { return r.Governance.BoardOversight != nil }},
	{"management_role", func(r *disclosure.Record) bool { return r.Governance.ReportingFrequency != "" }},

	// Strategy
	{"climate_risks_identified", func(r *disclosure.Record) bool { return len(r.Risks) > 0 }},
	{"climate_opportunities", func(r *disclosure.Record) bool {
		for _, risk := range r.Risks {
			if strings.Contains(strings.ToLower(risk.Description), "opportunity") {
				return true
			}
		}
		return false
	}},
	{"scenario_analysis", func(r *disclosure.Record) bool {
		return strings.Contains(r.SearchableText(), "scenario")
	}},

	// Risk management
	{"risk_identification_process", func(r *disclosure.Record) bool {
		for _, risk := range r.Risks {
			if risk.Category != "" {
				return true
			}
		}
		return false
	}},
	{"risk_management_process", func(r *disclosure.Record) bool {
		for _, risk := range r.Risks {
			if risk.MitigationStrategy != "" {
				return true
			}
		}
		return false
	}},

	// Metrics & targets
	{"ghg_emissions", func(r *disclosure.Record) bool { return len(r.Emissions) > 0 }},
	{"climate_targets", func(r *disclosure.Record) bool { return len(r.Targets) > 0 }},
	{"progress_tracking", func(r *disclosure.Record) bool {
		for _, e := range r.Emissions {
			if e.BaselineYear != nil {
				return true
			}
		}
		return false
	}},
	{"strategy_resilience", func(r *disclosure.Record) bool {
		return strings.Contains(r.SearchableText(), "resilience")
	}},
}

// sectorMetrics maps a sector to the SASB-style metric keywords probed in
// the record's free text. Coverage is informational only, never scored.
var sectorMetrics = map[string][]string{
	"food_agriculture": {"ghg_emissions", "energy_management", "water_management", "land_use", "biodiversity_impact", "supply_chain_environmental", "packaging_waste"},
	"oil_gas":          {"ghg_emissions", "air_quality", "water_management", "biodiversity_impact", "reserves_valuation", "community_impact"},
	"financials":       {"financed_emissions", "climate_risk_exposure", "sustainable_finance_products", "engagement_policy"},
}

var metricKeywords = map[string][]string{
	"ghg_emissions":                {"ghg", "greenhouse gas", "emission", "co2", "carbon"},
	"energy_management":            {"energy", "consumption", "efficiency", "renewable"},
	"water_management":             {"water", "scarcity", "usage"},
	"land_use":                     {"land", "agriculture", "deforestation"},
	"biodiversity_impact":          {"biodiversity", "habitat", "species", "ecosystem"},
	"supply_chain_environmental":   {"supply chain", "supplier", "vendor", "procurement"},
	"packaging_waste":              {"packaging", "waste", "recycling"},
	"air_quality":                  {"air quality", "pollution", "particulates"},
	"reserves_valuation":           {"reserves", "valuation", "impairment"},
	"community_impact":             {"community", "stakeholder", "local"},
	"financed_emissions":           {"financed", "financing", "portfolio", "lending"},
	"climate_risk_exposure":        {"climate", "risk", "exposure", "vulnerability"},
	"sustainable_finance_products": {"sustainable", "green bond"},
	"engagement_policy":            {"engagement", "shareholder", "proxy"},
}

// Validator checks the four-pillar checklist.
type Validator struct{}

// New creates a completeness validator.
func New() *Validator { return &Validator{} }

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate scores items covered / 11 and emits a warning per missing item.
// Sector metric coverage, when a sector is known, lands in metadata only.
func (v *Validator) Validate(record *disclosure.Record) (*validation.Result, error) {
	var findings []validation.Finding
	coverage := make(map[string]bool, len(checklist))
	covered := 0

	for _, it := range checklist {
		ok := it.covered(record)
		coverage[it.name] = ok
		if ok {
			covered++
			continue
		}
		findings = append(findings, validation.Finding{
			Validator: Name,
			Code:      "COMPL-TCFD-" + strings.ToUpper(it.name),
			Severity:  severity.Warning,
			Message:   "TCFD recommended disclosure missing: " + it.name,
			Field:     it.name,
		})
	}

	score := float64(covered) / float64(len(checklist))

	metadata := map[string]any{
		"tcfd_coverage": coverage,
		"tcfd_score":    score,
	}
	if record.Sector != "" {
		metadata["sector_coverage"] = sectorCoverage(record)
	}

	return &validation.Result{
		ValidatorName: Name,
		Score:         validation.Score(score),
		Findings:      findings,
		Metadata:      metadata,
	}, nil
}

func sectorCoverage(record *disclosure.Record) map[string]bool {
	metrics, ok := sectorMetrics[strings.ToLower(record.Sector)]
	if !ok {
		return map[string]bool{}
	}

	text := record.SearchableText()
	coverage := make(map[string]bool, len(metrics))
	for _, metric := range metrics {
		keywords, ok := metricKeywords[metric]
		if !ok {
			keywords = []string{metric}
		}
		found := false
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				found = true
				break
			}
		}
		coverage[metric] = found
	}
	return coverage
}
