// Package disclosure defines the structured disclosure record that every
// validator and adapter consumes. Records are produced by the upstream
// extractor and treated as immutable for the lifetime of an evaluation.
package disclosure

import (
	"fmt"
	"sort"
	"strings"
)

// Scope identifies a GHG Protocol emission scope.
type Scope string

const (
	Scope1 Scope = "scope_1"
	Scope2 Scope = "scope_2"
	Scope3 Scope = "scope_3"
)

// RiskType distinguishes the two TCFD risk families.
type RiskType string

const (
	RiskPhysical   RiskType = "physical"
	RiskTransition RiskType = "transition"
)

// EmissionEntry is one disclosed emission data point.
// Absent fields mean "not disclosed", never "disclosed as zero".
type EmissionEntry struct {
	// Scope is required; everything else is optional.
	Scope Scope `json:"scope"`

	// Absolute value in Unit (typically tCO2e).
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`

	// Reporting year of the value.
	Year *int `json:"year,omitempty"`

	// Baseline year the value is tracked against.
	BaselineYear *int `json:"baseline_year,omitempty"`

	// Intensity metric (e.g. tCO2e per million revenue).
	IntensityValue *float64 `json:"intensity_value,omitempty"`
	IntensityUnit  string   `json:"intensity_unit,omitempty"`

	// Calculation methodology (e.g. "GHG Protocol").
	Methodology string `json:"methodology,omitempty"`

	// Third-party assurance level (e.g. "limited", "reasonable").
	AssuranceLevel string `json:"assurance_level,omitempty"`
}

// TargetEntry is one disclosed emission reduction target.
type TargetEntry struct {
	Description  string   `json:"description"`
	TargetYear   *int     `json:"target_year,omitempty"`
	BaseYear     *int     `json:"base_year,omitempty"`
	ReductionPct *float64 `json:"reduction_pct,omitempty"`

	// Scopes the target covers.
	ScopesCovered []Scope `json:"scopes_covered,omitempty"`

	// Whether the company declares the target science-based.
	ScienceBased *bool `json:"science_based,omitempty"`

	// SBTi status as self-declared: committed, approved, none.
	SBTiStatus string `json:"sbti_status,omitempty"`

	// Interim milestones on the way to the target.
	InterimTargets []InterimTarget `json:"interim_targets,omitempty"`
}

// InterimTarget is a milestone inside a longer-dated target.
type InterimTarget struct {
	Year         *int     `json:"year,omitempty"`
	Description  string   `json:"description,omitempty"`
	ReductionPct *float64 `json:"reduction_pct,omitempty"`
}

// RiskEntry is one disclosed climate risk.
type RiskEntry struct {
	// Type is physical or transition; required.
	Type RiskType `json:"type"`

	// Category within the type (e.g. "acute_physical", "policy_legal",
	// "supply_chain").
	Category string `json:"category,omitempty"`

	Description string `json:"description"`

	// Time horizon: short, medium, long.
	TimeHorizon string `json:"time_horizon,omitempty"`

	// Qualitative impact description and quantified value when disclosed.
	FinancialImpact      string   `json:"financial_impact,omitempty"`
	FinancialImpactValue *float64 `json:"financial_impact_value,omitempty"`

	MitigationStrategy string `json:"mitigation_strategy,omitempty"`
	Likelihood         string `json:"likelihood,omitempty"`
}

// Governance describes the disclosed climate governance structure.
type Governance struct {
	BoardOversight           *bool  `json:"board_oversight,omitempty"`
	BoardClimateCommittee    *bool  `json:"board_climate_committee,omitempty"`
	ExecutiveIncentiveLinked *bool  `json:"executive_incentive_linked,omitempty"`
	ReportingFrequency       string `json:"reporting_frequency,omitempty"`
}

// Record is the structured extraction result, the shared input contract for
// all validators and adapters. Lists may be empty: absence of data is
// meaningful and is treated as "not disclosed".
type Record struct {
	CompanyName string `json:"company_name"`
	ReportYear  int    `json:"report_year"`

	// Report type: sustainability, annual, cdp.
	ReportType string `json:"report_type,omitempty"`

	// Disclosure framework tags, e.g. ["TCFD", "GRI", "CDP"].
	Frameworks []string `json:"frameworks,omitempty"`

	Sector string `json:"sector,omitempty"`

	Emissions []EmissionEntry `json:"emissions,omitempty"`
	Targets   []TargetEntry   `json:"targets,omitempty"`
	Risks     []RiskEntry     `json:"risks,omitempty"`

	Governance Governance `json:"governance"`

	// SourceReferences maps field names to the original text snippets they
	// were extracted from, for audit provenance.
	SourceReferences map[string]string `json:"source_references,omitempty"`

	// ExtractionConfidence is the upstream extractor's confidence in [0,1].
	ExtractionConfidence float64 `json:"extraction_confidence,omitempty"`
	ExtractionMethod     string  `json:"extraction_method,omitempty"`
}

// DeclaresFramework reports whether the record tags the given disclosure
// framework (case-insensitive).
func (r *Record) DeclaresFramework(name string) bool {
	for _, f := range r.Frameworks {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// ClaimsScienceBasedTarget reports whether any target is self-declared
// science-based.
func (r *Record) ClaimsScienceBasedTarget() bool {
	for _, t := range r.Targets {
		if t.ScienceBased != nil && *t.ScienceBased {
			return true
		}
	}
	return false
}

// TotalEmissions sums all disclosed absolute emission values.
// Entries without a value do not contribute.
func (r *Record) TotalEmissions() float64 {
	var total float64
	for _, e := range r.Emissions {
		if e.Value != nil {
			total += *e.Value
		}
	}
	return total
}

// ScopeValue returns the first disclosed absolute value for the scope,
// or false when the scope carries no value.
func (r *Record) ScopeValue(scope Scope) (float64, bool) {
	for _, e := range r.Emissions {
		if e.Scope == scope && e.Value != nil {
			return *e.Value, true
		}
	}
	return 0, false
}

// NarrativeText concatenates the free text of risks, targets and emissions
// into one lowercased string. The contradiction detectors and the keyword
// checks all search this text.
func (r *Record) NarrativeText() string {
	var b strings.Builder
	for _, risk := range r.Risks {
		b.WriteString(risk.Description)
		b.WriteString(" ")
	}
	for _, target := range r.Targets {
		b.WriteString(target.Description)
		b.WriteString(" ")
	}
	for _, e := range r.Emissions {
		if e.Value != nil {
			fmt.Fprintf(&b, "%s %v ", e.Scope, *e.Value)
		}
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// ProvenanceText concatenates all source reference snippets, lowercased.
// Snippets are joined in sorted key order so repeated calls on the same
// record yield the same text and the same validator results.
func (r *Record) ProvenanceText() string {
	if len(r.SourceReferences) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.SourceReferences))
	for key := range r.SourceReferences {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, r.SourceReferences[key])
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// SearchableText joins provenance snippets with the narrative text; the
// completeness validator's sector keyword checks search this.
func (r *Record) SearchableText() string {
	prov := r.ProvenanceText()
	narr := r.NarrativeText()
	if prov == "" {
		return narr
	}
	if narr == "" {
		return prov
	}
	return prov + " " + narr
}
