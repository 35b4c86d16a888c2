package completeness

import (
	"math"
	"testing"

	"github.com/greenlens/sdk/pkg/disclosure"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

func TestValidate_EmptyRecordScoresZero(t *testing.T) {
	result, err := New().Validate(&disclosure.Record{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if *result.Score != 0.0 {
		t.Errorf("score = %v, want 0.0", *result.Score)
	}
	if len(result.Findings) != 11 {
		t.Errorf("findings = %d, want 11 (one per checklist item)", len(result.Findings))
	}
}

func TestValidate_PartialCoverage(t *testing.T) {
	record := &disclosure.Record{
		Governance: disclosure.Governance{
			BoardOversight:     bptr(true),
			ReportingFrequency: "quarterly",
		},
		Risks: []disclosure.RiskEntry{
			{
				Type:               disclosure.RiskPhysical,
				Category:           "acute_physical",
				Description:        "Flooding; also an opportunity in adaptation services",
				MitigationStrategy: "relocation plan",
			},
		},
		Emissions: []disclosure.EmissionEntry{
			{Scope: disclosure.Scope1, Value: fptr(100), BaselineYear: iptr(2019)},
		},
		Targets: []disclosure.TargetEntry{{Description: "30% by 2030"}},
		SourceReferences: map[string]string{
			"strategy": "We conducted scenario analysis and assessed strategy resilience.",
		},
	}

	result, _ := New().Validate(record)
	if math.Abs(*result.Score-1.0) > 1e-9 {
		t.Errorf("score = %v, want 1.0 (all 11 items covered)", *result.Score)
	}
	if len(result.Findings) != 0 {
		t.Errorf("findings = %+v, want none", result.Findings)
	}
}

func TestValidate_SectorCoverageIsInformationalOnly(t *testing.T) {
	base := disclosure.Record{
		Risks: []disclosure.RiskEntry{{Type: disclosure.RiskTransition, Description: "Carbon pricing and water usage risk"}},
	}

	withSector := base
	withSector.Sector = "oil_gas"

	noSector, _ := New().Validate(&base)
	sectored, _ := New().Validate(&withSector)

	if *noSector.Score != *sectored.Score {
		t.Errorf("sector coverage must not affect score: %v vs %v", *noSector.Score, *sectored.Score)
	}
	if _, ok := noSector.Metadata["sector_coverage"]; ok {
		t.Error("no sector, no sector_coverage metadata")
	}
	coverage, ok := sectored.Metadata["sector_coverage"].(map[string]bool)
	if !ok {
		t.Fatal("sector_coverage metadata missing for known sector")
	}
	if !coverage["water_management"] {
		t.Error("water usage mention should cover water_management")
	}
	if coverage["reserves_valuation"] {
		t.Error("reserves_valuation is not mentioned")
	}
}

func TestValidate_UnknownSector(t *testing.T) {
	record := &disclosure.Record{Sector: "interpretive_dance"}
	result, _ := New().Validate(record)
	coverage, ok := result.Metadata["sector_coverage"].(map[string]bool)
	if !ok {
		t.Fatal("sector_coverage metadata should exist even for unknown sectors")
	}
	if len(coverage) != 0 {
		t.Errorf("unknown sector coverage = %+v, want empty", coverage)
	}
}
