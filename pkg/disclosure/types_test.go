package disclosure

import (
	"strings"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestRecord_TotalEmissions(t *testing.T) {
	rec := Record{
		Emissions: []EmissionEntry{
			{Scope: Scope1, Value: fptr(100)},
			{Scope: Scope2, Value: fptr(50)},
			{Scope: Scope3}, // not disclosed, must not count as zero or anything else
		},
	}
	if got := rec.TotalEmissions(); got != 150 {
		t.Errorf("TotalEmissions() = %v, want 150", got)
	}
}

func TestRecord_ScopeValue(t *testing.T) {
	rec := Record{
		Emissions: []EmissionEntry{
			{Scope: Scope1, Value: fptr(100)},
			{Scope: Scope3},
		},
	}
	if v, ok := rec.ScopeValue(Scope1); !ok || v != 100 {
		t.Errorf("ScopeValue(Scope1) = %v, %v", v, ok)
	}
	if _, ok := rec.ScopeValue(Scope3); ok {
		t.Error("scope 3 without value should report not disclosed")
	}
	if _, ok := rec.ScopeValue(Scope2); ok {
		t.Error("absent scope should report not disclosed")
	}
}

func TestRecord_DeclaresFramework(t *testing.T) {
	rec := Record{Frameworks: []string{"TCFD", "CDP"}}
	if !rec.DeclaresFramework("cdp") {
		t.Error("framework match should be case-insensitive")
	}
	if rec.DeclaresFramework("GRI") {
		t.Error("GRI is not declared")
	}
}

func TestRecord_ClaimsScienceBasedTarget(t *testing.T) {
	rec := Record{Targets: []TargetEntry{{Description: "net zero"}}}
	if rec.ClaimsScienceBasedTarget() {
		t.Error("no science-based flag set")
	}
	rec.Targets = append(rec.Targets, TargetEntry{Description: "SBTi 1.5C", ScienceBased: bptr(true)})
	if !rec.ClaimsScienceBasedTarget() {
		t.Error("science-based flag set on second target")
	}
}

func TestRecord_NarrativeText(t *testing.T) {
	rec := Record{
		Risks:   []RiskEntry{{Type: RiskPhysical, Description: "Flooding at coastal plants"}},
		Targets: []TargetEntry{{Description: "Net Zero by 2050"}},
		Emissions: []EmissionEntry{
			{Scope: Scope1, Value: fptr(120.5)},
			{Scope: Scope2},
		},
	}
	text := rec.NarrativeText()
	for _, want := range []string{"flooding at coastal plants", "net zero by 2050", "scope_1 120.5"} {
		if !strings.Contains(text, want) {
			t.Errorf("NarrativeText() missing %q: %q", want, text)
		}
	}
	if strings.Contains(text, "scope_2") {
		t.Error("undisclosed emission value should not appear in narrative")
	}
}

func TestRecord_ProvenanceText_DeterministicOrder(t *testing.T) {
	// Snippets join in sorted key order. A fresh map per run re-randomizes
	// iteration order, so any order dependence would surface here.
	for i := 0; i < 100; i++ {
		rec := Record{SourceReferences: map[string]string{
			"b": "expenditure of $2bn",
			"a": "capital",
			"c": "across three regions",
		}}
		want := "capital expenditure of $2bn across three regions"
		if got := rec.ProvenanceText(); got != want {
			t.Fatalf("run %d: ProvenanceText() = %q, want %q", i, got, want)
		}
	}
}

func TestRecord_SearchableText(t *testing.T) {
	rec := Record{
		SourceReferences: map[string]string{"strategy": "Scenario analysis was CONDUCTED"},
		Risks:            []RiskEntry{{Type: RiskTransition, Description: "Carbon pricing"}},
	}
	text := rec.SearchableText()
	if !strings.Contains(text, "scenario analysis was conducted") {
		t.Errorf("provenance missing from searchable text: %q", text)
	}
	if !strings.Contains(text, "carbon pricing") {
		t.Errorf("narrative missing from searchable text: %q", text)
	}

	empty := Record{}
	if empty.SearchableText() != "" {
		t.Error("empty record should produce empty searchable text")
	}
}
