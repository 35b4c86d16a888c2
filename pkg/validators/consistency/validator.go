// Package consistency checks the internal consistency of a disclosure:
// whether commitments, data and narrative line up with each other.
package consistency

import (
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const Name = "consistency"

// Rule is one consistency check. Condition decides whether the rule applies
// to the record at all; Check decides whether an applicable rule passes.
// Rules that never apply do not penalize the score.
type Rule struct {
	Code      string
	RuleName  string
	Severity  severity.Level
	Message   string
	Condition func(*disclosure.Record) bool
	Check     func(*disclosure.Record) bool
}

// Validator evaluates the fixed, ordered rule set.
type Validator struct {
	rules []Rule
}

// New creates a consistency validator with the default rule set.
func New() *Validator {
	return &Validator{rules: defaultRules()}
}

// NewWithRules creates a validator over a custom rule set, in evaluation order.
func NewWithRules(rules []Rule) *Validator {
	return &Validator{rules: rules}
}

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate evaluates every applicable rule. Score is the fraction of
// applicable rules that passed; 1.0 when no rule applies.
func (v *Validator) Validate(record *disclosure.Record) (*validation.Result, error) {
	var findings []validation.Finding
	applicable, passed := 0, 0

	for _, rule := range v.rules {
		if !rule.Condition(record) {
			continue
		}
		applicable++
		if rule.Check(record) {
			passed++
			continue
		}
		findings = append(findings, validation.Finding{
			Validator: Name,
			Code:      rule.Code,
			Severity:  rule.Severity,
			Message:   rule.Message,
		})
	}

	score := 1.0
	if applicable > 0 {
		score = float64(passed) / float64(applicable)
	}

	return &validation.Result{
		ValidatorName: Name,
		Score:         validation.Score(score),
		Findings:      findings,
		Metadata: map[string]any{
			"rules_applicable": applicable,
			"rules_passed":     passed,
		},
	}, nil
}

func defaultRules() []Rule {
	return []Rule{
		{
			Code:      "CONSIST-001",
			RuleName:  "net_zero_pathway",
			Severity:  severity.Critical,
			Message:   "Net Zero target declared but no interim milestones found",
			Condition: hasNetZeroTarget,
			Check:     netZeroHasMilestones,
		},
		{
			Code:      "CONSIST-002",
			RuleName:  "scope3_materiality",
			Severity:  severity.Warning,
			Message:   "Scope 3 appears material (>40% of total) but no supply chain risk disclosed",
			Condition: scope3Material,
			Check:     hasSupplyChainRisk,
		},
		{
			Code:      "CONSIST-003",
			RuleName:  "target_timeline_logic",
			Severity:  severity.Warning,
			Message:   "Target timeline inconsistency: target year should be after base year",
			Condition: func(r *disclosure.Record) bool { return len(r.Targets) > 1 },
			Check:     timelinesMonotonic,
		},
		{
			Code:      "CONSIST-004",
			RuleName:  "investment_specificity",
			Severity:  severity.Info,
			Message:   "Climate investment amount mentioned without specific project breakdown",
			Condition: mentionsClimateInvestment,
			Check:     hasSpecificProjects,
		},
		{
			Code:      "CONSIST-005",
			RuleName:  "governance_action_gap",
			Severity:  severity.Warning,
			Message:   "Board oversight claimed but executive incentive linkage not specified",
			Condition: func(r *disclosure.Record) bool {
				return r.Governance.BoardOversight != nil && *r.Governance.BoardOversight
			},
			Check: func(r *disclosure.Record) bool {
				return r.Governance.ExecutiveIncentiveLinked != nil
			},
		},
	}
}

func hasNetZeroTarget(r *disclosure.Record) bool {
	for _, t := range r.Targets {
		if strings.Contains(strings.ToLower(t.Description), "net zero") {
			return true
		}
	}
	return false
}

func netZeroHasMilestones(r *disclosure.Record) bool {
	for _, t := range r.Targets {
		if strings.Contains(strings.ToLower(t.Description), "net zero") && len(t.InterimTargets) > 0 {
			return true
		}
	}
	return false
}

// scope3Material reports whether disclosed Scope 3 emissions exceed 40% of
// the disclosed total. Undisclosed values do not count toward either side.
func scope3Material(r *disclosure.Record) bool {
	total := r.TotalEmissions()
	scope3, ok := r.ScopeValue(disclosure.Scope3)
	return ok && scope3 > 0 && total > 0 && scope3/total > 0.4
}

var supplyChainCategories = []string{"supply_chain", "value_chain", "upstream", "downstream"}

func hasSupplyChainRisk(r *disclosure.Record) bool {
	for _, risk := range r.Risks {
		for _, cat := range supplyChainCategories {
			if risk.Category == cat {
				return true
			}
		}
	}
	return false
}

func timelinesMonotonic(r *disclosure.Record) bool {
	for _, t := range r.Targets {
		if t.TargetYear != nil && t.BaseYear != nil && *t.TargetYear <= *t.BaseYear {
			return false
		}
	}
	return true
}

var investmentKeywords = []string{"investment", "investing", "capital expenditure", "capex", "funding"}

func mentionsClimateInvestment(r *disclosure.Record) bool {
	return containsAny(r.ProvenanceText(), investmentKeywords)
}

var projectKeywords = []string{"project", "initiative", "technology", "program", "solution"}

func hasSpecificProjects(r *disclosure.Record) bool {
	return containsAny(r.ProvenanceText(), projectKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
