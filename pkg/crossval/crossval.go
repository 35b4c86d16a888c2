// Package crossval compares extracted news events against the claims in a
// disclosure and reports contradictions: omissions, misrepresentations,
// timing mismatches and magnitude mismatches.
package crossval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/events"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

// Type classifies a contradiction.
type Type string

const (
	TypeOmission          Type = "omission"
	TypeMisrepresentation Type = "misrepresentation"
	TypeTimingMismatch    Type = "timing_mismatch"
	TypeMagnitudeMismatch Type = "magnitude_mismatch"
)

// Contradiction is one conflict between press coverage and the disclosure.
type Contradiction struct {
	Type              Type           `json:"contradiction_type"`
	Severity          severity.Level `json:"severity"`
	ClaimInReport     string         `json:"claim_in_report,omitempty"`
	EvidenceFromNews  string         `json:"evidence_from_news"`
	Event             events.Event   `json:"event"`
	CredibilityImpact float64        `json:"impact_on_credibility"`
	Recommendation    string         `json:"recommendation"`
}

// positiveClaimPatterns are marketing-style claims whose presence alongside
// a negative event constitutes misrepresentation.
var positiveClaimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`carbon.*neutral`),
	regexp.MustCompile(`zero.*emission`),
	regexp.MustCompile(`climate.*positive`),
	regexp.MustCompile(`sustainable.*practice`),
	regexp.MustCompile(`environmentally.*friendly`),
	regexp.MustCompile(`green.*initiative`),
	regexp.MustCompile(`clean.*energy`),
}

// negativeIndicators maps event types to the words in an event description
// that mark it as adverse.
var negativeIndicators = map[events.Type][]string{
	events.TypeFine:      {"fine", "penalty", "violation"},
	events.TypeLawsuit:   {"lawsuit", "legal", "court"},
	events.TypeViolation: {"violation", "breach", "non-compliance"},
	events.TypeAccident:  {"accident", "spill", "leak", "incident"},
}

var moneyRe = regexp.MustCompile(`(?i)\$(\d+(?:,\d{3})*(?:\.\d{2})?)\s*(?:million|bn|billion)?`)

// Detector finds contradictions between a disclosure and news events.
type Detector struct{}

// NewDetector creates a contradiction detector.
func NewDetector() *Detector { return &Detector{} }

// Detect runs all four checks and returns the combined contradictions.
func (d *Detector) Detect(record *disclosure.Record, evts []events.Event) []Contradiction {
	var out []Contradiction
	text := record.NarrativeText()

	out = append(out, d.checkOmissions(text, evts)...)
	out = append(out, d.checkMisrepresentations(text, evts)...)
	out = append(out, d.checkTimingMismatches(record, text, evts)...)
	out = append(out, d.checkMagnitudeMismatches(text, evts)...)

	return out
}

// mentioned reports whether the disclosure narrative references the event,
// either through one of its keywords or its full description.
func mentioned(text string, ev events.Event) bool {
	for _, kw := range ev.Keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return strings.Contains(text, strings.ToLower(ev.Description))
}

// checkOmissions flags enforcement events (fines, lawsuits, violations)
// absent from the disclosure narrative.
func (d *Detector) checkOmissions(text string, evts []events.Event) []Contradiction {
	var out []Contradiction

	for _, ev := range evts {
		if !ev.Type.Enforceable() || mentioned(text, ev) {
			continue
		}
		level := ev.Severity.Finding()
		out = append(out, Contradiction{
			Type:              TypeOmission,
			Severity:          level,
			EvidenceFromNews:  ev.Description,
			Event:             ev,
			CredibilityImpact: tierImpact(level, -30, -15, -5),
			Recommendation:    "Disclose all material environmental penalties and legal proceedings in the Risks section",
		})
	}
	return out
}

// checkMisrepresentations flags positive environmental claims that coexist
// with adverse events in the press. Each matching claim pattern yields one
// contradiction per event.
func (d *Detector) checkMisrepresentations(text string, evts []events.Event) []Contradiction {
	var out []Contradiction

	for _, ev := range evts {
		indicators := negativeIndicators[ev.Type]
		if len(indicators) == 0 {
			continue
		}
		description := strings.ToLower(ev.Description)

		for _, pattern := range positiveClaimPatterns {
			if !pattern.MatchString(text) {
				continue
			}
			for _, indicator := range indicators {
				if !strings.Contains(description, indicator) {
					continue
				}
				level := ev.Severity.Finding()
				out = append(out, Contradiction{
					Type:     TypeMisrepresentation,
					Severity: level,
					ClaimInReport: fmt.Sprintf("Company claims '%s' but news reports %s: %s",
						pattern.String(), ev.Type, ev.Description),
					EvidenceFromNews:  ev.Description,
					Event:             ev,
					CredibilityImpact: tierImpact(level, -30, -15, -5),
					Recommendation:    "Align environmental claims with actual performance and disclose any discrepancies",
				})
				break
			}
		}
	}
	return out
}

// checkTimingMismatches flags events dated in the report year that the
// disclosure never mentions.
func (d *Detector) checkTimingMismatches(record *disclosure.Record, text string, evts []events.Event) []Contradiction {
	var out []Contradiction

	for _, ev := range evts {
		year, ok := eventYear(ev.Date)
		if !ok || year != record.ReportYear || mentioned(text, ev) {
			continue
		}
		level := ev.Severity.Finding()
		out = append(out, Contradiction{
			Type:              TypeTimingMismatch,
			Severity:          level,
			ClaimInReport:     fmt.Sprintf("Event occurred in %d but was not disclosed", year),
			EvidenceFromNews:  fmt.Sprintf("Event reported in %s: %s", ev.Date, ev.Description),
			Event:             ev,
			CredibilityImpact: tierImpact(level, -15, -15, -5),
			Recommendation:    "Ensure timely disclosure of all material environmental events",
		})
	}
	return out
}

// checkMagnitudeMismatches compares the financial impact reported by the
// press against every dollar figure in the disclosure narrative, flagging
// figures that differ by more than half the larger amount.
func (d *Detector) checkMagnitudeMismatches(text string, evts []events.Event) []Contradiction {
	var out []Contradiction

	for _, ev := range evts {
		if ev.FinancialImpact == nil {
			continue
		}
		actual := *ev.FinancialImpact

		for _, reported := range disclosedAmounts(text) {
			if reported <= 0 {
				continue
			}
			if relativeDiff(actual, reported) <= 0.5 {
				continue
			}
			level := ev.Severity.Finding()
			out = append(out, Contradiction{
				Type:     TypeMagnitudeMismatch,
				Severity: level,
				ClaimInReport: fmt.Sprintf("Reported financial impact: $%.2f, Actual: $%.2f",
					reported, actual),
				EvidenceFromNews:  fmt.Sprintf("Financial penalty of $%.2f reported in news", actual),
				Event:             ev,
				CredibilityImpact: tierImpact(level, -20, -20, -10),
				Recommendation:    "Provide accurate quantification of financial impacts from environmental events",
			})
		}
	}
	return out
}

// disclosedAmounts extracts dollar figures from the narrative, scaled by a
// million/billion qualifier when one appears in the text.
func disclosedAmounts(text string) []float64 {
	multiplier := 1.0
	if strings.Contains(text, "billion") || strings.Contains(text, "bn") {
		multiplier = 1e9
	} else if strings.Contains(text, "million") {
		multiplier = 1e6
	}

	var amounts []float64
	for _, m := range moneyRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v*multiplier)
	}
	return amounts
}

func relativeDiff(a, b float64) float64 {
	larger := max(a, b)
	if larger == 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff / larger
}

func eventYear(date string) (int, bool) {
	parts := strings.SplitN(date, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return year, true
}

func tierImpact(level severity.Level, critical, warning, info float64) float64 {
	switch level {
	case severity.Critical:
		return critical
	case severity.Warning:
		return warning
	default:
		return info
	}
}
