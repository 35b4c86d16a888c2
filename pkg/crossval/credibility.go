package crossval

import (
	"fmt"
	"strings"

	"github.com/greenlens/sdk/pkg/shared/severity"
)

// Per-contradiction deductions from the 100-point credibility baseline.
const (
	criticalDeduction = 30
	warningDeduction  = 15
	infoDeduction     = 5
)

// Score computes the 0-100 credibility score. Each contradiction deducts
// by severity; the floor is 0. A company with no extracted events and no
// contradictions keeps the full score, since absence of coverage is not
// evidence of concealment.
func Score(contradictions []Contradiction, totalEvents int) float64 {
	if totalEvents == 0 && len(contradictions) == 0 {
		return 100.0
	}

	score := 100.0
	for _, c := range contradictions {
		switch c.Severity {
		case severity.Critical:
			score -= criticalDeduction
		case severity.Warning:
			score -= warningDeduction
		case severity.Info:
			score -= infoDeduction
		}
	}
	return max(score, 0.0)
}

// Rating maps a credibility score to a qualitative band.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 30:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// Feedback summarizes the contradictions and the remediation they call for.
func Feedback(contradictions []Contradiction) string {
	if len(contradictions) == 0 {
		return "No credibility issues detected. The company's disclosures align well with publicly reported environmental events."
	}

	var criticals, warnings, infos int
	types := map[Type]bool{}
	for _, c := range contradictions {
		switch c.Severity {
		case severity.Critical:
			criticals++
		case severity.Warning:
			warnings++
		case severity.Info:
			infos++
		}
		types[c.Type] = true
	}

	var parts []string
	if criticals > 0 {
		parts = append(parts, fmt.Sprintf("%d critical issue(s) found that significantly impact credibility.", criticals))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s) indicating potential credibility concerns.", warnings))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d informational item(s) noted.", infos))
	}

	if types[TypeOmission] {
		parts = append(parts, "Recommendation: Ensure all material environmental events are disclosed in reports.")
	}
	if types[TypeMisrepresentation] {
		parts = append(parts, "Recommendation: Align environmental claims with actual performance data.")
	}
	if types[TypeMagnitudeMismatch] {
		parts = append(parts, "Recommendation: Provide accurate quantification of environmental impacts.")
	}

	return strings.Join(parts, " ")
}
