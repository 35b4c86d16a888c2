// Package report renders an AggregatedResult as a markdown-style text
// report, as JSON, or as a flat table for batch comparison.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/greenlens/sdk/pkg/scoring"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

// Text renders the result as a markdown report grouping findings by
// severity.
func Text(result *scoring.AggregatedResult) string {
	var b strings.Builder

	b.WriteString("# Climate Disclosure Analysis Report\n\n")
	fmt.Fprintf(&b, "**Company**: %s\n", result.CompanyName)
	fmt.Fprintf(&b, "**Report Year**: %d\n\n", result.ReportYear)

	b.WriteString("## Overall Assessment\n")
	fmt.Fprintf(&b, "- **Score**: %.1f/100\n", result.OverallScore)
	fmt.Fprintf(&b, "- **Grade**: %s\n", result.Grade)
	fmt.Fprintf(&b, "- **Summary**: %s\n\n", result.Summary)

	b.WriteString("## Dimension Scores\n")
	for _, dim := range sortedKeys(result.DimensionScores) {
		fmt.Fprintf(&b, "- **%s**: %.1f/100\n", titleCase(dim), result.DimensionScores[dim])
	}
	b.WriteString("\n")

	b.WriteString("## Validation Findings\n")
	writeFindings(&b, "Critical Issues", filterFindings(result, severity.Critical))
	writeFindings(&b, "Warnings", filterFindings(result, severity.Warning))
	writeFindings(&b, "Informational", filterFindings(result, severity.Info))

	b.WriteString("## Cross-Validation\n")
	fmt.Fprintf(&b, "- Adapters used: %s\n", strings.Join(result.CrossValidation.AdaptersUsed, ", "))
	fmt.Fprintf(&b, "- Penalty applied: %g\n", result.CrossValidation.PenaltyApplied)

	return b.String()
}

// JSON renders the result as indented JSON.
func JSON(result *scoring.AggregatedResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// Table renders one row per result with aligned columns, for comparing
// a batch of companies side by side. Dimension columns are the union of
// all dimensions seen, sorted by name.
func Table(results ...*scoring.AggregatedResult) string {
	dimSet := map[string]bool{}
	for _, r := range results {
		for dim := range r.DimensionScores {
			dimSet[dim] = true
		}
	}
	dims := make([]string, 0, len(dimSet))
	for dim := range dimSet {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	header := []string{"Company", "Year", "Score", "Grade"}
	for _, dim := range dims {
		header = append(header, titleCase(dim))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range results {
		row := []string{
			r.CompanyName,
			fmt.Sprintf("%d", r.ReportYear),
			fmt.Sprintf("%.1f", r.OverallScore),
			r.Grade,
		}
		for _, dim := range dims {
			if score, ok := r.DimensionScores[dim]; ok {
				row = append(row, fmt.Sprintf("%.1f", score))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
	return b.String()
}

func writeFindings(b *strings.Builder, heading string, findings []validation.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s (%d)\n", heading, len(findings))
	for _, f := range findings {
		fmt.Fprintf(b, "- [%s] %s\n", f.Code, f.Message)
	}
	b.WriteString("\n")
}

func filterFindings(result *scoring.AggregatedResult, level severity.Level) []validation.Finding {
	var out []validation.Finding
	for _, f := range result.Findings() {
		if f.Severity == level {
			out = append(out, f)
		}
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleCase turns "risk_coverage" into "Risk Coverage".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
