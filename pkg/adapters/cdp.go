package adapters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

const cdpSourceURL = "https://www.cdp.net/en/responses"

// CDP validates disclosure claims against Carbon Disclosure Project
// questionnaire exports. Lookups return up to three registry matches since
// companies submit one response per year.
type CDP struct {
	Base
}

// NewCDP creates a CDP adapter. Without WithTable it stays in no-data mode
// and the pipeline skips it.
func NewCDP(opts ...Option) *CDP {
	return &CDP{Base: newBase(cdpSourceURL, 3, opts...)}
}

// Name returns the adapter name.
func (a *CDP) Name() string { return "cdp" }

// Status reports data readiness.
func (a *CDP) Status() Status {
	return Status{Name: a.Name(), DataLoaded: a.HasData(), SourceURL: a.sourceURL}
}

// CrossValidate looks the company up in the CDP export and compares report
// year, score and sector. A claimed CDP framework with no record is a
// warning rather than critical: absence from a purchased export is weaker
// evidence than absence from the public SBTi dashboard.
func (a *CDP) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	const op = "adapters.CDP.CrossValidate"

	if err := a.requireData(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []validation.Finding
	rows := a.resolve(record.CompanyName)

	if len(rows) == 0 {
		if record.DeclaresFramework("cdp") {
			findings = append(findings, validation.Finding{
				Validator:      a.Name(),
				Code:           "CDP-001",
				Severity:       severity.Warning,
				Message:        "Company claims CDP participation but not found in CDP database",
				Recommendation: "Verify CDP submission status directly with CDP",
			})
		}
	} else {
		for _, row := range rows {
			findings = append(findings, a.compareDisclosure(record, row)...)
		}
	}

	criticals := 0
	for _, f := range findings {
		if f.Severity == severity.Critical {
			criticals++
		}
	}

	return &validation.Result{
		ValidatorName: validation.AdapterName(a.Name()),
		Score:         validation.Score(adapterScore(criticals)),
		Findings:      findings,
		Metadata:      map[string]any{"cdp_records_found": len(rows)},
	}, nil
}

func (a *CDP) compareDisclosure(record *disclosure.Record, row map[string]string) []validation.Finding {
	var findings []validation.Finding

	yearCol := a.table.ResolveColumn("year")
	if yearCol != "" && row[yearCol] != "" && record.ReportYear != 0 {
		cdpYear, err := strconv.Atoi(row[yearCol])
		if err == nil && cdpYear != record.ReportYear {
			findings = append(findings, validation.Finding{
				Validator: a.Name(),
				Code:      "CDP-002",
				Severity:  severity.Warning,
				Message: fmt.Sprintf("Report year mismatch: disclosed %d, CDP records %d",
					record.ReportYear, cdpYear),
			})
		}
	}

	scoreCol := a.table.ResolveColumn("score", "grade")
	if scoreCol != "" && row[scoreCol] != "" {
		findings = append(findings, validation.Finding{
			Validator: a.Name(),
			Code:      "CDP-003",
			Severity:  severity.Info,
			Message:   fmt.Sprintf("Company CDP %s: %s", scoreCol, row[scoreCol]),
		})
	}

	sectorCol := a.table.ResolveColumn("sector", "industry")
	if sectorCol != "" && row[sectorCol] != "" && record.Sector != "" {
		if !strings.EqualFold(row[sectorCol], record.Sector) {
			findings = append(findings, validation.Finding{
				Validator: a.Name(),
				Code:      "CDP-004",
				Severity:  severity.Info,
				Message: fmt.Sprintf("Sector difference: disclosed %s, CDP records %s",
					record.Sector, row[sectorCol]),
			})
		}
	}

	return findings
}

// Benchmark summarizes CDP data for a sector: company count and, when the
// score column is numeric, the average score.
func (a *CDP) Benchmark(sector string) map[string]any {
	if !a.HasData() {
		return map[string]any{}
	}

	rows := a.sectorRows(sector)
	benchmark := map[string]any{"total_companies": len(rows)}

	scoreCol := a.table.ResolveColumn("score", "grade", "rating")
	if scoreCol == "" {
		return benchmark
	}

	sum, n := 0.0, 0
	for _, row := range rows {
		v, err := strconv.ParseFloat(row[scoreCol], 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n > 0 {
		benchmark["average_score"] = sum / float64(n)
	}
	return benchmark
}
