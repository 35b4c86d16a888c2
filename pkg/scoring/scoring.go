// Package scoring aggregates per-validator results into a single graded
// score. Internal validator scores are combined by configurable weights;
// adapter results contribute a penalty instead of a base score.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/shared/severity"
	"github.com/greenlens/sdk/pkg/validation"
)

// DefaultWeights are the dimension weights used when none are configured.
// They sum to 1.0 so a perfect record scores exactly 100.
var DefaultWeights = map[string]float64{
	"consistency":    0.25,
	"quantification": 0.30,
	"completeness":   0.25,
	"risk_coverage":  0.20,
}

// criticalPenalty is deducted per critical finding from adapter results.
const criticalPenalty = 5.0

// gradeBand maps a score threshold to a letter grade.
type gradeBand struct {
	threshold float64
	grade     string
}

var gradeBands = []gradeBand{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
	{0, "F"},
}

// CrossValidation summarizes the external adapter contribution.
type CrossValidation struct {
	AdaptersUsed   []string `json:"adapters_used"`
	PenaltyApplied float64  `json:"penalty_applied"`
}

// AggregatedResult is the final output of one evaluation. It is created
// once per run and never mutated afterward.
type AggregatedResult struct {
	CompanyName string `json:"company_name"`
	ReportYear  int    `json:"report_year"`

	// OverallScore in [0,100], rounded to one decimal.
	OverallScore float64 `json:"overall_score"`

	Grade string `json:"grade"`

	// DimensionScores maps validator name to its score on the 0-100 scale.
	DimensionScores map[string]float64 `json:"dimension_scores"`

	Results []*validation.Result `json:"validation_results"`

	CrossValidation CrossValidation `json:"cross_validation"`

	Summary string `json:"summary"`
}

// Findings returns all findings across every result, in result order.
func (r *AggregatedResult) Findings() []validation.Finding {
	var out []validation.Finding
	for _, res := range r.Results {
		out = append(out, res.Findings...)
	}
	return out
}

// CountBySeverity returns the total finding count at the given severity.
func (r *AggregatedResult) CountBySeverity(level severity.Level) int {
	n := 0
	for _, res := range r.Results {
		n += res.CountBySeverity(level)
	}
	return n
}

// Scorer combines dimension scores and adapter penalties.
type Scorer struct {
	weights map[string]float64
}

// Option configures the scorer.
type Option func(*Scorer)

// WithWeights replaces the default dimension weights. Dimensions missing
// from the map contribute nothing to the overall score.
func WithWeights(weights map[string]float64) Option {
	return func(s *Scorer) {
		if len(weights) > 0 {
			s.weights = weights
		}
	}
}

// NewScorer creates a scorer with the default weights.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate folds the results for one record into an AggregatedResult.
// Nil-score results are excluded from the dimension map; a weighted
// dimension with no result scores zero. Adapter results (name prefixed
// with "adapter:") never enter the base score and instead deduct 5 points
// per critical finding, with the overall score floored at 0.
func (s *Scorer) Aggregate(record *disclosure.Record, results []*validation.Result) *AggregatedResult {
	dimensions := map[string]float64{}
	var adapters []string
	penalty := 0.0

	for _, res := range results {
		if strings.HasPrefix(res.ValidatorName, validation.AdapterPrefix) {
			adapters = append(adapters, res.ValidatorName)
			penalty += criticalPenalty * float64(res.CountBySeverity(severity.Critical))
			continue
		}
		if res.Score != nil {
			dimensions[res.ValidatorName] = *res.Score
		}
	}

	// Weights are summed in sorted order and the total rounded to one
	// decimal before grading, so repeated runs over the same record grade
	// identically regardless of float accumulation order.
	dims := make([]string, 0, len(s.weights))
	for dim := range s.weights {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	overall := 0.0
	for _, dim := range dims {
		overall += dimensions[dim] * s.weights[dim]
	}
	overall = round1(max(overall*100-penalty, 0))

	scaled := make(map[string]float64, len(dimensions))
	for name, score := range dimensions {
		scaled[name] = round1(score * 100)
	}

	return &AggregatedResult{
		CompanyName:     record.CompanyName,
		ReportYear:      record.ReportYear,
		OverallScore:    overall,
		Grade:           gradeFor(overall),
		DimensionScores: scaled,
		Results:         results,
		CrossValidation: CrossValidation{
			AdaptersUsed:   adapters,
			PenaltyApplied: penalty,
		},
		Summary: summarize(record, overall, gradeFor(overall), scaled),
	}
}

func gradeFor(overall float64) string {
	for _, band := range gradeBands {
		if overall >= band.threshold {
			return band.grade
		}
	}
	return "F"
}

// summarize names the weakest dimension. Ties break alphabetically so the
// summary is deterministic.
func summarize(record *disclosure.Record, overall float64, grade string, dims map[string]float64) string {
	weakest := "N/A"
	if len(dims) > 0 {
		names := make([]string, 0, len(dims))
		for name := range dims {
			names = append(names, name)
		}
		sort.Strings(names)
		weakest = names[0]
		for _, name := range names[1:] {
			if dims[name] < dims[weakest] {
				weakest = name
			}
		}
	}
	return fmt.Sprintf("%s (%d) scores %.0f/100 (Grade %s). Weakest dimension: %s.",
		record.CompanyName, record.ReportYear, overall, grade, weakest)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
