package crossval

import (
	"strings"
	"testing"

	"github.com/greenlens/sdk/pkg/shared/severity"
)

func contradiction(typ Type, level severity.Level) Contradiction {
	return Contradiction{Type: typ, Severity: level, EvidenceFromNews: "evidence"}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name           string
		contradictions []Contradiction
		totalEvents    int
		want           float64
	}{
		{"no events no contradictions", nil, 0, 100},
		{"events but clean", nil, 5, 100},
		{"one critical", []Contradiction{contradiction(TypeOmission, severity.Critical)}, 1, 70},
		{"one warning", []Contradiction{contradiction(TypeOmission, severity.Warning)}, 1, 85},
		{"one info", []Contradiction{contradiction(TypeTimingMismatch, severity.Info)}, 1, 95},
		{
			"mixed",
			[]Contradiction{
				contradiction(TypeOmission, severity.Critical),
				contradiction(TypeMisrepresentation, severity.Warning),
				contradiction(TypeTimingMismatch, severity.Info),
			},
			3,
			50,
		},
		{
			"floor at zero",
			[]Contradiction{
				contradiction(TypeOmission, severity.Critical),
				contradiction(TypeOmission, severity.Critical),
				contradiction(TypeOmission, severity.Critical),
				contradiction(TypeOmission, severity.Critical),
			},
			4,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.contradictions, tt.totalEvents); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89.9, "Good"},
		{70, "Good"},
		{69, "Fair"},
		{50, "Fair"},
		{49, "Poor"},
		{30, "Poor"},
		{29, "Very Poor"},
		{0, "Very Poor"},
	}
	for _, tt := range tests {
		if got := Rating(tt.score); got != tt.want {
			t.Errorf("Rating(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFeedback(t *testing.T) {
	if got := Feedback(nil); !strings.Contains(got, "No credibility issues") {
		t.Errorf("clean feedback = %q", got)
	}

	got := Feedback([]Contradiction{
		contradiction(TypeOmission, severity.Critical),
		contradiction(TypeMagnitudeMismatch, severity.Warning),
	})
	if !strings.Contains(got, "1 critical issue(s)") {
		t.Errorf("feedback = %q, want critical count", got)
	}
	if !strings.Contains(got, "material environmental events") {
		t.Errorf("feedback = %q, want omission recommendation", got)
	}
	if !strings.Contains(got, "accurate quantification") {
		t.Errorf("feedback = %q, want magnitude recommendation", got)
	}
}
