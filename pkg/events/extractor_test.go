package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/llm"
	"github.com/greenlens/sdk/pkg/news"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		return "null", nil
	}
	resp := s.responses[s.calls]
	s.calls++
	if resp == "ERROR" {
		return "", fmt.Errorf("model unavailable")
	}
	return resp, nil
}

const fineJSON = `{
  "event_type": "fine",
  "description": "EPA fined Acme $5M for emissions violations",
  "date": "2024-03-15",
  "severity": "high",
  "financial_impact": 5000000.0,
  "keywords": ["fine", "EPA", "emissions"],
  "confidence": 0.9
}`

func articles(n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			Title:         fmt.Sprintf("Article %d", i),
			URL:           fmt.Sprintf("https://example.com/%d", i),
			PublishedDate: "2024-03-16",
			Snippet:       "regulatory action against Acme",
		}
	}
	return out
}

func newTestExtractor(c llm.Completer) *Extractor {
	return NewExtractor(c, WithLogger(&core.NopLogger{}))
}

func TestExtract_WellFormedResponse(t *testing.T) {
	e := newTestExtractor(&scriptedCompleter{responses: []string{fineJSON}})

	got := e.Extract(context.Background(), articles(1), "Acme")
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	ev := got[0]
	if ev.Type != TypeFine {
		t.Errorf("type = %q, want fine", ev.Type)
	}
	if ev.Severity != severity.EventHigh {
		t.Errorf("severity = %q, want high", ev.Severity)
	}
	if ev.FinancialImpact == nil || *ev.FinancialImpact != 5e6 {
		t.Errorf("financial impact = %v", ev.FinancialImpact)
	}
	if ev.SourceArticle.URL != "https://example.com/0" {
		t.Error("source article not attached")
	}
}

func TestExtract_NullAndErrorsSkipped(t *testing.T) {
	e := newTestExtractor(&scriptedCompleter{responses: []string{"null", "ERROR", fineJSON}})

	got := e.Extract(context.Background(), articles(3), "Acme")
	if len(got) != 1 {
		t.Errorf("events = %d, want 1 (null and error skipped)", len(got))
	}
}

func TestExtract_LowConfidenceFiltered(t *testing.T) {
	low := `{"event_type":"other","description":"vague","date":"2024-01-01","severity":"low","confidence":0.3}`
	e := newTestExtractor(&scriptedCompleter{responses: []string{low}})

	if got := e.Extract(context.Background(), articles(1), "Acme"); len(got) != 0 {
		t.Errorf("events = %+v, want none below confidence threshold", got)
	}
}

func TestParseResponse_JSONEmbeddedInProse(t *testing.T) {
	response := "Here is the extraction you asked for:\n" + fineJSON + "\nLet me know if you need more."

	ev, ok := parseResponse(response)
	if !ok {
		t.Fatal("embedded JSON should parse")
	}
	if ev.Type != TypeFine {
		t.Errorf("type = %q", ev.Type)
	}
}

func TestParseResponse_MissingRequiredField(t *testing.T) {
	noDate := `{"event_type":"fine","description":"d","severity":"high","confidence":0.9}`
	if _, ok := parseResponse(noDate); ok {
		t.Error("missing date must be rejected")
	}
}

func TestParseResponse_InvalidEnumsDefaulted(t *testing.T) {
	response := `{"event_type":"scandal","description":"d","date":"2024-01-01","severity":"catastrophic","confidence":0.8}`

	ev, ok := parseResponse(response)
	if !ok {
		t.Fatal("parse failed")
	}
	if ev.Type != TypeOther {
		t.Errorf("type = %q, want other", ev.Type)
	}
	if ev.Severity != severity.EventMedium {
		t.Errorf("severity = %q, want medium", ev.Severity)
	}
}

func TestParseResponse_ConfidenceClamped(t *testing.T) {
	response := `{"event_type":"fine","description":"d","date":"2024-01-01","severity":"low","confidence":3.5}`
	ev, _ := parseResponse(response)
	if ev.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", ev.Confidence)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024-03-15T10:00:00Z", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"15/03/2024", "2024-03-15"},
		{"March 15, 2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"mid-2024", "mid-2024"}, // passes through
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.raw); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTypeFromString(t *testing.T) {
	if TypeFromString("lawsuit") != TypeLawsuit {
		t.Error("lawsuit should parse")
	}
	if TypeFromString("bogus") != TypeOther {
		t.Error("unknown types default to other")
	}
}

func TestEnforceable(t *testing.T) {
	for _, typ := range []Type{TypeFine, TypeLawsuit, TypeViolation} {
		if !typ.Enforceable() {
			t.Errorf("%s should be enforceable", typ)
		}
	}
	for _, typ := range []Type{TypeAccident, TypeRegulation, TypeInvestigation, TypeNGOReport, TypeOther} {
		if typ.Enforceable() {
			t.Errorf("%s should not be enforceable", typ)
		}
	}
}
