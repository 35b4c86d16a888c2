// Package events extracts structured environmental events from news
// articles using an LLM and normalizes the model's output.
package events

import (
	"github.com/greenlens/sdk/pkg/news"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

// Type classifies an environmental event.
type Type string

const (
	TypeFine          Type = "fine"
	TypeLawsuit       Type = "lawsuit"
	TypeAccident      Type = "accident"
	TypeRegulation    Type = "regulation"
	TypeViolation     Type = "violation"
	TypeInvestigation Type = "investigation"
	TypeNGOReport     Type = "ngo_report"
	TypeOther         Type = "other"
)

// TypeFromString parses an event type. Unknown values become TypeOther.
func TypeFromString(s string) Type {
	switch Type(s) {
	case TypeFine, TypeLawsuit, TypeAccident, TypeRegulation,
		TypeViolation, TypeInvestigation, TypeNGOReport, TypeOther:
		return Type(s)
	default:
		return TypeOther
	}
}

// Enforceable reports whether the event type represents a penalty or legal
// action, the classes that must appear in a disclosure's risk section.
func (t Type) Enforceable() bool {
	return t == TypeFine || t == TypeLawsuit || t == TypeViolation
}

// Event is one environmental event extracted from press coverage.
type Event struct {
	Type            Type                `json:"event_type"`
	Description     string              `json:"description"`
	Date            string              `json:"date"` // YYYY-MM-DD
	Severity        severity.EventLevel `json:"severity"`
	FinancialImpact *float64            `json:"financial_impact,omitempty"`
	SourceArticle   news.Article        `json:"source_article"`
	Keywords        []string            `json:"keywords"`
	Confidence      float64             `json:"confidence"`
}
