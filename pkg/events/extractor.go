package events

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/llm"
	"github.com/greenlens/sdk/pkg/news"
	"github.com/greenlens/sdk/pkg/shared/severity"
)

// batchSize bounds how many articles go through one extraction pass, which
// keeps a single slow batch from starving the rest on cancellation.
const batchSize = 10

// minConfidence filters out extractions the model itself is unsure about.
const minConfidence = 0.5

const promptTemplate = `You are an environmental compliance analyst. Extract structured information about environmental/climate events from the following news article.

Company: %s
Article Title: %s
Article Date: %s
Article Content: %s

Extract the following information (return JSON only):
{
  "event_type": "fine|lawsuit|accident|regulation|violation|investigation|ngo_report|other",
  "description": "Brief description of the event",
  "date": "YYYY-MM-DD (event date, not article date)",
  "severity": "critical|high|medium|low",
  "financial_impact": 1000000.0 (in USD, null if not mentioned),
  "keywords": ["keyword1", "keyword2"],
  "confidence": 0.9 (0.0-1.0, your confidence in this extraction)
}

If the article is not about an environmental/climate event related to %s, return null.`

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// dateLayouts are the formats accepted for the model's event date, most
// common first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Extractor turns news articles into environmental events.
type Extractor struct {
	client llm.Completer
	logger core.Logger
}

// ExtractorOption configures the extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets the extractor logger.
func WithLogger(logger core.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an extractor backed by the given completion client.
func NewExtractor(client llm.Completer, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		client: client,
		logger: core.NewDefaultLogger("events", core.LogLevelInfo),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes articles in batches and returns the events whose
// extraction confidence clears the threshold. Articles that fail extraction
// are logged and skipped.
func (e *Extractor) Extract(ctx context.Context, articles []news.Article, company string) []Event {
	var all []Event

	for start := 0; start < len(articles); start += batchSize {
		end := min(start+batchSize, len(articles))
		for _, article := range articles[start:end] {
			if ctx.Err() != nil {
				return all
			}
			event, ok := e.extractOne(ctx, article, company)
			if ok && event.Confidence >= minConfidence {
				all = append(all, event)
			}
		}
	}

	return all
}

func (e *Extractor) extractOne(ctx context.Context, article news.Article, company string) (Event, bool) {
	prompt := fmt.Sprintf(promptTemplate,
		company, article.Title, article.PublishedDate, article.Snippet, company)

	response, err := e.client.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("event extraction failed for %q: %v", article.Title, err)
		return Event{}, false
	}

	event, ok := parseResponse(response)
	if !ok {
		return Event{}, false
	}
	event.SourceArticle = article
	return event, true
}

// rawEvent mirrors the model's JSON. Pointer fields distinguish absent from
// zero so required fields can be enforced.
type rawEvent struct {
	EventType       *string   `json:"event_type"`
	Description     *string   `json:"description"`
	Date            *string   `json:"date"`
	Severity        *string   `json:"severity"`
	FinancialImpact *float64  `json:"financial_impact"`
	Keywords        []string  `json:"keywords"`
	Confidence      *float64  `json:"confidence"`
}

// parseResponse extracts an event from the model's reply. The reply may be
// "null" (article not relevant), bare JSON, or JSON embedded in prose.
func parseResponse(response string) (Event, bool) {
	response = strings.TrimSpace(response)
	if response == "" || strings.EqualFold(response, "null") {
		return Event{}, false
	}

	jsonStr := jsonBlockRe.FindString(response)
	if jsonStr == "" {
		return Event{}, false
	}

	var raw rawEvent
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return Event{}, false
	}
	if raw.EventType == nil || raw.Description == nil || raw.Date == nil ||
		raw.Severity == nil || raw.Confidence == nil {
		return Event{}, false
	}

	keywords := raw.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return Event{
		Type:            TypeFromString(*raw.EventType),
		Description:     *raw.Description,
		Date:            normalizeDate(*raw.Date),
		Severity:        severity.EventFromString(*raw.Severity),
		FinancialImpact: raw.FinancialImpact,
		Keywords:        keywords,
		Confidence:      clamp(*raw.Confidence),
	}, true
}

// normalizeDate converts the model's date to YYYY-MM-DD. Unparseable dates
// pass through unchanged so downstream year checks can still skip them.
func normalizeDate(raw string) string {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return raw
}

func clamp(v float64) float64 {
	return max(0.0, min(1.0, v))
}
