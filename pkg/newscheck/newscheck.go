// Package newscheck cross-references a disclosure against press coverage.
// It chains news search, LLM event extraction, contradiction detection and
// credibility scoring into one registry adapter, with optional caching of
// the expensive external calls.
package newscheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/greenlens/sdk/pkg/cache"
	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/crossval"
	"github.com/greenlens/sdk/pkg/disclosure"
	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/events"
	"github.com/greenlens/sdk/pkg/metrics"
	"github.com/greenlens/sdk/pkg/news"
	"github.com/greenlens/sdk/pkg/shared/fingerprint"
	"github.com/greenlens/sdk/pkg/validation"
)

// Name is the adapter name, reported as "adapter:news" in results.
const Name = "news"

// Searcher is the news retrieval dependency, satisfied by *news.Manager.
type Searcher interface {
	Search(ctx context.Context, query news.Query) []news.Article
	Sources() []string
}

// EventExtractor is the extraction dependency, satisfied by
// *events.Extractor.
type EventExtractor interface {
	Extract(ctx context.Context, articles []news.Article, company string) []events.Event
}

// Adapter runs the news cross-referencing pass.
type Adapter struct {
	searcher   Searcher
	extractor  EventExtractor
	detector   *crossval.Detector
	store      *cache.Store
	keywords   []string
	maxResults int
	logger     core.Logger
	collector  metrics.Collector
}

// Option configures the adapter.
type Option func(*Adapter)

// WithCache enables caching of search results and extractions.
func WithCache(store *cache.Store) Option {
	return func(a *Adapter) { a.store = store }
}

// WithKeywords overrides the default search keyword list.
func WithKeywords(keywords []string) Option {
	return func(a *Adapter) {
		if len(keywords) > 0 {
			a.keywords = keywords
		}
	}
}

// WithMaxResults caps the number of articles fetched per evaluation.
func WithMaxResults(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxResults = n
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger core.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// WithMetrics sets the metrics collector recording contradiction counts and
// cache hit rates.
func WithMetrics(collector metrics.Collector) Option {
	return func(a *Adapter) {
		if collector != nil {
			a.collector = collector
		}
	}
}

// New creates the news adapter. searcher may be nil when no news source is
// configured; the adapter then reports no-data and the pipeline skips it.
func New(searcher Searcher, extractor EventExtractor, opts ...Option) *Adapter {
	a := &Adapter{
		searcher:  searcher,
		extractor: extractor,
		detector:  crossval.NewDetector(),
		logger:    core.NewDefaultLogger("newscheck", core.LogLevelInfo),
		collector: &metrics.NopCollector{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return Name }

// CrossValidate searches coverage for the report year, extracts events,
// detects contradictions and converts the credibility score to [0,1].
// Source and extraction failures degrade to fewer inputs rather than an
// error: no coverage at all yields a clean full-score result.
func (a *Adapter) CrossValidate(ctx context.Context, record *disclosure.Record) (*validation.Result, error) {
	const op = "newscheck.Adapter.CrossValidate"

	if a.searcher == nil || a.extractor == nil {
		return nil, errors.NoData(op, "no news source or extractor configured")
	}
	if record.ReportYear == 0 {
		return nil, errors.E(op, errors.KindInvalidInput, "record has no report year")
	}

	query := news.Query{
		Company:    record.CompanyName,
		From:       time.Date(record.ReportYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(record.ReportYear, time.December, 31, 0, 0, 0, 0, time.UTC),
		Keywords:   a.keywords,
		MaxResults: a.maxResults,
	}

	articles := a.searchWithCache(ctx, record, query)
	evts := a.extractWithCache(ctx, record, articles)
	contradictions := a.detector.Detect(record, evts)
	credibility := crossval.Score(contradictions, len(evts))

	findings := make([]validation.Finding, 0, len(contradictions))
	for _, c := range contradictions {
		a.collector.CounterInc(metrics.ContradictionsTotal.Name, "type", string(c.Type))
		findings = append(findings, validation.Finding{
			Validator:      Name,
			Code:           "NEWS-" + strings.ToUpper(string(c.Type)),
			Severity:       c.Severity,
			Message:        fmt.Sprintf("%s: %s", c.Type, c.EvidenceFromNews),
			Field:          "credibility",
			Evidence:       c.Event.SourceArticle.URL,
			Recommendation: c.Recommendation,
		})
	}

	return &validation.Result{
		ValidatorName: validation.AdapterName(Name),
		Score:         validation.Score(credibility / 100.0),
		Findings:      findings,
		Metadata: map[string]any{
			"news_articles_found":  len(articles),
			"events_extracted":     len(evts),
			"contradictions_found": len(contradictions),
			"report_period": fmt.Sprintf("%d-01-01 to %d-12-31",
				record.ReportYear, record.ReportYear),
			"data_sources_used":  a.searcher.Sources(),
			"credibility_score":  credibility,
			"credibility_rating": crossval.Rating(credibility),
			"feedback":           crossval.Feedback(contradictions),
		},
	}, nil
}

func (a *Adapter) searchKey(record *disclosure.Record) string {
	provider := ""
	if sources := a.searcher.Sources(); len(sources) > 0 {
		provider = sources[0]
	}
	keywords := a.keywords
	if len(keywords) == 0 {
		keywords = news.DefaultKeywords
	}
	return fingerprint.Search(record.CompanyName, record.ReportYear, provider, keywords)
}

// searchWithCache returns cached search results when present, otherwise
// queries the sources and caches the outcome. Non-empty results only: an
// empty result is never cached so a transient outage does not stick.
func (a *Adapter) searchWithCache(ctx context.Context, record *disclosure.Record, query news.Query) []news.Article {
	if a.store == nil {
		return a.searcher.Search(ctx, query)
	}

	key := a.searchKey(record)
	if payload, ok, err := a.store.Get(ctx, cache.KindSearch, key); err == nil && ok {
		var articles []news.Article
		if err := json.Unmarshal(payload, &articles); err == nil {
			a.logger.Debug("search cache hit for %q", record.CompanyName)
			a.collector.CounterInc(metrics.CacheHitsTotal.Name, "kind", cache.KindSearch)
			return articles
		}
	}
	a.collector.CounterInc(metrics.CacheMissesTotal.Name, "kind", cache.KindSearch)

	articles := a.searcher.Search(ctx, query)
	if len(articles) > 0 {
		if payload, err := json.Marshal(articles); err == nil {
			if err := a.store.Put(ctx, cache.KindSearch, key, payload); err != nil {
				a.logger.Warn("search cache write failed: %v", err)
			}
		}
	}
	return articles
}

// extractWithCache returns cached extractions for the same search key,
// otherwise runs the LLM extraction and caches the events.
func (a *Adapter) extractWithCache(ctx context.Context, record *disclosure.Record, articles []news.Article) []events.Event {
	if len(articles) == 0 {
		return nil
	}
	if a.store == nil {
		return a.extractor.Extract(ctx, articles, record.CompanyName)
	}

	key := a.searchKey(record)
	if payload, ok, err := a.store.Get(ctx, cache.KindExtraction, key); err == nil && ok {
		var evts []events.Event
		if err := json.Unmarshal(payload, &evts); err == nil {
			a.logger.Debug("extraction cache hit for %q", record.CompanyName)
			a.collector.CounterInc(metrics.CacheHitsTotal.Name, "kind", cache.KindExtraction)
			return evts
		}
	}
	a.collector.CounterInc(metrics.CacheMissesTotal.Name, "kind", cache.KindExtraction)

	evts := a.extractor.Extract(ctx, articles, record.CompanyName)
	if len(evts) > 0 {
		if payload, err := json.Marshal(evts); err == nil {
			if err := a.store.Put(ctx, cache.KindExtraction, key, payload); err != nil {
				a.logger.Warn("extraction cache write failed: %v", err)
			}
		}
	}
	return evts
}
