package news

import (
	"context"

	"github.com/greenlens/sdk/pkg/core"
	"github.com/greenlens/sdk/pkg/metrics"
)

// Manager queries a preferred source first and falls back to the remaining
// sources in registration order. Each source is tried at most once per
// search; when every source fails or returns nothing, the result is an
// empty list rather than an error so the caller can degrade gracefully.
type Manager struct {
	sources   []Source
	preferred string
	logger    core.Logger
	collector metrics.Collector
}

// ManagerOption configures the manager.
type ManagerOption func(*Manager)

// WithPreferred sets which source is tried first.
func WithPreferred(name string) ManagerOption {
	return func(m *Manager) { m.preferred = name }
}

// WithLogger sets the manager logger.
func WithLogger(logger core.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithCollector sets the metrics collector recording per-source search
// outcomes.
func WithCollector(collector metrics.Collector) ManagerOption {
	return func(m *Manager) {
		if collector != nil {
			m.collector = collector
		}
	}
}

// NewManager creates a manager over the given sources.
func NewManager(sources []Source, opts ...ManagerOption) *Manager {
	m := &Manager{
		sources:   sources,
		logger:    core.NewDefaultLogger("news", core.LogLevelInfo),
		collector: &metrics.NopCollector{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sources returns the registered source names in fallback order.
func (m *Manager) Sources() []string {
	names := make([]string, 0, len(m.sources))
	if preferred := m.findPreferred(); preferred != nil {
		names = append(names, preferred.Name())
	}
	for _, s := range m.sources {
		if s.Name() == m.preferred {
			continue
		}
		names = append(names, s.Name())
	}
	return names
}

func (m *Manager) findPreferred() Source {
	for _, s := range m.sources {
		if s.Name() == m.preferred {
			return s
		}
	}
	return nil
}

// Search runs the query against sources in fallback order and returns the
// first non-empty result.
func (m *Manager) Search(ctx context.Context, query Query) []Article {
	if preferred := m.findPreferred(); preferred != nil {
		if articles, ok := m.searchSource(ctx, preferred, query); ok {
			return articles
		}
	}

	for _, source := range m.sources {
		if source.Name() == m.preferred {
			continue
		}
		if articles, ok := m.searchSource(ctx, source, query); ok {
			return articles
		}
	}

	m.logger.Warn("all news sources exhausted for %q", query.Company)
	return []Article{}
}

// searchSource queries one source, recording the attempt outcome. The
// second return is true only for a non-empty result.
func (m *Manager) searchSource(ctx context.Context, source Source, query Query) ([]Article, bool) {
	articles, err := source.Search(ctx, query)
	if err != nil {
		m.logger.Warn("news source %s failed: %v", source.Name(), err)
		m.collector.CounterInc(metrics.NewsSearchesTotal.Name,
			"source", source.Name(), "status", "error")
		return nil, false
	}
	if len(articles) == 0 {
		m.collector.CounterInc(metrics.NewsSearchesTotal.Name,
			"source", source.Name(), "status", "empty")
		return nil, false
	}
	m.collector.CounterInc(metrics.NewsSearchesTotal.Name,
		"source", source.Name(), "status", "ok")
	return articles, true
}
