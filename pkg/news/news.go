// Package news retrieves press coverage about a company's environmental
// conduct. Multiple search providers are supported behind one Source
// interface, with a manager that falls back between them.
package news

import (
	"context"
	"strings"
	"time"
)

// DefaultKeywords are the environmental terms combined with the company
// name in every search query.
var DefaultKeywords = []string{
	"environment", "climate", "pollution", "emission",
	"fine", "penalty", "lawsuit", "violation",
	"regulation", "EPA", "investigation",
	"carbon", "greenhouse gas", "sustainability",
}

// DefaultMaxResults caps how many articles a search returns.
const DefaultMaxResults = 50

// Article is one news search hit.
type Article struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	PublishedDate  string  `json:"published_date"` // YYYY-MM-DD, may be empty
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Query describes one news search.
type Query struct {
	Company    string
	From       time.Time
	To         time.Time
	Keywords   []string // nil means DefaultKeywords
	MaxResults int      // 0 means DefaultMaxResults
}

func (q Query) keywords() []string {
	if len(q.Keywords) > 0 {
		return q.Keywords
	}
	return DefaultKeywords
}

func (q Query) maxResults() int {
	if q.MaxResults > 0 {
		return q.MaxResults
	}
	return DefaultMaxResults
}

// SearchTerm renders the provider query string:
// "{company}" AND (kw1 OR kw2 OR ...).
func (q Query) SearchTerm() string {
	return `"` + q.Company + `" AND (` + strings.Join(q.keywords(), " OR ") + `)`
}

// Source is a news search provider.
type Source interface {
	Name() string
	Search(ctx context.Context, query Query) ([]Article, error)
}

// withinWindow reports whether a YYYY-MM-DD date falls inside the query
// window. Articles without a parseable date are excluded.
func withinWindow(published string, q Query) bool {
	d, err := time.Parse("2006-01-02", published)
	if err != nil {
		return false
	}
	return !d.Before(q.From) && !d.After(q.To)
}

// normalizeDate converts a provider timestamp (RFC 3339, with or without Z)
// to YYYY-MM-DD. Returns "" when unparseable.
func normalizeDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return ""
}

// dedupe drops articles whose URL or title was already seen and caps the
// result at limit.
func dedupe(articles []Article, limit int) []Article {
	seenURLs := make(map[string]bool, len(articles))
	seenTitles := make(map[string]bool, len(articles))

	var unique []Article
	for _, a := range articles {
		if seenURLs[a.URL] || seenTitles[a.Title] {
			continue
		}
		seenURLs[a.URL] = true
		seenTitles[a.Title] = true
		unique = append(unique, a)
		if len(unique) >= limit {
			break
		}
	}
	return unique
}
