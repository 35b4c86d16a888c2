// Package fingerprint provides unified fingerprint generation for
// deduplication of news articles and cache lookups across SDK and Backend.
//
// IMPORTANT: This package is shared between greenlens-sdk and greenlens-api.
// Any changes to fingerprint algorithms must be backward compatible
// or coordinated across both projects.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Type represents what kind of object the fingerprint identifies.
type Type string

const (
	// TypeArticle identifies a single news article (URL + title dedupe key).
	TypeArticle Type = "article"

	// TypeSearch identifies a news search (company + year + provider + keywords),
	// used as the cache key for search results.
	TypeSearch Type = "search"

	// TypeExtraction identifies an extraction run over one article,
	// used as the cache key for extraction output.
	TypeExtraction Type = "extraction"
)

// Input contains the data needed to generate a fingerprint.
// Only the fields relevant to the fingerprint type are used.
type Input struct {
	Type Type

	// Article fields
	URL   string
	Title string

	// Search fields
	Company  string
	Year     int
	Provider string
	Keywords []string
}

// Generate creates a deterministic sha256 fingerprint for the input.
func Generate(in Input) string {
	var parts []string

	switch in.Type {
	case TypeArticle:
		parts = []string{string(TypeArticle), normalize(in.URL), normalize(in.Title)}
	case TypeSearch:
		kws := make([]string, len(in.Keywords))
		for i, kw := range in.Keywords {
			kws[i] = normalize(kw)
		}
		sort.Strings(kws)
		parts = []string{
			string(TypeSearch),
			normalize(in.Company),
			fmt.Sprintf("%d", in.Year),
			normalize(in.Provider),
			strings.Join(kws, ","),
		}
	case TypeExtraction:
		parts = []string{string(TypeExtraction), normalize(in.Company), normalize(in.URL), normalize(in.Title)}
	default:
		parts = []string{normalize(in.URL), normalize(in.Title), normalize(in.Company)}
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Article is a convenience wrapper for article dedupe keys.
func Article(url, title string) string {
	return Generate(Input{Type: TypeArticle, URL: url, Title: title})
}

// Search is a convenience wrapper for search cache keys.
func Search(company string, year int, provider string, keywords []string) string {
	return Generate(Input{Type: TypeSearch, Company: company, Year: year, Provider: provider, Keywords: keywords})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
