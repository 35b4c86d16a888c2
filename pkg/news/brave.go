package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/greenlens/sdk/pkg/errors"
)

const braveBaseURL = "https://api.search.brave.com/res/v1/news/search"

// Brave searches news through the Brave Search API. Brave has no date range
// parameter beyond freshness, so the query window is enforced client-side.
type Brave struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBrave creates a Brave news source.
func NewBrave(apiKey string) (*Brave, error) {
	if apiKey == "" {
		return nil, errors.E("news.NewBrave", errors.KindInvalidInput, "brave api key not set")
	}
	return &Brave{
		apiKey:  apiKey,
		baseURL: braveBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}, nil
}

// Name returns the source name.
func (b *Brave) Name() string { return "brave" }

type braveResponse struct {
	News []struct {
		Title          string  `json:"title"`
		URL            string  `json:"url"`
		Source         string  `json:"source"`
		Published      string  `json:"published"`
		Description    string  `json:"description"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"news"`
}

// Search queries Brave and filters results to the query window.
func (b *Brave) Search(ctx context.Context, query Query) ([]Article, error) {
	const op = "news.Brave.Search"

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query.SearchTerm())
	params.Set("count", strconv.Itoa(query.maxResults()))
	params.Set("freshness", "pd365")
	params.Set("country", "us")
	params.Set("search_lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.E(op, errors.KindInternal, "build request", err)
	}
	req.Header.Set("X-Subscription-Token", b.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, "query brave search", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.E(op, errors.KindRateLimit, "brave search rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.E(op, errors.KindNetwork, "brave search returned "+resp.Status)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.E(op, errors.KindMalformed, "decode brave response", err)
	}

	var articles []Article
	for _, item := range body.News {
		published := normalizeDate(item.Published)
		if published == "" || !withinWindow(published, query) {
			continue
		}
		source := item.Source
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, Article{
			Title:          item.Title,
			URL:            item.URL,
			Source:         source,
			PublishedDate:  published,
			Snippet:        item.Description,
			RelevanceScore: item.RelevanceScore,
		})
	}

	return dedupe(articles, query.maxResults()), nil
}
