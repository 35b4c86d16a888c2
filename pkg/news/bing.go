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

const bingBaseURL = "https://api.bing.microsoft.com/v7.0/news/search"

// Bing searches news through the Bing News Search API. Bing only accepts a
// lower bound ("since"), so the upper end of the window is enforced
// client-side.
type Bing struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBing creates a Bing news source.
func NewBing(apiKey string) (*Bing, error) {
	if apiKey == "" {
		return nil, errors.E("news.NewBing", errors.KindInvalidInput, "bing api key not set")
	}
	return &Bing{
		apiKey:  apiKey,
		baseURL: bingBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}, nil
}

// Name returns the source name.
func (b *Bing) Name() string { return "bing" }

type bingResponse struct {
	Value []struct {
		Name          string `json:"name"`
		URL           string `json:"url"`
		Description   string `json:"description"`
		DatePublished string `json:"datePublished"`
		Provider      []struct {
			Name string `json:"name"`
		} `json:"provider"`
	} `json:"value"`
}

// Search queries Bing and filters results to the query window.
func (b *Bing) Search(ctx context.Context, query Query) ([]Article, error) {
	const op = "news.Bing.Search"

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query.SearchTerm())
	params.Set("count", strconv.Itoa(min(query.maxResults(), 100)))
	params.Set("offset", "0")
	params.Set("mkt", "en-US")
	params.Set("since", strconv.FormatInt(query.From.Unix(), 10))
	params.Set("sortBy", "Date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.E(op, errors.KindInternal, "build request", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, "query bing news", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.E(op, errors.KindRateLimit, "bing news rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.E(op, errors.KindNetwork, "bing news returned "+resp.Status)
	}

	var body bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.E(op, errors.KindMalformed, "decode bing response", err)
	}

	var articles []Article
	for _, item := range body.Value {
		published := normalizeDate(item.DatePublished)
		if published == "" || !withinWindow(published, query) {
			continue
		}
		source := "Unknown"
		if len(item.Provider) > 0 && item.Provider[0].Name != "" {
			source = item.Provider[0].Name
		}
		articles = append(articles, Article{
			Title:         item.Name,
			URL:           item.URL,
			Source:        source,
			PublishedDate: published,
			Snippet:       item.Description,
		})
	}

	return dedupe(articles, query.maxResults()), nil
}
