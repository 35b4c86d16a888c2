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

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPI searches news through the newsapi.org everything endpoint, which
// supports server-side date filtering.
type NewsAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewNewsAPI creates a newsapi.org source.
func NewNewsAPI(apiKey string) (*NewsAPI, error) {
	if apiKey == "" {
		return nil, errors.E("news.NewNewsAPI", errors.KindInvalidInput, "newsapi api key not set")
	}
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}, nil
}

// Name returns the source name.
func (n *NewsAPI) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// Search queries newsapi.org with the window passed as from/to parameters.
func (n *NewsAPI) Search(ctx context.Context, query Query) ([]Article, error) {
	const op = "news.NewsAPI.Search"

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageSize := min(query.maxResults(), 100)

	params := url.Values{}
	params.Set("q", query.SearchTerm())
	params.Set("from", query.From.Format("2006-01-02"))
	params.Set("to", query.To.Format("2006-01-02"))
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", "1")
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.E(op, errors.KindInternal, "build request", err)
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, "query newsapi", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.E(op, errors.KindRateLimit, "newsapi rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.E(op, errors.KindNetwork, "newsapi returned "+resp.Status)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.E(op, errors.KindMalformed, "decode newsapi response", err)
	}

	var articles []Article
	for _, item := range body.Articles {
		source := item.Source.Name
		if source == "" {
			source = "Unknown"
		}
		snippet := item.Description
		if snippet == "" {
			snippet = item.Content
			if len(snippet) > 200 {
				snippet = snippet[:200]
			}
		}
		articles = append(articles, Article{
			Title:         item.Title,
			URL:           item.URL,
			Source:        source,
			PublishedDate: normalizeDate(item.PublishedAt),
			Snippet:       snippet,
		})
	}

	return dedupe(articles, query.maxResults()), nil
}
