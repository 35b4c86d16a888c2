// Package llm provides a minimal client for OpenAI-compatible chat
// completion endpoints, used for event extraction from news articles.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/greenlens/sdk/pkg/errors"
)

// Defaults for extraction calls. Low temperature keeps the structured
// output stable across runs.
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 1000
	DefaultTimeout     = 60 * time.Second
)

// Config configures the client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client calls a chat completion endpoint with bearer authentication.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewClient creates a chat completion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.E("llm.NewClient", errors.KindInvalidInput, "llm api key not set")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})
	httpClient := oauth2.NewClient(context.Background(), source)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  httpClient,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single-turn user prompt and returns the model's reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "llm.Client.Complete"

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", errors.E(op, errors.KindInternal, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.E(op, errors.KindInternal, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.E(op, errors.KindNetwork, "call completion endpoint", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.E(op, errors.KindNetwork, "read response", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errors.E(op, errors.KindRateLimit, "completion endpoint rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.E(op, errors.KindNetwork, "completion endpoint returned "+resp.Status)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.E(op, errors.KindMalformed, "decode response", err)
	}
	if parsed.Error != nil {
		return "", errors.E(op, errors.KindInternal, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.E(op, errors.KindMalformed, "completion response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// Completer is the interface the event extractor depends on, satisfied by
// Client and by test fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
