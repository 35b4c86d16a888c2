package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenlens/sdk/pkg/errors"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("missing api key should error")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := newTestClient(t, "")
	if client.Model() != DefaultModel {
		t.Errorf("Model() = %q, want default", client.Model())
	}
}

func TestComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "extracted"}},
			},
		})
	})

	client := newTestClient(t, server.URL)
	got, err := client.Complete(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "extracted" {
		t.Errorf("Complete() = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "analyze this" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	client := newTestClient(t, server.URL)
	_, err := client.Complete(context.Background(), "prompt")
	if errors.GetKind(err) != errors.KindRateLimit {
		t.Errorf("kind = %v, want rate limit", errors.GetKind(err))
	}
}

func TestComplete_APIError(t *testing.T) {
	server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "model overloaded"},
		})
	})

	client := newTestClient(t, server.URL)
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Error("api error object should surface as error")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	server := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	client := newTestClient(t, server.URL)
	_, err := client.Complete(context.Background(), "prompt")
	if errors.GetKind(err) != errors.KindMalformed {
		t.Errorf("kind = %v, want malformed", errors.GetKind(err))
	}
}
