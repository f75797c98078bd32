package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func unpacedClient(baseURL string) *Client {
	c := NewClient(Config{APIKey: "test-key", BaseURL: baseURL})
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestGenerateReturnsText(t *testing.T) {
	var gotReq messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{
				{Type: "text", Text: `{"strategy": "Go running back."`},
				{Type: "text", Text: `, "recommendations": []}`},
			},
		})
	}))
	defer server.Close()

	client := unpacedClient(server.URL)
	text, err := client.Generate(context.Background(), "who should I draft?", 1024, 0.7)

	require.NoError(t, err)
	assert.Equal(t, `{"strategy": "Go running back.", "recommendations": []}`, text)
	assert.Equal(t, defaultModel, gotReq.Model)
	assert.Equal(t, 1024, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "who should I draft?", gotReq.Messages[0].Content)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := unpacedClient(server.URL)
	_, err := client.Generate(context.Background(), "prompt", 256, 0.5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API credentials")
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer server.Close()

	client := unpacedClient(server.URL)
	_, err := client.Generate(context.Background(), "prompt", 256, 0.5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text")
}

func TestGenerateDeniedWhenPacingExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: "ok"}},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, RequestsPerMinute: 60})

	_, err := client.Generate(context.Background(), "first", 256, 0.5)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "second", 256, 0.5)
	require.Error(t, err, "burst of one, the second immediate call must be denied")
	assert.Contains(t, err.Error(), "rate limit")
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "overloaded"}}`))
	}))
	defer server.Close()

	client := unpacedClient(server.URL)
	assert.True(t, client.Healthy())

	for i := 0; i < 4; i++ {
		_, err := client.Generate(context.Background(), "prompt", 256, 0.5)
		require.Error(t, err)
	}

	assert.False(t, client.Healthy())
	_, err := client.Generate(context.Background(), "prompt", 256, 0.5)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 4, requests, "an open breaker sheds requests before they reach the API")
}
