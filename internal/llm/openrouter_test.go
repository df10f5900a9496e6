package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) *OpenRouterClient {
	client := NewOpenRouterClient(OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "openai/gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
	client.maxRetries = 1
	return client
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestOpenRouterClient_Complete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(completionBody("  The patient is stable.  ")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reply, err := client.Complete(context.Background(), "", "How is the patient?")

	assert.NoError(t, err)
	assert.Equal(t, "The patient is stable.", reply, "reply should be trimmed")
	assert.Equal(t, "Bearer test-key", gotAuth)
	if assert.Len(t, gotReq.Messages, 2) {
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, DefaultSystemPrompt, gotReq.Messages[0].Content, "empty system prompt falls back to default")
		assert.Equal(t, "user", gotReq.Messages[1].Role)
	}
}

func TestOpenRouterClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reply, err := client.Complete(context.Background(), "sys", "user")

	assert.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenRouterClient_APIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "sys", "user")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestOpenRouterClient_NonOKStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`bad request`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "sys", "user")

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx other than 429 should not be retried")
}

func TestOpenRouterClient_MissingAPIKey(t *testing.T) {
	client := NewOpenRouterClient(OpenRouterConfig{})
	_, err := client.Complete(context.Background(), "sys", "user")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestOpenRouterClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "sys", "user")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no completion returned")
}
