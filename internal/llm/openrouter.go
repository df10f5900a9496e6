package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 10 * 1024 * 1024

// OpenRouterConfig holds the OpenRouter connection settings.
type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
	SiteName string // sent as X-Title, optional
}

// DefaultOpenRouterConfig returns sensible defaults around an API key.
func DefaultOpenRouterConfig(apiKey string) OpenRouterConfig {
	return OpenRouterConfig{
		APIKey:  apiKey,
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/gpt-4o-mini",
		Timeout: 60 * time.Second,
	}
}

// OpenRouterClient implements Client against the OpenRouter
// (OpenAI-compatible) chat-completions API.
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	model      string
	siteName   string
	maxRetries int
	httpClient *http.Client
}

// NewOpenRouterClient creates a client from config, filling empty fields
// from the defaults.
func NewOpenRouterClient(config OpenRouterConfig) *OpenRouterClient {
	defaults := DefaultOpenRouterConfig(config.APIKey)
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	return &OpenRouterClient{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		model:      config.Model,
		siteName:   config.SiteName,
		maxRetries: 3,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Model returns the configured model identifier.
func (c *OpenRouterClient) Model() string {
	return c.model
}

// Complete sends one system + user exchange and returns the reply text.
// Rate limits (429) and transport errors are retried with exponential
// backoff; other API failures return immediately.
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openrouter: API key not configured")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openrouter: marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("openrouter: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		if c.siteName != "" {
			req.Header.Set("X-Title", c.siteName)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("openrouter: request failed: %w", err)
			continue
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("openrouter: read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("openrouter: rate limit exceeded (429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("openrouter: status %d: %s", resp.StatusCode, string(body))
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("openrouter: parse response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("openrouter: API error: %s", parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("openrouter: no completion returned")
		}
		return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("openrouter: max retries exceeded: %w", lastErr)
}
