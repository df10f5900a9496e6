package llm

import "context"

// Client is the completion interface the services depend on.
type Client interface {
	// Complete sends a system + user prompt pair and returns the
	// assistant's reply text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DefaultSystemPrompt is used when a caller passes an empty system prompt.
const DefaultSystemPrompt = "You are a helpful AI medical assistant."

// Message is one chat-completions message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat-completions request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// chatResponse is the OpenAI-compatible chat-completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}
