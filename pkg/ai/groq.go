package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

const defaultGroqBaseURL = "https://api.groq.com"

// GroqClient is a minimal client for Groq's OpenAI-compatible chat endpoint
type GroqClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ ChatCompleter = (*GroqClient)(nil)

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	base := defaultGroqBaseURL
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
		if cfg.BaseURL != "" {
			base = strings.TrimRight(cfg.BaseURL, "/")
		}
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{},
	}
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation to Groq and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{Provider: "groq", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var cr groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("groq: %w", ErrEmptyCompletion)
	}
	return cr.Choices[0].Message.Content, nil
}
