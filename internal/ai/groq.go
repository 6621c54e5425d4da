package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vibedj/internal/shared"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama3-70b-8192"

	generateTimeout = 45 * time.Second
)

// GroqClient implements [Generator] against the Groq OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqClient creates a Groq client. The API key is required; the model
// defaults to llama3-70b-8192 when empty.
func NewGroqClient(apiKey, model string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: groq api key", shared.ErrMissingCredentials)
	}
	if model == "" {
		model = defaultGroqModel
	}

	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: groqBaseURL,
		httpClient: &http.Client{
			Timeout: generateTimeout,
		},
	}, nil
}

func (g *GroqClient) Name() string {
	return "Groq"
}

// Generate sends a single-turn chat completion request and returns the first choice's text.
func (g *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: groq status %d: %s", shared.ErrAPIRequest, resp.StatusCode, string(body))
	}

	var data struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(data.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", shared.ErrGenerationFailed)
	}

	return data.Choices[0].Message.Content, nil
}
