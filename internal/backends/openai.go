package backends

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

const fallbackSystemPrompt = "You are a helpful chemistry assistant. Answer concisely and accurately."

// ChatMessage is one turn in an OpenAI-compatible conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-compatible completion request body.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatResponse is the subset of the completion response the gateway reads.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int         `json:"index"`
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// CompletionClient answers questions through an OpenAI-compatible
// chat completions endpoint. It is the gateway's fallback when no
// specialised backend matches or the matched one fails.
type CompletionClient struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      logging.Logger
}

// CompletionConfig carries the settings for NewCompletionClient.
type CompletionConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// NewCompletionClient builds the fallback client. BaseURL and Model are
// required; the API key may be empty for keyless proxies.
func NewCompletionClient(cfg CompletionConfig, logger logging.Logger) (*CompletionClient, error) {
	if cfg.BaseURL == "" {
		return nil, apperrors.New(apperrors.CodeInvalidConfig, "completion base URL is required")
	}
	if cfg.Model == "" {
		return nil, apperrors.New(apperrors.CodeInvalidConfig, "completion model is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CompletionClient{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger.Named("completion"),
	}, nil
}

// Complete sends the question as a single user turn and returns the first
// choice's content.
func (c *CompletionClient) Complete(ctx context.Context, question string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: fallbackSystemPrompt},
			{Role: "user", Content: question},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "create completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeFallbackFailure, "completion request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeFallbackFailure, "read completion response")
	}

	c.logger.Debug("completion call",
		logging.String("model", c.model),
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Newf(apperrors.CodeFallbackFailure,
			"completion returned %d: %s", resp.StatusCode, truncate(respBody, 256))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeFallbackFailure, "decode completion response")
	}
	if chatResp.Error != nil {
		return "", apperrors.Newf(apperrors.CodeFallbackFailure,
			"completion error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", apperrors.New(apperrors.CodeFallbackFailure, "completion returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
