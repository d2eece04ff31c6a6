package groq

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/jarvis-backend/internal/ports"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	ssePrefix      = "data:"
	streamDone     = "[DONE]"
	maxStreamFrame = 1 << 20
)

var (
	ErrNoChoices  = errors.New("groq: response contained no choices")
	ErrMissingKey = errors.New("groq: API key not configured")
)

// Doer is satisfied by *http.Client and *circuitbreaker.HTTPClient.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Groq chat-completion API, which speaks the
// OpenAI wire format.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient Doer
	log        *zap.Logger
}

var _ ports.CompletionClient = (*Client)(nil)

// NewClient creates a client. httpClient is usually a
// circuitbreaker.HTTPClient; nil falls back to one without a breaker.
func NewClient(apiKey, baseURL string, httpClient Doer, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = circuitbreaker.NewHTTPClient(nil, nil, log)
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}, nil
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorEnvelope struct {
	Error *apiError `json:"error"`
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("groq: API error status %d", e.StatusCode)
	}
	return fmt.Sprintf("groq: API error status %d: %s", e.StatusCode, e.Message)
}

// Complete sends a non-streaming chat completion and returns the first
// choice's content, which may be empty.
func (c *Client) Complete(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error) {
	resp, err := c.post(ctx, buildRequest(systemPrompt, question, params, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrNoChoices
	}

	c.log.Debug("Chat completion finished",
		zap.String("model", params.Model),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return result.Choices[0].Message.Content, nil
}

// CompleteStream sends a streaming chat completion and feeds each content
// delta to onChunk as it arrives.
func (c *Client) CompleteStream(ctx context.Context, systemPrompt, question string, params ports.CompletionParams, onChunk func(string)) error {
	resp, err := c.post(ctx, buildRequest(systemPrompt, question, params, true))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamFrame)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, ssePrefix))
		if data == streamDone {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("groq: decode stream chunk: %w", err)
		}
		if chunk.Error != nil {
			return fmt.Errorf("groq: stream error: %s", chunk.Error.Message)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			onChunk(content)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("groq: read stream: %w", err)
	}
	return nil
}

func buildRequest(systemPrompt, question string, params ports.CompletionParams, stream bool) chatRequest {
	return chatRequest{
		Model: params.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
		Stream:      stream,
	}
}

// post sends body and returns the response only when the status is 200.
func (c *Client) post(ctx context.Context, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("groq: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if body.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq: send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	return resp, nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
