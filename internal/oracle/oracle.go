// Package oracle calls an LLM chat-completions endpoint to disambiguate an
// AMBIGUOUS row: given the row's original cell text and a short candidate
// list, the oracle returns at most one chosen name. The engine never requires
// the oracle; every failure leaves the record's status unchanged.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 15 * time.Second

// ErrUnavailable indicates the oracle could not be reached or answered with
// an error. Non-fatal: the caller reports it and moves on.
var ErrUnavailable = errors.New("oracle unavailable")

// ErrInvalidAnswer indicates the oracle named a file outside the candidate
// list. That is a contract violation and must be reported, never silently
// accepted.
var ErrInvalidAnswer = errors.New("oracle answer not in candidates")

// Config captures the runtime settings required to talk to the oracle.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps a chat-completions style API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an oracle client from configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://openrouter.ai/api/v1/chat/completions"
	}
	return client
}

const systemPrompt = `You match a free-text reference from a spreadsheet cell against a short list of file names.
Pick the single file name the reference most plausibly refers to.
If none is a plausible match, pick none.
Respond with JSON only: {"choice": "<exact file name from the list, or empty string>"}`

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
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

// Choose asks the oracle to pick one candidate name for the given cell text.
// The empty string with a nil error means the oracle declined to choose. A
// returned name outside candidates yields ErrInvalidAnswer.
func (c *Client) Choose(ctx context.Context, content string, candidates []string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: api key required", ErrUnavailable)
	}
	if len(candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Reference:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nCandidates:\n")
	for _, name := range candidates {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}

	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: sb.String()},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	raw, err := c.complete(ctx, payload)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Choice string `json:"choice"`
	}
	if err := decodeJSONPayload(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parse answer: %v", ErrUnavailable, err)
	}
	choice := strings.TrimSpace(parsed.Choice)
	if choice == "" {
		return "", nil
	}
	for _, name := range candidates {
		if name == choice {
			return choice, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnswer, choice)
}

func (c *Client) complete(ctx context.Context, payload chatRequest) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("oracle request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("oracle request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("%w: api error: %s", ErrUnavailable, strings.TrimSpace(completion.Error.Message))
	}
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
	}
	return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
}

// decodeJSONPayload tolerates code fences and prose around the JSON object.
func decodeJSONPayload(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return errors.New("no JSON object in payload")
	}
	return json.Unmarshal([]byte(trimmed[start:end+1]), target)
}
