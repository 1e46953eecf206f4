// Package llm standardizes stage-1 extraction records through an
// OpenAI-compatible chat-completions endpoint. The engine's records are
// complete without this stage; analysis only upgrades the label, amount
// and lawyer fields, it never subtracts what the engine found.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hkjudgments/courtextract/internal/extract"
)

const (
	// DefaultBaseURL targets DeepSeek, the endpoint the extraction corpus
	// was standardized against. Any OpenAI-compatible host works.
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"

	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 2 * time.Second
	DefaultBatchSize  = 3
	DefaultBatchDelay = 2 * time.Second

	chatCompletionsPath = "/v1/chat/completions"

	maxTokens   = 1024
	temperature = 0.3
	topP        = 0.8
)

// Config configures a Client. Zero values select defaults, except APIKey
// which is required and carries no default anywhere in the codebase.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// BatchSize and BatchDelay pace AnalyzeRecords so request bursts stay
	// under provider rate limits.
	BatchSize  int
	BatchDelay time.Duration

	Logger *slog.Logger

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the analyst model. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = DefaultBatchDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		logger:     cfg.Logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze standardizes one record.
func (c *Client) Analyze(ctx context.Context, rec extract.Record) (Analysis, error) {
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "case_number", rec.CaseNumber)
	logger.Debug("llm.analyze.start")

	content, err := c.complete(ctx, requestID, buildPrompt(rec))
	if err != nil {
		logger.Warn("llm.analyze.failed", "error", err)
		return Analysis{}, err
	}
	a, err := parseAnalysis(content)
	if err != nil {
		logger.Warn("llm.analyze.failed", "error", err)
		return Analysis{}, err
	}
	logger.Debug("llm.analyze.done",
		"case_type", a.CaseType,
		"judgment_result", a.JudgmentResult,
	)
	return a, nil
}

// AnalyzeRecords runs the analysis stage over every record. A record whose
// analysis fails keeps its stage-1 values and the run continues; only
// context cancellation stops the loop, returning what was enriched so far.
func (c *Client) AnalyzeRecords(ctx context.Context, records []extract.Record) ([]extract.Record, error) {
	out := make([]extract.Record, len(records))
	copy(out, records)

	c.logger.Info("llm.records.start", "total", len(records), "batch_size", c.batchSize)
	analyzed, failed := 0, 0
	for i, rec := range records {
		if i > 0 && i%c.batchSize == 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(c.batchDelay):
			}
		}

		a, err := c.Analyze(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			failed++
			continue
		}
		out[i] = Enrich(rec, a)
		analyzed++
	}
	c.logger.Info("llm.records.done", "analyzed", analyzed, "failed", failed)
	return out, nil
}

// complete sends one chat-completions request with bounded retries and
// returns the raw message content.
func (c *Client) complete(ctx context.Context, requestID, prompt string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		content, err := c.post(ctx, requestID, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) post(ctx context.Context, requestID string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("response carries no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
