// Package genai provides the adapter for the external generative model.
// It speaks the generateContent JSON protocol: one prompt plus a strict
// response schema in, one JSON document out. Truncated or non-conforming
// responses are surfaced as errors; there is no partial recovery.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rosterforge/rostergen/pkg/respschema"
)

// Sentinel errors for the two ways a call can "succeed" at the HTTP layer
// and still be unusable.
var (
	// ErrTruncated means the model stopped before completing the document
	// (output-size ceiling reached). The whole unit must be regenerated or
	// failed; the partial document is never used.
	ErrTruncated = errors.New("generation truncated before completion")

	// ErrEmptyResponse means the call returned no usable candidate text.
	ErrEmptyResponse = errors.New("generation returned no content")
)

// Client calls the generative model over HTTP.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	model           string
	temperature     float64
	maxOutputTokens int
}

// Config configures the client.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// NewClient creates a generative model client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

// Wire types for the generateContent protocol.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64            `json:"temperature"`
	ResponseMIMEType string             `json:"responseMimeType"`
	ResponseSchema   *respschema.Schema `json:"responseSchema,omitempty"`
	MaxOutputTokens  int                `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// finishStop is the only finish reason that marks a complete document.
const finishStop = "STOP"

// Generate sends one prompt with its output schema and returns the raw
// JSON document produced by the model.
func (c *Client) Generate(ctx context.Context, prompt string, schema *respschema.Schema) ([]byte, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
			MaxOutputTokens:  c.maxOutputTokens,
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gr.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}
	cand := gr.Candidates[0]
	if cand.FinishReason != finishStop {
		return nil, fmt.Errorf("%w (finish reason %s)", ErrTruncated, cand.FinishReason)
	}
	if len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		return nil, ErrEmptyResponse
	}

	doc := cand.Content.Parts[0].Text
	if !json.Valid([]byte(doc)) {
		return nil, fmt.Errorf("model returned malformed JSON document")
	}
	return []byte(doc), nil
}

// APIError represents an error status from the model API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generation api error %d: %s", e.StatusCode, e.Message)
}

// IsQuota returns true if the error is a quota/rate rejection.
func IsQuota(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusTooManyRequests
	}
	return false
}
