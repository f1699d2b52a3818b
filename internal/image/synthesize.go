// Package image synthesizes a thumbnail for a blog summary via an
// image-generation REST backend.
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/social-amplifier/internal/prompts"
	"github.com/jonathan/social-amplifier/internal/types"
)

// DefaultBaseURL is the image backend endpoint used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is the image model requested per generation.
const DefaultModel = "gpt-image-1"

// DefaultTimeout bounds one synthesis call; image backends are slow.
const DefaultTimeout = 120 * time.Second

// Synthesizer generates thumbnail images from blog summaries.
type Synthesizer struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Config holds the image backend settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewSynthesizer creates a Synthesizer for the configured backend.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, &GenerationError{Message: "API key is required"}
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

	return &Synthesizer{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// generationRequest is the backend request body.
type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
}

// generationResponse is the backend response body. Image payloads are
// transported base64-encoded.
type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Synthesize builds the thumbnail prompt around the summary, requests
// one image, decodes the first base64 payload, and tags the bytes with
// a fresh id. Zero returned payloads is an explicit failure, never a
// dangling reference.
func (s *Synthesizer) Synthesize(ctx context.Context, summary string) (*types.GeneratedImage, error) {
	prompt := prompts.Format(prompts.MustGet("image.json", "thumbnail"), map[string]string{
		"Summary": summary,
	})

	body, err := json.Marshal(generationRequest{Model: s.model, Prompt: prompt, N: 1})
	if err != nil {
		return nil, &GenerationError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, &GenerationError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &GenerationError{Message: "image backend request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Message: "failed to read backend response", Cause: err}
	}

	var parsed generationResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GenerationError{Message: "failed to parse backend response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("image backend returned HTTP %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg += ": " + parsed.Error.Message
		}
		return nil, &GenerationError{Message: msg}
	}

	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return nil, &GenerationError{Message: "backend produced no image"}
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return nil, &GenerationError{Message: "failed to decode image payload", Cause: err}
	}

	return &types.GeneratedImage{ID: uuid.New(), Bytes: raw}, nil
}
