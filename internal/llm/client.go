package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is the abstraction over model providers used by every
// generation step. Invoke returns the provider's response in one of the
// shapes understood by Content; steps normalize it themselves so stub
// clients in tests can answer in any supported shape.
type Client interface {
	// Invoke sends a fixed role instruction plus one user message and
	// returns the provider response.
	Invoke(ctx context.Context, rolePrompt, userMessage string, opts Options) (any, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &GenerationError{Step: "client", Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &GenerationError{Step: "client", Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client}, nil
}

// Invoke runs a single two-message exchange against Gemini and returns
// the answer as DirectContent.
func (c *GeminiClient) Invoke(ctx context.Context, rolePrompt, userMessage string, opts Options) (any, error) {
	model := c.client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	model.SetMaxOutputTokens(opts.MaxTokens)
	if rolePrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(rolePrompt)},
		}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return nil, &GenerationError{Step: opts.Model, Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return DirectContent{Content: text}, nil
}

// Close releases the underlying provider connection.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &GenerationError{Step: "response", Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &GenerationError{Step: "response", Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &GenerationError{Step: "response", Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
