// Package llm provides the language-model client abstraction shared by
// every generation step, plus the response normalization applied to all
// of them.
package llm

import "time"

// DefaultModel is the model used when no override is configured.
const DefaultModel = "gemini-2.5-flash"

// Options holds the per-invocation model parameters. Every generation
// step in the current design uses identical values; they are kept
// per-step so an individual step can be tuned later without touching
// the others.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
}

// DefaultOptions returns the parameters shared by all generation steps.
func DefaultOptions() Options {
	return Options{
		Model:       DefaultModel,
		Temperature: 0.5,
		MaxTokens:   3000,
		Timeout:     30 * time.Second,
	}
}

// WithModel returns a copy of o using a different model name.
// An empty name leaves the options unchanged.
func (o Options) WithModel(model string) Options {
	if model != "" {
		o.Model = model
	}
	return o
}
