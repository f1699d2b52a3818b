// Package social implements the generation steps that turn a fetched
// blog into a summary, three platform-tailored posts, and a review.
// Every step is the same two-message exchange (fixed role prompt plus
// one user message) differing only in prompt text.
package social

import (
	"context"
	"strings"

	"github.com/jonathan/social-amplifier/internal/llm"
	"github.com/jonathan/social-amplifier/internal/prompts"
	"github.com/jonathan/social-amplifier/internal/types"
)

const promptFile = "social.json"

// Generator runs the content generation steps against an LLM client.
// All steps share one set of model options.
type Generator struct {
	client llm.Client
	opts   llm.Options
}

// NewGenerator creates a Generator. Zero-valued options fall back to the
// shared defaults.
func NewGenerator(client llm.Client, opts llm.Options) *Generator {
	if opts == (llm.Options{}) {
		opts = llm.DefaultOptions()
	} else if opts.Model == "" {
		opts.Model = llm.DefaultModel
	}
	return &Generator{client: client, opts: opts}
}

// Summarize condenses fetched blog content into a summary. It refuses
// to run on empty content.
func (g *Generator) Summarize(ctx context.Context, doc *types.SourceDocument) (string, error) {
	if doc == nil || strings.TrimSpace(doc.RawContent) == "" {
		return "", &llm.GenerationError{Step: "summarize", Message: "no content to summarize"}
	}

	user := prompts.Format(prompts.MustGet(promptFile, "summarize-user"), map[string]string{
		"Content": doc.RawContent,
	})
	return g.run(ctx, "summarize", prompts.MustGet(promptFile, "summarize-role"), user)
}

// PlatformPost generates one post tailored to the given platform from
// the summary.
func (g *Generator) PlatformPost(ctx context.Context, platform types.Platform, summary string) (*types.PlatformPost, error) {
	if !platform.Valid() {
		return nil, &llm.GenerationError{Step: string(platform), Message: "unknown platform"}
	}

	role := prompts.MustGet(promptFile, string(platform)+"-role")
	user := prompts.Format(prompts.MustGet(promptFile, string(platform)+"-user"), map[string]string{
		"Summary": summary,
	})

	text, err := g.run(ctx, string(platform), role, user)
	if err != nil {
		return nil, err
	}
	return &types.PlatformPost{Platform: platform, Text: text}, nil
}

// Review critiques the three platform posts against the summary. The
// review is advisory; callers persist it as-is without branching on its
// outcome.
func (g *Generator) Review(ctx context.Context, summary string, posts []types.PlatformPost) (string, error) {
	data := map[string]string{"Summary": summary}
	for _, post := range posts {
		switch post.Platform {
		case types.PlatformLinkedIn:
			data["LinkedIn"] = post.Text
		case types.PlatformInstagram:
			data["Instagram"] = post.Text
		case types.PlatformTwitter:
			data["Twitter"] = post.Text
		}
	}

	user := prompts.Format(prompts.MustGet(promptFile, "review-user"), data)
	return g.run(ctx, "review", prompts.MustGet(promptFile, "review-role"), user)
}

// run invokes the client and normalizes the response to text. An empty
// result after normalization is a generation failure.
func (g *Generator) run(ctx context.Context, step, role, user string) (string, error) {
	result, err := g.client.Invoke(ctx, role, user, g.opts)
	if err != nil {
		return "", err
	}

	text := llm.Text(result)
	if strings.TrimSpace(text) == "" {
		return "", &llm.GenerationError{Step: step, Message: "empty response after normalization"}
	}
	return text, nil
}
