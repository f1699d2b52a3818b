package fetch

import (
	"context"

	"github.com/jonathan/social-amplifier/internal/types"
)

// Client binds fetch options so callers can retrieve articles through a
// single-method collaborator.
type Client struct {
	opts *Options
}

// NewClient creates a Client; nil options use defaults.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Client{opts: opts}
}

// Article fetches and extracts the blog at url.
func (c *Client) Article(ctx context.Context, url string) (*types.SourceDocument, error) {
	return Article(ctx, url, c.opts)
}
