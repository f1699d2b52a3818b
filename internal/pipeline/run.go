// Package pipeline orchestrates one end-to-end run: fetch, summarize,
// platform post generation, review, image synthesis, upload, assembly,
// and persistence. This is the composition root; all cross-component
// invariants live here.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/social-amplifier/internal/observability"
	"github.com/jonathan/social-amplifier/internal/types"
)

// Fetcher retrieves raw blog content for a URL.
type Fetcher interface {
	Article(ctx context.Context, url string) (*types.SourceDocument, error)
}

// ContentGenerator runs the language-model generation steps.
type ContentGenerator interface {
	Summarize(ctx context.Context, doc *types.SourceDocument) (string, error)
	PlatformPost(ctx context.Context, platform types.Platform, summary string) (*types.PlatformPost, error)
	Review(ctx context.Context, summary string, posts []types.PlatformPost) (string, error)
}

// ImageSynthesizer produces thumbnail image bytes for a summary.
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, summary string) (*types.GeneratedImage, error)
}

// AssetPublisher uploads image bytes to durable storage.
type AssetPublisher interface {
	Publish(ctx context.Context, img *types.GeneratedImage) (*types.ImageAsset, error)
}

// PostStore persists assembled records.
type PostStore interface {
	InsertPost(ctx context.Context, record *types.PostRecord) (string, error)
}

// Runner sequences the pipeline stages for one URL at a time. Runs are
// independent; the runner holds no mutable state between them, so one
// Runner serves concurrent requests.
type Runner struct {
	Fetcher     Fetcher
	Generator   ContentGenerator
	Synthesizer ImageSynthesizer
	Publisher   AssetPublisher
	Store       PostStore
	Verbose     bool

	now func() time.Time
}

// Result holds the outcome of a successful run.
type Result struct {
	Record     *types.PostRecord
	InsertedID string
}

// Run executes the full pipeline for one blog URL. Any stage failure
// aborts the run with a *StageError; no partial record is persisted.
// If persistence fails after the image upload succeeded, the uploaded
// asset is orphaned; the insert is never retried.
func (r *Runner) Run(ctx context.Context, url string) (*Result, error) {
	printer := observability.NewPrinter(nil)

	fmt.Printf("Stage 1/10: Fetching blog content from %s...\n", url)
	doc, err := r.Fetcher.Article(ctx, url)
	if err != nil {
		return nil, failed(StageFetch, err)
	}

	fmt.Printf("Stage 2/10: Summarizing blog content...\n")
	summary, err := r.Generator.Summarize(ctx, doc)
	if err != nil {
		return nil, failed(StageSummarize, err)
	}
	if r.Verbose {
		printer.PrintSummary(summary)
	}

	// Stages 3-5: the three platform posts depend only on the summary,
	// so they fan out and join before review. Field ordering in the
	// final document is fixed regardless of completion order.
	fmt.Printf("Stages 3-5/10: Generating LinkedIn, Instagram, and Twitter posts...\n")
	posts, err := r.generatePosts(ctx, summary)
	if err != nil {
		return nil, err
	}
	if r.Verbose {
		printer.PrintPosts(posts)
	}

	fmt.Printf("Stage 6/10: Reviewing generated posts...\n")
	review, err := r.Generator.Review(ctx, summary, posts)
	if err != nil {
		return nil, failed(StageReview, err)
	}
	if r.Verbose {
		printer.PrintReview(review)
	}

	fmt.Printf("Stage 7/10: Synthesizing thumbnail image...\n")
	img, err := r.Synthesizer.Synthesize(ctx, summary)
	if err != nil {
		return nil, failed(StageSynthesizeImage, err)
	}

	fmt.Printf("Stage 8/10: Publishing image to durable storage...\n")
	asset, err := r.Publisher.Publish(ctx, img)
	if err != nil {
		return nil, failed(StagePublishImage, err)
	}

	fmt.Printf("Stage 9/10: Assembling post record...\n")
	record, err := r.assemble(url, summary, posts, review, asset)
	if err != nil {
		return nil, failed(StageAssemble, err)
	}

	fmt.Printf("Stage 10/10: Persisting post record...\n")
	id, err := r.Store.InsertPost(ctx, record)
	if err != nil {
		return nil, failed(StagePersist, err)
	}

	fmt.Printf("Pipeline complete. Stored post %s\n", id)
	return &Result{Record: record, InsertedID: id}, nil
}

// generatePosts fans the three platform generations out on an errgroup
// and joins them in platform order.
func (r *Runner) generatePosts(ctx context.Context, summary string) ([]types.PlatformPost, error) {
	stages := map[types.Platform]Stage{
		types.PlatformLinkedIn:  StageGenerateLinkedIn,
		types.PlatformInstagram: StageGenerateInstagram,
		types.PlatformTwitter:   StageGenerateTwitter,
	}

	posts := make([]types.PlatformPost, len(types.AllPlatforms))
	g, gCtx := errgroup.WithContext(ctx)
	for i, platform := range types.AllPlatforms {
		g.Go(func() error {
			post, err := r.Generator.PlatformPost(gCtx, platform, summary)
			if err != nil {
				return failed(stages[platform], err)
			}
			posts[i] = *post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

// assemble builds the persisted record from all upstream artifacts. A
// record is only constructed once every artifact exists; validation
// here keeps partial-pipeline states unobservable in the store.
func (r *Runner) assemble(url, summary string, posts []types.PlatformPost, review string, asset *types.ImageAsset) (*types.PostRecord, error) {
	byPlatform := make(map[types.Platform]string, len(posts))
	for _, post := range posts {
		byPlatform[post.Platform] = post.Text
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}

	record := &types.PostRecord{
		URL:           url,
		Summary:       summary,
		LinkedInPost:  byPlatform[types.PlatformLinkedIn],
		InstagramPost: byPlatform[types.PlatformInstagram],
		TwitterPost:   byPlatform[types.PlatformTwitter],
		Review:        review,
		Image:         *asset,
		CreatedAt:     now().UTC(),
		Status:        types.StatusPendingReview,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
