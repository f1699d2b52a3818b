package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/social-amplifier/internal/assets"
	"github.com/jonathan/social-amplifier/internal/config"
	"github.com/jonathan/social-amplifier/internal/db"
	"github.com/jonathan/social-amplifier/internal/fetch"
	"github.com/jonathan/social-amplifier/internal/image"
	"github.com/jonathan/social-amplifier/internal/llm"
	"github.com/jonathan/social-amplifier/internal/observability"
	"github.com/jonathan/social-amplifier/internal/pipeline"
	"github.com/jonathan/social-amplifier/internal/social"
)

var (
	runVerbose    bool
	runUseBrowser bool
)

var runCmd = &cobra.Command{
	Use:   "run <blog-url>",
	Short: "Run the pipeline once for a blog URL",
	Long:  `Fetch a blog, generate the three platform posts, review them, synthesize and upload a thumbnail, and store the assembled record.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Print generated artifacts")
	runCmd.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Render JavaScript-heavy blogs in a headless browser")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.FromEnv()
	cfg.Verbose = cfg.Verbose || runVerbose
	cfg.UseBrowser = cfg.UseBrowser || runUseBrowser
	if err := cfg.Validate(); err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(ctx) }()

	llmClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	synthesizer, err := image.NewSynthesizer(image.Config{
		BaseURL: cfg.ImageBaseURL,
		APIKey:  cfg.ImageAPIKey,
		Model:   cfg.ImageModel,
	})
	if err != nil {
		return fmt.Errorf("failed to create image synthesizer: %w", err)
	}

	publisher, err := assets.NewPublisher(assets.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	})
	if err != nil {
		return fmt.Errorf("failed to create asset publisher: %w", err)
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = cfg.UseBrowser
	fetchOpts.Verbose = cfg.Verbose

	runner := &pipeline.Runner{
		Fetcher:     fetch.NewClient(fetchOpts),
		Generator:   social.NewGenerator(llmClient, llm.DefaultOptions().WithModel(cfg.GeminiModel)),
		Synthesizer: synthesizer,
		Publisher:   publisher,
		Store:       database,
		Verbose:     cfg.Verbose,
	}

	result, err := runner.Run(ctx, args[0])
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintAsset(&result.Record.Image)
	fmt.Printf("Stored post %s\n", result.InsertedID)
	return nil
}
