package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/social-amplifier/internal/assets"
	"github.com/jonathan/social-amplifier/internal/config"
	"github.com/jonathan/social-amplifier/internal/db"
	"github.com/jonathan/social-amplifier/internal/fetch"
	"github.com/jonathan/social-amplifier/internal/image"
	"github.com/jonathan/social-amplifier/internal/llm"
	"github.com/jonathan/social-amplifier/internal/pipeline"
	"github.com/jonathan/social-amplifier/internal/social"
	"github.com/jonathan/social-amplifier/internal/types"
)

// PipelineRunner runs one end-to-end pipeline per request.
type PipelineRunner interface {
	Run(ctx context.Context, url string) (*pipeline.Result, error)
}

// PostLister returns the normalized listing of stored posts.
type PostLister interface {
	ListPosts(ctx context.Context) ([]types.PostView, error)
}

// Server represents the HTTP server and its wired collaborators.
type Server struct {
	httpServer *http.Server
	runner     PipelineRunner
	posts      PostLister
	database   *db.DB
	llmClient  llm.Client
}

// New wires every collaborator from the configuration and returns a
// ready-to-start server.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		_ = database.Close(ctx)
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	synthesizer, err := image.NewSynthesizer(image.Config{
		BaseURL: cfg.ImageBaseURL,
		APIKey:  cfg.ImageAPIKey,
		Model:   cfg.ImageModel,
	})
	if err != nil {
		_ = llmClient.Close()
		_ = database.Close(ctx)
		return nil, fmt.Errorf("failed to create image synthesizer: %w", err)
	}

	publisher, err := assets.NewPublisher(assets.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	})
	if err != nil {
		_ = llmClient.Close()
		_ = database.Close(ctx)
		return nil, fmt.Errorf("failed to create asset publisher: %w", err)
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

	s := &Server{
		runner:    runner,
		posts:     database,
		database:  database,
		llmClient: llmClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second, // pipeline runs span several model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /create_post_from_blog", s.handleCreatePost)
	mux.HandleFunc("GET /get_all_posts", s.handleGetAllPosts)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.database != nil {
		_ = s.database.Close(ctx)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers; the frontend is served from another origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
