package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// CreatePostRequest is the request body for /create_post_from_blog.
type CreatePostRequest struct {
	InputURL string `json:"input_url"`
}

// CreatePostResponse is the success response for /create_post_from_blog.
type CreatePostResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// handleCreatePost runs the full pipeline for a blog URL. Input is
// rejected before any external call is made.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	if strings.TrimSpace(req.InputURL) == "" {
		log.Printf("input_url is missing in payload")
		s.errorResponse(w, http.StatusBadRequest, "input_url is required", "")
		return
	}
	if parsed, err := url.Parse(req.InputURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		s.errorResponse(w, http.StatusBadRequest, "input_url is not a valid URL", "")
		return
	}

	log.Printf("Received input_url: %s", req.InputURL)

	result, err := s.runner.Run(r.Context(), req.InputURL)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error(), FailedStage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, CreatePostResponse{
		Message: fmt.Sprintf("process successfully completed. %s", result.InsertedID),
		ID:      result.InsertedID,
	})
}

// handleGetAllPosts returns every stored post in transport form.
func (s *Server) handleGetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.ListPosts(r.Context())
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch posts", "")
		return
	}

	s.jsonResponse(w, http.StatusOK, posts)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON body with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error body, tagging the failed pipeline
// stage when one is known.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, stage string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message, Stage: stage})
}
