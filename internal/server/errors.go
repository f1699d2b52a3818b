// Package server provides the HTTP REST API for the social amplifier.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/social-amplifier/internal/pipeline"
)

// HTTPStatus maps a pipeline failure to a response status. Upstream
// collaborator failures (fetch, generation, image, upload) are bad
// gateways; persistence and unknown failures are internal errors.
func HTTPStatus(err error) int {
	var staged *pipeline.StageError
	if !errors.As(err, &staged) {
		return http.StatusInternalServerError
	}

	switch staged.Stage {
	case pipeline.StageFetch,
		pipeline.StageSummarize,
		pipeline.StageGenerateLinkedIn,
		pipeline.StageGenerateInstagram,
		pipeline.StageGenerateTwitter,
		pipeline.StageReview,
		pipeline.StageSynthesizeImage,
		pipeline.StagePublishImage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FailedStage returns the stage name carried by a pipeline error, or
// "unknown" when the error is not stage-tagged.
func FailedStage(err error) string {
	var staged *pipeline.StageError
	if errors.As(err, &staged) {
		return string(staged.Stage)
	}
	return "unknown"
}
