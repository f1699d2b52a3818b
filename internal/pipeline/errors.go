package pipeline

import (
	"errors"
	"fmt"
)

// Stage names one step in the orchestrator's sequence.
type Stage string

// Pipeline stages, in execution order. The three generate stages fan
// out concurrently and join before review.
const (
	StageFetch             Stage = "fetch"
	StageSummarize         Stage = "summarize"
	StageGenerateLinkedIn  Stage = "generate_linkedin"
	StageGenerateInstagram Stage = "generate_instagram"
	StageGenerateTwitter   Stage = "generate_twitter"
	StageReview            Stage = "review"
	StageSynthesizeImage   Stage = "synthesize_image"
	StagePublishImage      Stage = "publish_image"
	StageAssemble          Stage = "assemble"
	StagePersist           Stage = "persist"
)

// StageError wraps the first failure of a run with the stage it
// occurred in. The orchestrator boundary is the sole translation point
// to a caller-facing error; no stage recovers locally.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// failed tags an error with its stage unless a nested stage already
// tagged it (fan-out branches tag their own platform stage).
func failed(stage Stage, err error) error {
	var staged *StageError
	if errors.As(err, &staged) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
