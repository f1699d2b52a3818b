package types

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus tracks the lifecycle of a persisted record.
type PostStatus string

// StatusPendingReview is the status every freshly assembled record
// carries; there is no in-place update path in the current scope.
const StatusPendingReview PostStatus = "pending_review"

// PostRecord is the document persisted after a successful pipeline run.
// Field names are the durable contract and must not change.
type PostRecord struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	URL           string             `json:"url" bson:"url"`
	Summary       string             `json:"summary_results" bson:"summary_results"`
	LinkedInPost  string             `json:"linkedin_post" bson:"linkedin_post"`
	InstagramPost string             `json:"instagram_post" bson:"instagram_post"`
	TwitterPost   string             `json:"twitter_post" bson:"twitter_post"`
	Review        string             `json:"review_post" bson:"review_post"`
	Image         ImageAsset         `json:"image" bson:"image"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	Status        PostStatus         `json:"status" bson:"status"`
}

// Validate checks that every upstream artifact is present. A record that
// fails this check must never reach the persistence gateway.
func (r *PostRecord) Validate() error {
	switch {
	case r.URL == "":
		return fmt.Errorf("post record missing url")
	case r.Summary == "":
		return fmt.Errorf("post record missing summary")
	case r.LinkedInPost == "":
		return fmt.Errorf("post record missing linkedin post")
	case r.InstagramPost == "":
		return fmt.Errorf("post record missing instagram post")
	case r.TwitterPost == "":
		return fmt.Errorf("post record missing twitter post")
	case r.Review == "":
		return fmt.Errorf("post record missing review")
	case r.Image.URL == "" || r.Image.PublicID == "":
		return fmt.Errorf("post record missing image asset")
	case r.CreatedAt.IsZero():
		return fmt.Errorf("post record missing created_at")
	}
	return nil
}

// PostView is the transport form of a PostRecord returned by listings.
// Identifier and timestamp are normalized to strings so callers never
// see raw database types.
type PostView struct {
	ID            string     `json:"_id"`
	URL           string     `json:"url"`
	Summary       string     `json:"summary_results"`
	LinkedInPost  string     `json:"linkedin_post"`
	InstagramPost string     `json:"instagram_post"`
	TwitterPost   string     `json:"twitter_post"`
	Review        string     `json:"review_post"`
	Image         ImageAsset `json:"image"`
	CreatedAt     string     `json:"created_at"`
	Status        PostStatus `json:"status"`
}

// View converts a stored record into its transport form.
func (r *PostRecord) View() PostView {
	return PostView{
		ID:            r.ID.Hex(),
		URL:           r.URL,
		Summary:       r.Summary,
		LinkedInPost:  r.LinkedInPost,
		InstagramPost: r.InstagramPost,
		TwitterPost:   r.TwitterPost,
		Review:        r.Review,
		Image:         r.Image,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		Status:        r.Status,
	}
}
