package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func completeRecord() *PostRecord {
	size := int64(2048)
	return &PostRecord{
		URL:           "https://example.com/blog",
		Summary:       "a summary",
		LinkedInPost:  "linkedin text",
		InstagramPost: "instagram text",
		TwitterPost:   "twitter text",
		Review:        "looks good",
		Image: ImageAsset{
			URL:      "https://res.example.com/img.png",
			PublicID: "img_abc",
			Format:   "png",
			Size:     &size,
		},
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Status:    StatusPendingReview,
	}
}

func TestPostRecord_Validate_Complete(t *testing.T) {
	assert.NoError(t, completeRecord().Validate())
}

func TestPostRecord_Validate_MissingArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostRecord)
	}{
		{"missing url", func(r *PostRecord) { r.URL = "" }},
		{"missing summary", func(r *PostRecord) { r.Summary = "" }},
		{"missing linkedin post", func(r *PostRecord) { r.LinkedInPost = "" }},
		{"missing instagram post", func(r *PostRecord) { r.InstagramPost = "" }},
		{"missing twitter post", func(r *PostRecord) { r.TwitterPost = "" }},
		{"missing review", func(r *PostRecord) { r.Review = "" }},
		{"missing image url", func(r *PostRecord) { r.Image.URL = "" }},
		{"missing image public id", func(r *PostRecord) { r.Image.PublicID = "" }},
		{"missing created_at", func(r *PostRecord) { r.CreatedAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := completeRecord()
			tt.mutate(record)
			assert.Error(t, record.Validate())
		})
	}
}

func TestPostRecord_View_NormalizesIDAndTimestamp(t *testing.T) {
	record := completeRecord()
	record.ID = primitive.NewObjectID()

	view := record.View()

	assert.Equal(t, record.ID.Hex(), view.ID)
	assert.Equal(t, "2026-03-14T09:26:53Z", view.CreatedAt)

	// Round-trips as RFC3339
	parsed, err := time.Parse(time.RFC3339, view.CreatedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(record.CreatedAt))

	assert.Equal(t, record.Summary, view.Summary)
	assert.Equal(t, record.LinkedInPost, view.LinkedInPost)
	assert.Equal(t, record.InstagramPost, view.InstagramPost)
	assert.Equal(t, record.TwitterPost, view.TwitterPost)
	assert.Equal(t, record.Image, view.Image)
	assert.Equal(t, StatusPendingReview, view.Status)
}

func TestPlatform_Valid(t *testing.T) {
	for _, platform := range AllPlatforms {
		assert.True(t, platform.Valid())
	}
	assert.False(t, Platform("myspace").Valid())
	assert.False(t, Platform("").Valid())
}

func TestPlatformPost_Validate(t *testing.T) {
	post := &PlatformPost{Platform: PlatformLinkedIn, Text: "hello"}
	assert.NoError(t, post.Validate())

	assert.Error(t, (&PlatformPost{Platform: "myspace", Text: "hello"}).Validate())
	assert.Error(t, (&PlatformPost{Platform: PlatformTwitter}).Validate())
}

func TestGeneratedImage_Filename(t *testing.T) {
	img := completeImage()
	assert.Equal(t, "image_"+img.ID.String()+".png", img.Filename())
}
