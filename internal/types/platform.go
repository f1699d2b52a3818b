// Package types defines the shared data structures passed between pipeline stages.
package types

import "fmt"

// Platform identifies a social network a post is tailored for.
type Platform string

// Supported target platforms.
const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
)

// AllPlatforms lists every platform a pipeline run generates a post for,
// in the order their fields appear in the persisted document.
var AllPlatforms = []Platform{PlatformLinkedIn, PlatformInstagram, PlatformTwitter}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformLinkedIn, PlatformInstagram, PlatformTwitter:
		return true
	}
	return false
}

// PlatformPost is one generated post, tagged with its target platform.
type PlatformPost struct {
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
}

// Validate checks that the post carries a known platform and non-empty text.
func (p *PlatformPost) Validate() error {
	if !p.Platform.Valid() {
		return fmt.Errorf("unknown platform: %q", p.Platform)
	}
	if p.Text == "" {
		return fmt.Errorf("empty post text for platform %s", p.Platform)
	}
	return nil
}
