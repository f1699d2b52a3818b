package types

import "github.com/google/uuid"

// SourceDocument holds the raw textual content fetched for a blog URL.
// It is produced once by the fetcher and consumed by the summarizer.
type SourceDocument struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

// GeneratedImage is a freshly synthesized thumbnail, identified by a
// per-run unique id. The id is provisional; the publisher's public id
// supersedes it once the bytes are uploaded.
type GeneratedImage struct {
	ID    uuid.UUID
	Bytes []byte
}

// Filename returns the provisional filename for the image bytes.
func (g *GeneratedImage) Filename() string {
	return "image_" + g.ID.String() + ".png"
}

// ImageAsset is the durable reference to an uploaded image.
// Size may be absent when the storage backend does not report it.
type ImageAsset struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id" bson:"public_id"`
	Format   string `json:"format" bson:"format"`
	Size     *int64 `json:"size" bson:"size"`
}
