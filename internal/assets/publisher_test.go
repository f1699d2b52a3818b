package assets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/social-amplifier/internal/types"
)

func testImage() *types.GeneratedImage {
	return &types.GeneratedImage{ID: uuid.New(), Bytes: []byte{0x89, 0x50, 0x4e, 0x47}}
}

func newPublisher(t *testing.T, handler http.HandlerFunc) *Publisher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	pub, err := NewPublisher(Config{
		BaseURL:   server.URL,
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "secret456",
	})
	require.NoError(t, err)
	return pub
}

func TestNewPublisher_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing cloud name", Config{APIKey: "k", APISecret: "s"}},
		{"missing api key", Config{CloudName: "c", APISecret: "s"}},
		{"missing api secret", Config{CloudName: "c", APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPublisher(tt.cfg)

			var pubErr *PublishError
			require.ErrorAs(t, err, &pubErr)
		})
	}
}

func TestPublish(t *testing.T) {
	img := testImage()
	size := int64(4)

	pub := newPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.Equal(t, "image_"+img.ID.String(), r.FormValue("public_id"))
		assert.NotEmpty(t, r.FormValue("timestamp"))

		// The signature covers the sorted params plus the secret.
		wantSig := signParams(map[string]string{
			"public_id": r.FormValue("public_id"),
			"timestamp": r.FormValue("timestamp"),
		}, "secret456")
		assert.Equal(t, wantSig, r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, img.Filename(), header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/abc.png",
			"public_id":  "abc",
			"format":     "png",
			"bytes":      size,
		})
	})

	asset, err := pub.Publish(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/abc.png", asset.URL)
	assert.Equal(t, "abc", asset.PublicID)
	assert.Equal(t, "png", asset.Format)
	require.NotNil(t, asset.Size)
	assert.Equal(t, size, *asset.Size)
}

func TestPublish_SizeMayBeAbsent(t *testing.T) {
	pub := newPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/abc.png",
			"public_id":  "abc",
			"format":     "png",
		})
	})

	asset, err := pub.Publish(context.Background(), testImage())

	require.NoError(t, err)
	assert.Nil(t, asset.Size)
}

func TestPublish_NoBytes(t *testing.T) {
	pub := newPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upload must not be attempted without bytes")
	})

	tests := []*types.GeneratedImage{
		nil,
		{ID: uuid.New()},
	}

	for _, img := range tests {
		_, err := pub.Publish(context.Background(), img)

		var pubErr *PublishError
		require.ErrorAs(t, err, &pubErr)
	}
}

func TestPublish_UploadFailure(t *testing.T) {
	pub := newPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid signature"},
		})
	})

	_, err := pub.Publish(context.Background(), testImage())

	var pubErr *PublishError
	require.ErrorAs(t, err, &pubErr)
	assert.Contains(t, pubErr.Message, "401")
	assert.Contains(t, pubErr.Message, "invalid signature")
}

func TestPublish_MissingFields(t *testing.T) {
	pub := newPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"format": "png"})
	})

	_, err := pub.Publish(context.Background(), testImage())

	var pubErr *PublishError
	require.ErrorAs(t, err, &pubErr)
	assert.Contains(t, pubErr.Message, "missing secure_url or public_id")
}

func TestSignParams(t *testing.T) {
	// Known SHA-1 of "public_id=abc&timestamp=1700000000secret"
	sig := signParams(map[string]string{
		"timestamp": "1700000000",
		"public_id": "abc",
	}, "secret")

	assert.Len(t, sig, 40)
	// Deterministic regardless of map iteration order.
	assert.Equal(t, sig, signParams(map[string]string{
		"public_id": "abc",
		"timestamp": "1700000000",
	}, "secret"))
}
