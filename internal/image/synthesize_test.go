package image

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Synthesizer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	synth, err := NewSynthesizer(Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return server, synth
}

func TestNewSynthesizer_RequiresAPIKey(t *testing.T) {
	_, err := NewSynthesizer(Config{})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestSynthesize(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	var gotPrompt string
	_, synth := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt, _ = req["prompt"].(string)
		assert.EqualValues(t, 1, req["n"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)}},
		})
	})

	img, err := synth.Synthesize(context.Background(), "Blog about X")

	require.NoError(t, err)
	assert.Equal(t, imageBytes, img.Bytes)
	assert.NotEqual(t, uuid.Nil, img.ID)
	assert.Contains(t, gotPrompt, "Blog about X")
	assert.Contains(t, gotPrompt, "thumbnail")
}

func TestSynthesize_FreshIDPerRun(t *testing.T) {
	_, synth := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString([]byte("img"))}},
		})
	})

	first, err := synth.Synthesize(context.Background(), "summary")
	require.NoError(t, err)
	second, err := synth.Synthesize(context.Background(), "summary")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSynthesize_ZeroImagesIsFailure(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty data", map[string]any{"data": []map[string]string{}}},
		{"missing data", map[string]any{}},
		{"empty payload", map[string]any{"data": []map[string]string{{"b64_json": ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, synth := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.body)
			})

			_, err := synth.Synthesize(context.Background(), "summary")

			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Contains(t, genErr.Message, "no image")
		})
	}
}

func TestSynthesize_BackendError(t *testing.T) {
	_, synth := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key"},
		})
	})

	_, err := synth.Synthesize(context.Background(), "summary")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Message, "401")
	assert.Contains(t, genErr.Message, "invalid api key")
}

func TestSynthesize_InvalidBase64(t *testing.T) {
	_, synth := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": "not!base64!!!"}},
		})
	})

	_, err := synth.Synthesize(context.Background(), "summary")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Message, "decode")
}
