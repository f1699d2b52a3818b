// Package assets uploads generated images to Cloudinary and returns the
// durable asset reference stored in the final document.
package assets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/social-amplifier/internal/types"
)

// DefaultBaseURL is the Cloudinary upload API root.
const DefaultBaseURL = "https://api.cloudinary.com/v1_1"

// DefaultTimeout bounds one upload call.
const DefaultTimeout = 60 * time.Second

// Publisher uploads image bytes to Cloudinary.
type Publisher struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	now        func() time.Time
}

// Config holds the Cloudinary credentials and endpoint.
type Config struct {
	BaseURL   string // override for tests; defaults to the Cloudinary API
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// NewPublisher creates a Publisher for the configured Cloudinary account.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, &PublishError{Message: "cloud name, API key, and API secret are required"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Publisher{
		baseURL:    cfg.BaseURL,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}, nil
}

// uploadResponse is the subset of the Cloudinary response we persist.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Bytes     *int64 `json:"bytes"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Publish uploads the image bytes and returns the durable asset
// reference. The provisional image id becomes the requested public id;
// the backend's assigned id is authoritative.
func (p *Publisher) Publish(ctx context.Context, img *types.GeneratedImage) (*types.ImageAsset, error) {
	if img == nil || len(img.Bytes) == 0 {
		return nil, &PublishError{Message: "no image bytes to upload"}
	}

	timestamp := strconv.FormatInt(p.now().Unix(), 10)
	publicID := "image_" + img.ID.String()
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, &PublishError{Message: "failed to build upload form", Cause: err}
		}
	}
	if err := writer.WriteField("api_key", p.apiKey); err != nil {
		return nil, &PublishError{Message: "failed to build upload form", Cause: err}
	}
	if err := writer.WriteField("signature", signParams(params, p.apiSecret)); err != nil {
		return nil, &PublishError{Message: "failed to build upload form", Cause: err}
	}

	part, err := writer.CreateFormFile("file", img.Filename())
	if err != nil {
		return nil, &PublishError{Message: "failed to build upload form", Cause: err}
	}
	if _, err := part.Write(img.Bytes); err != nil {
		return nil, &PublishError{Message: "failed to build upload form", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &PublishError{Message: "failed to build upload form", Cause: err}
	}

	uploadURL := fmt.Sprintf("%s/%s/image/upload", p.baseURL, p.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, strings.NewReader(body.String()))
	if err != nil {
		return nil, &PublishError{Message: "failed to create upload request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &PublishError{Message: "upload request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PublishError{Message: "failed to read upload response", Cause: err}
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &PublishError{Message: "failed to parse upload response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("upload returned HTTP %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg += ": " + parsed.Error.Message
		}
		return nil, &PublishError{Message: msg}
	}

	if parsed.SecureURL == "" || parsed.PublicID == "" {
		return nil, &PublishError{Message: "upload response missing secure_url or public_id"}
	}

	return &types.ImageAsset{
		URL:      parsed.SecureURL,
		PublicID: parsed.PublicID,
		Format:   parsed.Format,
		Size:     parsed.Bytes,
	}, nil
}

// signParams computes the Cloudinary request signature: the SHA-1 hex
// digest of the sorted parameter string with the API secret appended.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
