// Package config provides environment-derived process configuration.
// The Config struct is constructed once at startup and injected into
// every collaborator; core logic performs no ambient environment
// lookups.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds every credential and setting the service needs.
type Config struct {
	// Server
	Port int `validate:"gte=1,lte=65535"`

	// Language model
	GeminiAPIKey string `validate:"required"`
	GeminiModel  string

	// Image generation backend
	ImageAPIKey  string `validate:"required"`
	ImageBaseURL string `validate:"omitempty,url"`
	ImageModel   string

	// Cloudinary
	CloudinaryCloudName string `validate:"required"`
	CloudinaryAPIKey    string `validate:"required"`
	CloudinaryAPISecret string `validate:"required"`

	// MongoDB
	MongoURI        string `validate:"required"`
	MongoDatabase   string
	MongoCollection string

	// Behavior
	UseBrowser bool
	Verbose    bool
}

// FromEnv builds a Config from environment variables. Call after any
// .env loading; missing optional values use defaults and required ones
// are reported by Validate.
func FromEnv() *Config {
	return &Config{
		Port:                envInt("PORT", 8080),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         os.Getenv("GEMINI_MODEL"),
		ImageAPIKey:         envFirst("IMAGE_API_KEY", "OPENAI_API_KEY"),
		ImageBaseURL:        os.Getenv("IMAGE_API_BASE_URL"),
		ImageModel:          os.Getenv("IMAGE_MODEL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDatabase:       os.Getenv("MONGODB_DATABASE"),
		MongoCollection:     os.Getenv("MONGODB_COLLECTION"),
		UseBrowser:          envBool("USE_BROWSER"),
		Verbose:             envBool("VERBOSE"),
	}
}

// Validate checks that all required settings are present and in range.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("config error: field %s failed %q validation", errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// envInt reads an integer variable, returning def when unset or invalid.
func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// envBool reads a boolean variable; unset or unparsable means false.
func envBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}

// envFirst returns the first non-empty value among the named variables.
func envFirst(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
