package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/social-amplifier/internal/types"
)

// Incomplete records are rejected before the collection is touched, so
// these paths need no running MongoDB.

func TestInsertPost_NilRecord(t *testing.T) {
	db := &DB{}

	_, err := db.InsertPost(context.Background(), nil)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "insert", perr.Op)
}

func TestInsertPost_IncompleteRecord(t *testing.T) {
	db := &DB{}

	tests := []struct {
		name   string
		record *types.PostRecord
	}{
		{"empty record", &types.PostRecord{}},
		{"missing image", &types.PostRecord{
			URL:           "https://example.com",
			Summary:       "s",
			LinkedInPost:  "l",
			InstagramPost: "i",
			TwitterPost:   "t",
			Review:        "r",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.InsertPost(context.Background(), tt.record)

			var perr *PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, "incomplete record")
		})
	}
}

func TestConnect_RequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), "", "", "")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "connect", perr.Op)
}

func TestPersistenceError_Format(t *testing.T) {
	err := &PersistenceError{Op: "list", Message: "cursor failed", Cause: assert.AnError}

	assert.Contains(t, err.Error(), "list")
	assert.Contains(t, err.Error(), "cursor failed")
	assert.ErrorIs(t, err, assert.AnError)
}
