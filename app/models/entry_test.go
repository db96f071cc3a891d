package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryValidation(t *testing.T) {
	tests := []struct {
		name       string
		entry      *Entry
		wantFields []string
	}{
		{
			name:  "valid entry",
			entry: &Entry{Title: "Valid Title", Author: "some_user", Body: "body"},
		},
		{
			name:  "empty body is allowed",
			entry: &Entry{Title: "Valid Title", Author: "some_user"},
		},
		{
			name:       "missing title",
			entry:      &Entry{Author: "some_user"},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			entry:      &Entry{Title: strings.Repeat("a", 501), Author: "some_user"},
			wantFields: []string{"title"},
		},
		{
			name:  "title at limit counts characters not bytes",
			entry: &Entry{Title: strings.Repeat("é", 500), Author: "some_user"},
		},
		{
			name:       "missing title and author",
			entry:      &Entry{},
			wantFields: []string{"author", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantFields, verr.Fields.Fields())
		})
	}
}

func TestEntryStamp(t *testing.T) {
	created := time.Date(2015, 3, 17, 10, 0, 0, 0, time.UTC)
	entry := &Entry{Title: "My entry title"}

	entry.Stamp(created)
	assert.Equal(t, created, entry.CreatedAt)
	assert.Equal(t, created, entry.ModifiedAt)
	assert.Equal(t, "my-entry-title", entry.Slug)

	later := created.Add(time.Hour)
	entry.Title = "Renamed entry"
	entry.Slug = "hand-picked"
	entry.Stamp(later)
	assert.Equal(t, created, entry.CreatedAt, "created_at must not move")
	assert.Equal(t, later, entry.ModifiedAt)
	assert.Equal(t, "renamed-entry", entry.Slug, "slug follows the title on every save")
}

func TestEntryStringAndURL(t *testing.T) {
	entry := &Entry{
		ID:        10,
		Title:     "My entry title",
		Slug:      "my-entry-title",
		CreatedAt: time.Date(2015, 3, 7, 23, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "My entry title", entry.String())
	assert.Equal(t, "/2015/3/7/10-my-entry-title/", entry.URL())
	assert.Equal(t, "entries", EntryPluralName)
}

func TestEntryCommentManagement(t *testing.T) {
	entry := &Entry{ID: 1, Title: "Test Entry"}

	t.Run("add comment", func(t *testing.T) {
		comment := &Comment{ID: 1, Name: "Test Author", Body: "Test Comment"}
		err := entry.AddComment(comment)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(entry.Comments))
		assert.Equal(t, entry.ID, comment.EntryID)
	})

	t.Run("add nil comment", func(t *testing.T) {
		err := entry.AddComment(nil)
		assert.Error(t, err)
	})
}
