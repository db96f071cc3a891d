package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		want    FieldErrors
	}{
		{
			name: "valid comment",
			comment: &Comment{
				EntryID: 1,
				Name:    "Omar Al-Ithawi",
				Email:   "i@omardo.com",
				Body:    "Salam!",
			},
		},
		{
			name:    "all fields blank",
			comment: &Comment{EntryID: 1},
			want: FieldErrors{
				"name":  {MsgRequired},
				"email": {MsgRequired},
				"body":  {MsgRequired},
			},
		},
		{
			name: "name too long",
			comment: &Comment{
				EntryID: 1,
				Name:    strings.Repeat("a", 101),
				Email:   "a1@example.com",
				Body:    "comment",
			},
			want: FieldErrors{
				"name": {"Ensure this value has at most 100 characters (it has 101)."},
			},
		},
		{
			name: "invalid email",
			comment: &Comment{
				EntryID: 1,
				Name:    "another_user",
				Email:   "not-an-email",
				Body:    "comment",
			},
			want: FieldErrors{"email": {MsgInvalidEmail}},
		},
		{
			name: "missing entry",
			comment: &Comment{
				Name:  "another_user",
				Email: "a1@example.com",
				Body:  "comment",
			},
			want: FieldErrors{"entry_id": {MsgRequired}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestCommentStamp(t *testing.T) {
	comment := &Comment{Body: "Test Comment"}

	assert.True(t, comment.CreatedAt.IsZero())
	now := time.Now()
	comment.Stamp(now)
	assert.Equal(t, now, comment.CreatedAt)
	assert.Equal(t, now, comment.ModifiedAt)

	comment.Stamp(now.Add(time.Minute))
	assert.Equal(t, now, comment.CreatedAt)
	assert.Equal(t, now.Add(time.Minute), comment.ModifiedAt)
}

func TestCommentSetEntry(t *testing.T) {
	comment := &Comment{ID: 1, Name: "John Doe", Body: "Test Comment"}

	t.Run("set valid entry", func(t *testing.T) {
		err := comment.SetEntry(&Entry{ID: 7, Title: "Test Entry"})
		assert.NoError(t, err)
		assert.Equal(t, 7, comment.EntryID)
	})

	t.Run("set nil entry", func(t *testing.T) {
		err := comment.SetEntry(nil)
		assert.Error(t, err)
	})
}

func TestCommentString(t *testing.T) {
	comment := &Comment{Body: "My comment body"}
	assert.Equal(t, "My comment body", comment.String())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{
		"name":  {MsgRequired},
		"email": {MsgRequired},
	}}
	assert.Equal(t, "validation failed: email: This field is required.; name: This field is required.", err.Error())

	single := NewValidationError("entry", MsgInvalidEntry)
	assert.Equal(t, FieldErrors{"entry": {MsgInvalidEntry}}, single.Fields)
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Component: "CommentForm", Missing: "entry"}
	assert.Equal(t, "CommentForm: entry is required", err.Error())
}
