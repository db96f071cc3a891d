package services

import (
	"errors"
	"testing"

	"myblog/app/models"
	"myblog/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	entries, service, _, _ := newTestServices(t)

	entry, err := entries.CreateEntry("Test Entry", "some_user", "Test Content")
	require.NoError(t, err)

	t.Run("create comment", func(t *testing.T) {
		comment, err := service.CreateComment(entry.ID, "  Omar Al-Ithawi ", "i@omardo.com ", "Salam!")
		require.NoError(t, err)
		assert.Equal(t, 1, comment.ID)
		assert.Equal(t, entry.ID, comment.EntryID)
		assert.Equal(t, "Omar Al-Ithawi", comment.Name)
		assert.Equal(t, "i@omardo.com", comment.Email)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("get comment", func(t *testing.T) {
		comment, err := service.GetComment(1)
		require.NoError(t, err)
		assert.Equal(t, "Salam!", comment.Body)
	})

	t.Run("blank fields are all reported", func(t *testing.T) {
		_, err := service.CreateComment(entry.ID, " ", "", "\n")
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, models.FieldErrors{
			"name":  {models.MsgRequired},
			"email": {models.MsgRequired},
			"body":  {models.MsgRequired},
		}, verr.Fields)
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := service.CreateComment(999, "another_user", "a1@example.com", "comment")
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, models.FieldErrors{"entry": {models.MsgInvalidEntry}}, verr.Fields)
	})

	t.Run("missing entry and bad email", func(t *testing.T) {
		_, err := service.CreateComment(0, "another_user", "nope", "comment")
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"email", "entry"}, verr.Fields.Fields())
	})

	t.Run("list comments oldest first", func(t *testing.T) {
		_, err := service.CreateComment(entry.ID, "another_user_2", "a2@example.com", "comment2")
		require.NoError(t, err)

		comments, err := service.ListComments(entry.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "Salam!", comments[0].Body)
		assert.Equal(t, "comment2", comments[1].Body)
	})

	t.Run("list comments of missing entry", func(t *testing.T) {
		_, err := service.ListComments(999)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	t.Run("delete comment", func(t *testing.T) {
		require.NoError(t, service.DeleteComment(1))

		_, err := service.GetComment(1)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
		assert.True(t, errors.Is(service.DeleteComment(1), repositories.ErrNotFound))
	})
}

func TestCommentServiceEntryLookupFailure(t *testing.T) {
	_, service, entryRepo, _ := newTestServices(t)
	entryRepo.Err = errors.New("connection reset")

	_, err := service.CreateComment(1, "another_user", "a1@example.com", "comment")
	require.Error(t, err)
	var verr *models.ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.ErrorContains(t, err, "connection reset")
}
