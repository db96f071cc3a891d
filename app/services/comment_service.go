package services

import (
	"errors"
	"fmt"
	"strings"

	"myblog/app/models"
	"myblog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	entryRepo   repositories.EntryRepository
	opts        options
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, entryRepo repositories.EntryRepository, opts ...Option) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		entryRepo:   entryRepo,
		opts:        newOptions(opts),
	}
}

// CreateComment validates and stores a comment on an entry. Field values are
// trimmed first. A missing entry is reported as a validation error on the
// "entry" field alongside any other rejected field.
func (s *CommentService) CreateComment(entryID int, name, email, body string) (*models.Comment, error) {
	comment := &models.Comment{
		EntryID: entryID,
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Body:    strings.TrimSpace(body),
	}

	fields := models.FieldErrors{}
	if _, err := s.entryRepo.GetByID(entryID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up entry %d: %w", entryID, err)
		}
		fields.Add("entry", models.MsgInvalidEntry)
	}
	if err := comment.Validate(); err != nil {
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		for field, msgs := range verr.Fields {
			if field == "entry_id" {
				continue
			}
			fields[field] = msgs
		}
	}
	if len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}

	comment.Stamp(s.opts.now())
	if err := s.commentRepo.Create(comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The entry went away after the lookup above.
			return nil, models.NewValidationError("entry", models.MsgInvalidEntry)
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListComments retrieves all comments for an entry, oldest first
func (s *CommentService) ListComments(entryID int) ([]*models.Comment, error) {
	if _, err := s.entryRepo.GetByID(entryID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByEntry(entryID)
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id int) error {
	return s.commentRepo.Delete(id)
}
