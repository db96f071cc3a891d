package services

import (
	"fmt"
	"strings"

	"myblog/app/models"
	"myblog/app/repositories"
)

// EntryService handles business logic for blog entries
type EntryService struct {
	entryRepo   repositories.EntryRepository
	commentRepo repositories.CommentRepository
	opts        options
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo repositories.EntryRepository, commentRepo repositories.CommentRepository, opts ...Option) *EntryService {
	return &EntryService{
		entryRepo:   entryRepo,
		commentRepo: commentRepo,
		opts:        newOptions(opts),
	}
}

// PerPage is the default page size.
func (s *EntryService) PerPage() int {
	return s.opts.perPage
}

// CreateEntry validates and stores a new entry. The slug is derived from the
// title and both timestamps are set to the current time.
func (s *EntryService) CreateEntry(title, author, body string) (*models.Entry, error) {
	entry := &models.Entry{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Body:   body,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	entry.Stamp(s.opts.now())
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// SaveEntry stores changes to an existing entry. The stored creation time is
// kept, the modification time is bumped and the slug follows the new title,
// so the permalink changes whenever the title does.
func (s *EntryService) SaveEntry(entry *models.Entry) (*models.Entry, error) {
	entry.Title = strings.TrimSpace(entry.Title)
	entry.Author = strings.TrimSpace(entry.Author)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.GetByID(entry.ID)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = existing.CreatedAt
	entry.Stamp(s.opts.now())
	if err := s.entryRepo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update entry %d: %w", entry.ID, err)
	}
	return entry, nil
}

// GetEntry retrieves an entry by ID with its comments attached
func (s *EntryService) GetEntry(id int) (*models.Entry, error) {
	entry, err := s.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByEntry(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	entry.Comments = comments

	return entry, nil
}

// ResolvePermalink finds the entry a permalink points at. Only the ID is
// authoritative: a date or slug that no longer matches still resolves.
func (s *EntryService) ResolvePermalink(year, month, day, id int, slug string) (*models.Entry, error) {
	return s.GetEntry(id)
}

// ListEntries retrieves a page of entries, newest first
func (s *EntryService) ListEntries(page, perPage int) ([]*models.Entry, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.opts.perPage
	}

	offset := (page - 1) * perPage
	return s.entryRepo.List(perPage, offset)
}

// Count returns the number of entries
func (s *EntryService) Count() (int, error) {
	return s.entryRepo.Count()
}

// DeleteEntry deletes an entry and all its comments
func (s *EntryService) DeleteEntry(id int) error {
	if _, err := s.entryRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByEntry(id); err != nil {
		return fmt.Errorf("failed to delete comments of entry %d: %w", id, err)
	}

	return s.entryRepo.Delete(id)
}
