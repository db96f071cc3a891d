package repositories

import "myblog/app/models"

// EntryRepository defines the interface for entry data access
type EntryRepository interface {
	Create(entry *models.Entry) error
	GetByID(id int) (*models.Entry, error)
	// List returns entries newest first.
	List(limit, offset int) ([]*models.Entry, error)
	Count() (int, error)
	Update(entry *models.Entry) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create fails with ErrNotFound when the parent entry does not exist.
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	// ListByEntry returns an entry's comments oldest first.
	ListByEntry(entryID int) ([]*models.Comment, error)
	Delete(id int) error
	DeleteByEntry(entryID int) error
}
