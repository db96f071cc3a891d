package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the entry meets all validation requirements
func (e *Entry) Validate() error {
	return ValidateStruct(e)
}

// Stamp prepares the entry for persistence: the slug is recomputed from the
// current title and ModifiedAt is set to now. CreatedAt is only set when it
// has never been set.
func (e *Entry) Stamp(now time.Time) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.ModifiedAt = now
	e.Slug = Slugify(e.Title)
}

// URL returns the entry permalink. The date and slug parts are informational;
// only the ID is used to resolve it.
func (e *Entry) URL() string {
	created := e.CreatedAt.UTC()
	return fmt.Sprintf("/%d/%d/%d/%d-%s/", created.Year(), int(created.Month()), created.Day(), e.ID, e.Slug)
}

func (e *Entry) String() string {
	return e.Title
}

// AddComment adds a comment to the entry
func (e *Entry) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.EntryID = e.ID
	e.Comments = append(e.Comments, comment)
	return nil
}
