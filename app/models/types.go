package models

import "time"

// Entry represents a blog entry with comments.
type Entry struct {
	ID         int        `json:"id"`
	Title      string     `json:"title" validate:"required,max=500"`
	Author     string     `json:"author" validate:"required,max=150"`
	Body       string     `json:"body"`
	Slug       string     `json:"slug"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
	Comments   []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a reader's comment on a blog entry.
type Comment struct {
	ID         int       `json:"id"`
	EntryID    int       `json:"entry_id" validate:"required,gt=0"`
	Name       string    `json:"name" validate:"required,max=100"`
	Email      string    `json:"email" validate:"required,email"`
	Body       string    `json:"body" validate:"required"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// EntryPluralName is the display name used for collections of entries.
const EntryPluralName = "entries"
