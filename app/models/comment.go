package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return ValidateStruct(c)
}

// Stamp sets the comment timestamps. CreatedAt is only set once.
func (c *Comment) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.ModifiedAt = now
}

// SetEntry sets the parent entry and updates the EntryID
func (c *Comment) SetEntry(entry *Entry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	c.EntryID = entry.ID
	return nil
}

// Gravatar returns the avatar URL for the commenter.
func (c *Comment) Gravatar() string {
	return GravatarURL(c.Email)
}

func (c *Comment) String() string {
	return c.Body
}
