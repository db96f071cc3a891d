package repositories

import (
	"time"

	"myblog/app/models"
)

// entryRecord is the relational row for an entry.
type entryRecord struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"type:varchar(500);not null"`
	Author     string    `gorm:"type:varchar(150);not null;index"`
	Body       string    `gorm:"type:text"`
	Slug       string    `gorm:"type:varchar(500);not null;default:''"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null"`

	Comments []commentRecord `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}

func (entryRecord) TableName() string {
	return "entries"
}

// commentRecord is the relational row for a comment.
type commentRecord struct {
	ID         uint      `gorm:"primaryKey"`
	EntryID    uint      `gorm:"not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Email      string    `gorm:"type:varchar(254);not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	ModifiedAt time.Time `gorm:"not null"`
}

func (commentRecord) TableName() string {
	return "comments"
}

func toEntryRecord(e *models.Entry) entryRecord {
	return entryRecord{
		ID:         uint(e.ID),
		Title:      e.Title,
		Author:     e.Author,
		Body:       e.Body,
		Slug:       e.Slug,
		CreatedAt:  e.CreatedAt,
		ModifiedAt: e.ModifiedAt,
	}
}

func (r entryRecord) toModel() *models.Entry {
	return &models.Entry{
		ID:         int(r.ID),
		Title:      r.Title,
		Author:     r.Author,
		Body:       r.Body,
		Slug:       r.Slug,
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
}

func toCommentRecord(c *models.Comment) commentRecord {
	return commentRecord{
		ID:         uint(c.ID),
		EntryID:    uint(c.EntryID),
		Name:       c.Name,
		Email:      c.Email,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.ModifiedAt,
	}
}

func (r commentRecord) toModel() *models.Comment {
	return &models.Comment{
		ID:         int(r.ID),
		EntryID:    int(r.EntryID),
		Name:       r.Name,
		Email:      r.Email,
		Body:       r.Body,
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
}
