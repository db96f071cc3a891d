package controllers

import (
	"errors"
	"time"

	"myblog/app/models"
	"myblog/app/repositories"
)

// entryResponse is the public JSON form of an entry.
type entryResponse struct {
	ID         int               `json:"id"`
	Title      string            `json:"title"`
	Author     string            `json:"author"`
	Body       string            `json:"body"`
	Slug       string            `json:"slug"`
	URL        string            `json:"url"`
	CreatedAt  time.Time         `json:"created_at"`
	ModifiedAt time.Time         `json:"modified_at"`
	Comments   []commentResponse `json:"comments,omitempty"`
}

// commentResponse is the public JSON form of a comment. The commenter's
// email address is never exposed.
type commentResponse struct {
	ID          int       `json:"id"`
	EntryID     int       `json:"entry_id"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	GravatarURL string    `json:"gravatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int             `json:"total"`
}

type entryRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

type commentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

func newEntryResponse(e *models.Entry) entryResponse {
	resp := entryResponse{
		ID:         e.ID,
		Title:      e.Title,
		Author:     e.Author,
		Body:       e.Body,
		Slug:       e.Slug,
		URL:        e.URL(),
		CreatedAt:  e.CreatedAt,
		ModifiedAt: e.ModifiedAt,
	}
	if len(e.Comments) > 0 {
		resp.Comments = newCommentResponses(e.Comments)
	}
	return resp
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:          c.ID,
		EntryID:     c.EntryID,
		Name:        c.Name,
		Body:        c.Body,
		GravatarURL: c.Gravatar(),
		CreatedAt:   c.CreatedAt,
	}
}

func newCommentResponses(comments []*models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
