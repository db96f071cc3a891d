// Package forms binds and validates user submitted HTML forms.
package forms

import (
	"errors"
	"net/url"
	"strings"

	"myblog/app/models"
)

// Form field names.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldBody  = "body"
)

// CommentCreator persists comments. *services.CommentService satisfies it.
type CommentCreator interface {
	CreateComment(entryID int, name, email, body string) (*models.Comment, error)
}

// CommentForm is the comment submission form shown under an entry. It is
// always bound to one entry, fixed at construction.
type CommentForm struct {
	Name  string
	Email string
	Body  string

	entry     *models.Entry
	store     CommentCreator
	bound     bool
	validated bool
	errors    models.FieldErrors
}

// NewCommentForm creates an unbound form for entry. Building a form without an
// entry or a store is a programming error and fails immediately.
func NewCommentForm(entry *models.Entry, store CommentCreator) (*CommentForm, error) {
	if entry == nil {
		return nil, &models.ConfigurationError{Component: "CommentForm", Missing: "entry"}
	}
	if store == nil {
		return nil, &models.ConfigurationError{Component: "CommentForm", Missing: "store"}
	}
	return &CommentForm{
		entry:  entry,
		store:  store,
		errors: models.FieldErrors{},
	}, nil
}

// Entry returns the entry the form comments on.
func (f *CommentForm) Entry() *models.Entry {
	return f.entry
}

// Bound reports whether submitted data has been bound.
func (f *CommentForm) Bound() bool {
	return f.bound
}

// Bind loads submitted values into the form. Values are trimmed.
func (f *CommentForm) Bind(values url.Values) {
	f.Name = strings.TrimSpace(values.Get(FieldName))
	f.Email = strings.TrimSpace(values.Get(FieldEmail))
	f.Body = strings.TrimSpace(values.Get(FieldBody))
	f.bound = true
	f.validated = false
	f.errors = models.FieldErrors{}
}

// IsValid validates the bound data. An unbound form is never valid.
func (f *CommentForm) IsValid() bool {
	if !f.bound {
		return false
	}
	if !f.validated {
		f.validate()
	}
	return len(f.errors) == 0
}

func (f *CommentForm) validate() {
	f.validated = true
	f.errors = models.FieldErrors{}

	comment := &models.Comment{
		EntryID: f.entry.ID,
		Name:    f.Name,
		Email:   f.Email,
		Body:    f.Body,
	}
	err := comment.Validate()
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		f.merge(verr.Fields)
	}
}

func (f *CommentForm) merge(fields models.FieldErrors) {
	for field, msgs := range fields {
		if field == "entry_id" {
			field = "entry"
		}
		for _, msg := range msgs {
			f.errors.Add(field, msg)
		}
	}
}

// Errors returns the messages for every rejected field.
func (f *CommentForm) Errors() models.FieldErrors {
	return f.errors
}

// FieldErrors returns the messages for a single field.
func (f *CommentForm) FieldErrors(field string) []string {
	return f.errors[field]
}

// Save stores the comment. It returns a *models.ValidationError holding the
// form errors when the data is invalid; nothing is persisted in that case.
func (f *CommentForm) Save() (*models.Comment, error) {
	if !f.IsValid() {
		if len(f.errors) == 0 {
			f.errors.Add(FieldName, models.MsgRequired)
			f.errors.Add(FieldEmail, models.MsgRequired)
			f.errors.Add(FieldBody, models.MsgRequired)
		}
		return nil, &models.ValidationError{Fields: f.errors}
	}

	comment, err := f.store.CreateComment(f.entry.ID, f.Name, f.Email, f.Body)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			f.merge(verr.Fields)
		}
		return nil, err
	}
	return comment, nil
}

// Submit binds values and saves the comment.
func (f *CommentForm) Submit(values url.Values) (*models.Comment, error) {
	f.Bind(values)
	return f.Save()
}
