package controllers

import (
	"errors"
	"net/http"

	"myblog/app/forms"
	"myblog/app/logger"
	"myblog/app/metrics"
	"myblog/app/models"
	"myblog/app/services"
	"myblog/app/views"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	base
	entries        *EntryController
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController. Form submissions
// resolve their entry through entries.
func NewCommentController(comments *services.CommentService, entries *EntryController, renderer *views.Renderer, m *metrics.Metrics) *CommentController {
	return &CommentController{
		base:           base{views: renderer, metrics: m},
		entries:        entries,
		commentService: comments,
	}
}

// Submit handles the comment form posted to an entry permalink. A valid
// submission redirects to the permalink; an invalid one re-renders the entry
// with the form errors.
func (cc *CommentController) Submit(w http.ResponseWriter, r *http.Request) {
	entry, ok := cc.entries.resolve(w, r)
	if !ok {
		return
	}

	form, err := forms.NewCommentForm(entry, cc.commentService)
	if err != nil {
		cc.sendServiceError(w, r, "", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		cc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return
	}

	comment, err := form.Submit(r.PostForm)
	if err != nil {
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			cc.sendServiceError(w, r, "", err)
			return
		}
		cc.metrics.CommentRejected()
		logger.Log(r.Context()).Debugw("comment rejected", "entry_id", entry.ID, "fields", verr.Fields.Fields())
		cc.render(w, r, http.StatusOK, views.EntryShow, entryPage{Entry: entry, Form: form})
		return
	}

	cc.metrics.CommentCreated()
	logger.Log(r.Context()).Infow("comment created", "entry_id", entry.ID, "comment_id", comment.ID)
	http.Redirect(w, r, entry.URL(), http.StatusSeeOther)
}

// Index handles listing the comments of an entry
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathInt(r, "id")
	if err != nil {
		cc.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListComments(entryID)
	if err != nil {
		cc.sendServiceError(w, r, "Entry not found", err)
		return
	}
	cc.sendJSON(w, http.StatusOK, newCommentResponses(comments))
}

// Create handles creating a comment through the API
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathInt(r, "id")
	if err != nil {
		cc.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		cc.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.CreateComment(entryID, req.Name, req.Email, req.Body)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			if _, missing := verr.Fields["entry"]; missing {
				cc.sendError(w, r, "Entry not found", http.StatusNotFound)
				return
			}
			cc.metrics.CommentRejected()
		}
		cc.sendServiceError(w, r, "Entry not found", err)
		return
	}

	cc.metrics.CommentCreated()
	logger.Log(r.Context()).Infow("comment created", "entry_id", entryID, "comment_id", comment.ID)
	cc.sendJSON(w, http.StatusCreated, newCommentResponse(comment))
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		cc.sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := cc.commentService.DeleteComment(id); err != nil {
		cc.sendServiceError(w, r, "Comment not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
