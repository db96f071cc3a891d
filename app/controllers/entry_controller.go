package controllers

import (
	"net/http"

	"myblog/app/forms"
	"myblog/app/logger"
	"myblog/app/metrics"
	"myblog/app/models"
	"myblog/app/services"
	"myblog/app/views"

	"github.com/gorilla/mux"
)

// EntryController handles HTTP requests for blog entries
type EntryController struct {
	base
	entryService   *services.EntryService
	commentService *services.CommentService
}

// NewEntryController creates a new EntryController
func NewEntryController(entries *services.EntryService, comments *services.CommentService, renderer *views.Renderer, m *metrics.Metrics) *EntryController {
	return &EntryController{
		base:           base{views: renderer, metrics: m},
		entryService:   entries,
		commentService: comments,
	}
}

// entryPage is the data rendered by the entry detail page.
type entryPage struct {
	Entry *models.Entry
	Form  *forms.CommentForm
}

// Index handles listing entries, newest first
func (ec *EntryController) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = ec.entryService.PerPage()
	}

	entries, err := ec.entryService.ListEntries(page, perPage)
	if err != nil {
		ec.sendServiceError(w, r, "", err)
		return
	}
	total, err := ec.entryService.Count()
	if err != nil {
		ec.sendServiceError(w, r, "", err)
		return
	}

	if isAPI(r) {
		resp := entryListResponse{
			Entries: make([]entryResponse, 0, len(entries)),
			Page:    page,
			PerPage: perPage,
			Total:   total,
		}
		for _, e := range entries {
			resp.Entries = append(resp.Entries, newEntryResponse(e))
		}
		ec.sendJSON(w, http.StatusOK, resp)
		return
	}

	data := struct {
		Entries  []*models.Entry
		Page     int
		PrevPage int
		NextPage int
	}{
		Entries: entries,
		Page:    page,
	}
	if page > 1 {
		data.PrevPage = page - 1
	}
	if page*perPage < total {
		data.NextPage = page + 1
	}
	ec.render(w, r, http.StatusOK, views.EntryIndex, data)
}

// Show handles the entry permalink. The entry is found by ID alone; the
// date and slug in the URL are not checked.
func (ec *EntryController) Show(w http.ResponseWriter, r *http.Request) {
	entry, ok := ec.resolve(w, r)
	if !ok {
		return
	}

	form, err := forms.NewCommentForm(entry, ec.commentService)
	if err != nil {
		ec.sendServiceError(w, r, "", err)
		return
	}
	ec.render(w, r, http.StatusOK, views.EntryShow, entryPage{Entry: entry, Form: form})
}

// resolve looks up the entry addressed by a permalink, answering 404 itself
// when there is none.
func (ec *EntryController) resolve(w http.ResponseWriter, r *http.Request) (*models.Entry, bool) {
	vars := mux.Vars(r)
	year, _ := pathInt(r, "year")
	month, _ := pathInt(r, "month")
	day, _ := pathInt(r, "day")
	id, err := pathInt(r, "id")
	if err != nil {
		ec.sendError(w, r, "Entry not found", http.StatusNotFound)
		return nil, false
	}

	entry, err := ec.entryService.ResolvePermalink(year, month, day, id, vars["slug"])
	if err != nil {
		ec.sendServiceError(w, r, "Entry not found", err)
		return nil, false
	}
	return entry, true
}

// Redirect sends /entries/{id} to the entry's permalink
func (ec *EntryController) Redirect(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		ec.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	entry, err := ec.entryService.GetEntry(id)
	if err != nil {
		ec.sendServiceError(w, r, "Entry not found", err)
		return
	}
	http.Redirect(w, r, entry.URL(), http.StatusFound)
}

// Get handles fetching a single entry with its comments
func (ec *EntryController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		ec.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	entry, err := ec.entryService.GetEntry(id)
	if err != nil {
		ec.sendServiceError(w, r, "Entry not found", err)
		return
	}
	ec.sendJSON(w, http.StatusOK, newEntryResponse(entry))
}

// Create handles creating a new entry
func (ec *EntryController) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		ec.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := ec.entryService.CreateEntry(req.Title, req.Author, req.Body)
	if err != nil {
		ec.sendServiceError(w, r, "", err)
		return
	}
	ec.metrics.EntryCreated()
	logger.Log(r.Context()).Infow("entry created", "entry_id", entry.ID, "slug", entry.Slug)

	w.Header().Set("Location", entry.URL())
	ec.sendJSON(w, http.StatusCreated, newEntryResponse(entry))
}

// Update handles editing an existing entry
func (ec *EntryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		ec.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		ec.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := ec.entryService.SaveEntry(&models.Entry{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Body:   req.Body,
	})
	if err != nil {
		ec.sendServiceError(w, r, "Entry not found", err)
		return
	}
	ec.sendJSON(w, http.StatusOK, newEntryResponse(entry))
}

// Delete handles deleting an entry and its comments
func (ec *EntryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		ec.sendError(w, r, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	if err := ec.entryService.DeleteEntry(id); err != nil {
		ec.sendServiceError(w, r, "Entry not found", err)
		return
	}
	logger.Log(r.Context()).Infow("entry deleted", "entry_id", id)
	w.WriteHeader(http.StatusNoContent)
}
