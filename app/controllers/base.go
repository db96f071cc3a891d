package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"myblog/app/logger"
	"myblog/app/metrics"
	"myblog/app/models"
	"myblog/app/views"

	"github.com/gorilla/mux"
)

// base holds what every controller needs to answer a request.
type base struct {
	views   *views.Renderer
	metrics *metrics.Metrics
}

// isAPI reports whether the client expects JSON.
func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api") || r.Header.Get("Accept") == "application/json"
}

func (b *base) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (b *base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPI(r) {
		b.sendJSON(w, status, map[string]string{"error": message})
		return
	}
	if b.views == nil {
		http.Error(w, message, status)
		return
	}
	if err := b.views.RenderError(w, status, message); err != nil {
		logger.Log(r.Context()).Errorf("failed to render error page: %v", err)
		http.Error(w, message, status)
	}
}

// sendValidationError answers 422 with the rejected fields.
func (b *base) sendValidationError(w http.ResponseWriter, verr *models.ValidationError) {
	b.sendJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

// sendServiceError maps a service error onto a response: validation errors
// become 422, missing records 404 and anything else a logged 500.
func (b *base) sendServiceError(w http.ResponseWriter, r *http.Request, notFound string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		b.sendValidationError(w, verr)
	case isNotFound(err):
		b.sendError(w, r, notFound, http.StatusNotFound)
	default:
		logger.Log(r.Context()).Errorf("request failed: %v", err)
		b.sendError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}

func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	if err := b.views.Render(w, status, page, data); err != nil {
		logger.Log(r.Context()).Errorf("template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathInt reads a numeric route variable.
func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// pagination reads the page and per_page query parameters. Missing or
// invalid values are returned as zero so the service applies its defaults.
func pagination(r *http.Request) (page, perPage int) {
	q := r.URL.Query()
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil && pp > 0 {
		perPage = pp
	}
	return page, perPage
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
