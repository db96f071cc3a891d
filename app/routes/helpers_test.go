package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"myblog/app/metrics"
	"myblog/app/models"
	"myblog/app/repositories"
	"myblog/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router   *mux.Router
	store    *repositories.Store
	entries  *services.EntryService
	comments *services.CommentService
	metrics  *metrics.Metrics
}

func setupTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	store, err := repositories.OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestApp(t *testing.T, store *repositories.Store) *testApp {
	t.Helper()
	m := metrics.New()
	return &testApp{
		router:   SetupRoutes(store, Options{PerPage: 10, Metrics: m}),
		store:    store,
		entries:  services.NewEntryService(store.Entries, store.Comments),
		comments: services.NewCommentService(store.Comments, store.Entries),
		metrics:  m,
	}
}

func (a *testApp) createEntry(t *testing.T, title, body string) *models.Entry {
	t.Helper()
	entry, err := a.entries.CreateEntry(title, "some_user", body)
	require.NoError(t, err)
	return entry
}

func (a *testApp) createComment(t *testing.T, entry *models.Entry, name, email, body string) *models.Comment {
	t.Helper()
	comment, err := a.comments.CreateComment(entry.ID, name, email, body)
	require.NoError(t, err)
	return comment
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}
