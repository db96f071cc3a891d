package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myblog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	r := Must()

	t.Run("no entries", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, r.Render(w, http.StatusOK, EntryIndex, map[string]interface{}{
			"Entries":  []*models.Entry{},
			"PrevPage": 0,
			"NextPage": 0,
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "No blog entries yet.")
	})

	t.Run("entries link to permalinks", func(t *testing.T) {
		entry := &models.Entry{ID: 3, Title: "1-title", Body: "1-body", Author: "some_user"}
		entry.Stamp(time.Date(2014, 1, 2, 0, 0, 0, 0, time.UTC))

		w := httptest.NewRecorder()
		require.NoError(t, r.Render(w, http.StatusOK, EntryIndex, map[string]interface{}{
			"Entries":  []*models.Entry{entry},
			"PrevPage": 0,
			"NextPage": 2,
		}))
		body := w.Body.String()
		assert.Contains(t, body, `href="/2014/1/2/3-1-title/"`)
		assert.Contains(t, body, "1-body")
		assert.Contains(t, body, "January 2, 2014")
		assert.Contains(t, body, "/?page=2")
		assert.NotContains(t, body, "No blog entries yet.")
	})
}

func TestRenderEscapesUserContent(t *testing.T) {
	r := Must()
	entry := &models.Entry{ID: 1, Title: "<script>alert(1)</script>", Author: "x"}

	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, EntryIndex, map[string]interface{}{
		"Entries": []*models.Entry{entry},
	}))
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestRenderUnknownPage(t *testing.T) {
	w := httptest.NewRecorder()
	err := Must().Render(w, http.StatusOK, "nope", nil)
	assert.Error(t, err)
	assert.Zero(t, w.Body.Len())
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, Must().RenderError(w, http.StatusNotFound, "Entry not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
	assert.Contains(t, w.Body.String(), "Entry not found")
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Body.String(), ".comment")
}
