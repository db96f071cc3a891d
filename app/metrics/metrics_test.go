package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.EntryCreated()
	m.CommentCreated()
	m.CommentCreated()
	m.CommentRejected()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.entriesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commentRejections))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/entries", http.MethodGet, 200, 12*time.Millisecond)
	m.ObserveRequest("/api/entries", http.MethodGet, 200, 8*time.Millisecond)
	m.ObserveRequest("/api/entries", http.MethodPost, 422, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/entries", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/entries", "POST", "422")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.EntryCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "myblog_entries_created_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EntryCreated()
		m.CommentCreated()
		m.CommentRejected()
		m.ObserveRequest("/", "GET", 200, time.Millisecond)
	})
}
