package capture_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/capture"
)

func TestRequestRecorder_Middleware(t *testing.T) {
	logs := capture.NewLog()
	defer logs.Close()
	logger := slog.New(capture.NewSlogHandler(logs, slog.LevelDebug))

	recorder := capture.NewRequestRecorder(10, logger, "/static/")
	handler := recorder.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			_, _ = io.WriteString(w, "hello")
		}
	}))

	for _, path := range []string{"/", "/missing", "/static/app.css"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	requests := recorder.Requests()
	require.Len(t, requests, 2)

	assert.Equal(t, "/", requests[0].Path)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, http.StatusOK, requests[0].StatusCode)
	assert.Equal(t, int64(5), requests[0].Size)
	assert.NotEqual(t, uuid.Nil, requests[0].ID)

	assert.Equal(t, "/missing", requests[1].Path)
	assert.Equal(t, http.StatusNotFound, requests[1].StatusCode)

	assert.True(t, lo.ContainsBy(logs.Records(), func(r slog.Record) bool {
		return r.Message == "Served request"
	}))
}

func TestRequestRecorder_KeepsMostRecent(t *testing.T) {
	recorder := capture.NewRequestRecorder(2, nil)
	handler := recorder.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, path := range []string{"/a", "/b", "/c"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	requests := recorder.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/b", requests[0].Path)
	assert.Equal(t, "/c", requests[1].Path)
	assert.Equal(t, http.StatusOK, requests[1].StatusCode)
}
