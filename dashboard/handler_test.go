package dashboard_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/dashboard"
	"github.com/networkteam/pagetour/history"
	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/scenario"
)

type fakeStore struct {
	runs []*report.Run
}

func (s *fakeStore) ListRuns(_ context.Context, limit int) ([]report.Overview, error) {
	var overviews []report.Overview
	for _, run := range s.runs {
		if limit > 0 && len(overviews) == limit {
			break
		}
		overviews = append(overviews, run.Overview())
	}
	return overviews, nil
}

func (s *fakeStore) GetRun(_ context.Context, id uuid.UUID) (*report.Run, error) {
	for _, run := range s.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", history.ErrRunNotFound, id)
}

func newRun(statuses ...scenario.Status) *report.Run {
	run := report.NewRun("", "http://localhost")
	for i, status := range statuses {
		run.Add(scenario.Result{Scenario: fmt.Sprintf("scenario_%d", i), Status: status})
	}
	run.Finish()
	return run
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_RunList(t *testing.T) {
	latest := newRun(scenario.StatusPassed)
	store := &fakeStore{runs: []*report.Run{latest, newRun(scenario.StatusFailed)}}
	handler := dashboard.NewHandler(store, dashboard.WithPathPrefix("/reports"), dashboard.WithTitle("Nightly runs"))

	rec := get(t, handler, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Nightly runs</title>")
	assert.Contains(t, body, `href="/reports/runs/`+latest.ID.String()+`"`)
	assert.Equal(t, 2, strings.Count(body, `<tr><td><a href=`))
}

func TestHandler_RunDetail(t *testing.T) {
	run := newRun(scenario.StatusPassed, scenario.StatusErrored)
	handler := dashboard.NewHandler(&fakeStore{runs: []*report.Run{run}})

	rec := get(t, handler, "/runs/"+run.ID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scenario_1")
	assert.Contains(t, rec.Body.String(), "Errors: 1")
}

func TestHandler_RunJSON(t *testing.T) {
	run := newRun(scenario.StatusPassed)
	handler := dashboard.NewHandler(&fakeStore{runs: []*report.Run{run}})

	rec := get(t, handler, "/runs/"+run.ID.String()+"/json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded report.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, run.ID, decoded.ID)
}

func TestHandler_RunErrors(t *testing.T) {
	handler := dashboard.NewHandler(&fakeStore{})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "invalid id", target: "/runs/not-a-uuid", status: http.StatusBadRequest},
		{name: "unknown run", target: "/runs/" + uuid.Must(uuid.NewV4()).String(), status: http.StatusNotFound},
		{name: "unknown route", target: "/events", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, handler, tt.target).Code)
		})
	}
}

func TestHandler_Latest(t *testing.T) {
	t.Run("redirects to most recent run", func(t *testing.T) {
		run := newRun(scenario.StatusPassed)
		handler := dashboard.NewHandler(&fakeStore{runs: []*report.Run{run}}, dashboard.WithPathPrefix("/reports"))

		rec := get(t, handler, "/latest")

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/reports/runs/"+run.ID.String(), rec.Header().Get("Location"))
	})

	t.Run("redirects to list without runs", func(t *testing.T) {
		handler := dashboard.NewHandler(&fakeStore{})

		rec := get(t, handler, "/latest")

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestHandler_Screenshots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login_page.png"), []byte("png"), 0o644))

	handler := dashboard.NewHandler(&fakeStore{}, dashboard.WithScreenshotsDir(dir))

	rec := get(t, handler, "/screenshots/login_page.png")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
}

func TestExportRun(t *testing.T) {
	root := t.TempDir()
	reportsDir := filepath.Join(root, "reports")

	run := newRun(scenario.StatusFailed)
	run.Results[0].Screenshots = []string{filepath.Join(root, "screenshots", "scenario_0_assertion_error.png")}

	path, err := dashboard.ExportRun(run, reportsDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(reportsDir, run.ID.String()+".html"), path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), `src="../screenshots/scenario_0_assertion_error.png"`)
	assert.Contains(t, string(html), report.DefaultTitle)
}
