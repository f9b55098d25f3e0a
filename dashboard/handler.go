// Package dashboard serves recorded runs as HTML reports and exports single reports as static files.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/gofrs/uuid"

	"github.com/networkteam/pagetour/history"
	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/report/views"
)

// RunStore provides recorded runs.
type RunStore interface {
	ListRuns(ctx context.Context, limit int) ([]report.Overview, error)
	GetRun(ctx context.Context, id uuid.UUID) (*report.Run, error)
}

type Handler struct {
	store   RunStore
	options handlerOptions

	mux http.Handler
}

func NewHandler(store RunStore, opts ...HandlerOption) *Handler {
	options := handlerOptions{
		Title:     report.DefaultTitle,
		ListLimit: 50,
	}
	for _, opt := range opts {
		opt(&options)
	}

	mux := http.NewServeMux()
	handler := &Handler{
		store:   store,
		options: options,

		mux: setHandlerOptions(options, mux),
	}

	mux.HandleFunc("GET /{$}", handler.root)
	mux.HandleFunc("GET /latest", handler.latest)
	mux.HandleFunc("GET /runs/{runId}", handler.getRun)
	mux.HandleFunc("GET /runs/{runId}/json", handler.getRunJSON)

	if options.ScreenshotsDir != "" {
		mux.Handle("GET /screenshots/", http.StripPrefix("/screenshots", http.FileServer(http.Dir(options.ScreenshotsDir))))
	}

	return handler
}

func setHandlerOptions(options handlerOptions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = views.WithHandlerOptions(ctx, views.HandlerOptions{
			PathPrefix: options.PathPrefix,
		})
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns(r.Context(), h.options.ListLimit)
	if err != nil {
		h.serverError(w, r, "Listing runs failed", err)
		return
	}

	templ.Handler(views.RunList(h.options.Title, runs)).ServeHTTP(w, r)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns(r.Context(), 1)
	if err != nil {
		h.serverError(w, r, "Listing runs failed", err)
		return
	}
	if len(runs) == 0 {
		http.Redirect(w, r, fmt.Sprintf("%s/", h.options.PathPrefix), http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/runs/%s", h.options.PathPrefix, runs[0].ID), http.StatusTemporaryRedirect)
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	templ.Handler(views.RunPage(run)).ServeHTTP(w, r)
}

func (h *Handler) getRunJSON(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		slog.WarnContext(r.Context(), "Writing run failed", slog.Any("err", err))
	}
}

func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*report.Run, bool) {
	runID, err := uuid.FromString(r.PathValue("runId"))
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return nil, false
	}

	run, err := h.store.GetRun(r.Context(), runID)
	if errors.Is(err, history.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, "Loading run failed", err)
		return nil, false
	}
	return run, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, slog.Any("err", err))
	http.Error(w, msg, http.StatusInternalServerError)
}

// ExportRun writes the report of run as <id>.html into dir, linking screenshots relative to it.
func ExportRun(run *report.Run, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	ctx := views.WithHandlerOptions(context.Background(), views.HandlerOptions{
		ScreenshotURL: func(file string) string {
			return relativeURL(dir, file)
		},
	})

	var buf bytes.Buffer
	if err := views.RunPage(run).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	path := filepath.Join(dir, run.ID.String()+".html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func relativeURL(dir, file string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(file)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil {
		return filepath.ToSlash(absFile)
	}
	return filepath.ToSlash(rel)
}
