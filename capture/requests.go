package capture

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// Request is a served HTTP request.
type Request struct {
	ID         uuid.UUID
	Method     string
	Path       string
	StatusCode int
	Size       int64
	Start      time.Time
	Duration   time.Duration
}

// RequestRecorder keeps the most recent requests served by a wrapped handler.
type RequestRecorder struct {
	buffer    *RingBuffer[Request]
	logger    *slog.Logger
	skipPaths []string
}

// NewRequestRecorder creates a recorder keeping at most capacity requests.
// A non-nil logger receives one debug record per request.
func NewRequestRecorder(capacity int, logger *slog.Logger, skipPaths ...string) *RequestRecorder {
	return &RequestRecorder{
		buffer:    NewRingBuffer[Request](capacity),
		logger:    logger,
		skipPaths: skipPaths,
	}
}

// Requests returns the recorded requests, oldest first.
func (rr *RequestRecorder) Requests() []Request {
	return rr.buffer.All()
}

// Middleware records every request passing through next.
func (rr *RequestRecorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range rr.skipPaths {
			if prefix != "" && strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		req := Request{
			ID:     uuid.Must(uuid.NewV4()),
			Method: r.Method,
			Path:   r.URL.Path,
			Start:  time.Now(),
		}

		rw := &recordingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		req.StatusCode = rw.statusCode
		req.Size = rw.size
		req.Duration = time.Since(req.Start)
		rr.buffer.Add(req)

		if rr.logger != nil {
			rr.logger.Debug("Served request",
				slog.String("method", req.Method),
				slog.String("path", req.Path),
				slog.Int("status", req.StatusCode),
				slog.Duration("duration", req.Duration),
			)
		}
	})
}

type recordingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

func (rw *recordingResponseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *recordingResponseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// Flush implements http.Flusher if the original response writer implements it
func (rw *recordingResponseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
