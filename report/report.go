// Package report holds the results of a scenario run and writes the machine readable summary.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/networkteam/pagetour/scenario"
)

const (
	// DefaultTitle is the title of run reports.
	DefaultTitle = "Selenium Mastery Project - Test Report"
	// DefaultDir receives written reports.
	DefaultDir = "reports"
	// LatestFile is the name of the JSON summary of the most recent run.
	LatestFile = "latest.json"
)

// Run is one invocation of the runner with its results.
type Run struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	BaseURL    string    `json:"baseUrl"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Results    []Result  `json:"results"`
}

// Result is the reported outcome of one scenario.
type Result struct {
	Scenario    string          `json:"scenario"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Status      scenario.Status `json:"status"`
	Message     string          `json:"message,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	Duration    time.Duration   `json:"duration"`
	Screenshots []string        `json:"screenshots,omitempty"`
	Logs        []LogEntry      `json:"logs,omitempty"`
}

// Summary counts results per status.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
}

// NewRun starts a run with a new random id.
func NewRun(title, baseURL string) *Run {
	if title == "" {
		title = DefaultTitle
	}
	return &Run{
		ID:        uuid.Must(uuid.NewV4()),
		Title:     title,
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}
}

// Add appends the result of a scenario.
func (r *Run) Add(result scenario.Result) {
	r.Results = append(r.Results, FromScenario(result))
}

// Finish records the end time of the run.
func (r *Run) Finish() {
	r.FinishedAt = time.Now()
}

// Duration is the wall time of a finished run.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Run) Summary() Summary {
	counts := lo.CountValuesBy(r.Results, func(result Result) scenario.Status { return result.Status })
	return Summary{
		Total:   len(r.Results),
		Passed:  counts[scenario.StatusPassed],
		Failed:  counts[scenario.StatusFailed],
		Errored: counts[scenario.StatusErrored],
	}
}

// Succeeded reports whether every scenario passed.
func (r *Run) Succeeded() bool {
	s := r.Summary()
	return s.Passed == s.Total
}

// FromScenario converts a runner result.
func FromScenario(result scenario.Result) Result {
	return Result{
		Scenario:    result.Scenario,
		Description: result.Description,
		Tags:        result.Tags,
		Status:      result.Status,
		Message:     result.Message,
		StartedAt:   result.StartedAt,
		Duration:    result.Duration,
		Screenshots: result.Screenshots,
		Logs:        lo.Map(result.Logs, func(record slog.Record, _ int) LogEntry { return NewLogEntry(record) }),
	}
}

// WriteJSON writes the run to LatestFile in dir, creating dir if needed.
func WriteJSON(run *Run, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	path := filepath.Join(dir, LatestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Overview is a run without its results, as listed by a history.
type Overview struct {
	ID         uuid.UUID
	Title      string
	BaseURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    Summary
}

// Overview summarizes the run.
func (r *Run) Overview() Overview {
	return Overview{
		ID:         r.ID,
		Title:      r.Title,
		BaseURL:    r.BaseURL,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Summary:    r.Summary(),
	}
}

// Duration is the wall time of the run.
func (o Overview) Duration() time.Duration {
	if o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}
