package report_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/scenario"
)

func TestRun_Summary(t *testing.T) {
	run := report.NewRun("", "http://localhost")
	assert.Equal(t, report.DefaultTitle, run.Title)
	assert.False(t, run.ID.IsNil())

	run.Add(scenario.Result{Scenario: "herokuapp_login", Status: scenario.StatusPassed})
	run.Add(scenario.Result{Scenario: "login_invalid/empty", Status: scenario.StatusFailed, Message: "Not equal"})
	run.Add(scenario.Result{Scenario: "alerts_js", Status: scenario.StatusErrored})
	run.Add(scenario.Result{Scenario: "forms_dropdown", Status: scenario.StatusPassed})

	assert.Equal(t, report.Summary{Total: 4, Passed: 2, Failed: 1, Errored: 1}, run.Summary())
	assert.False(t, run.Succeeded())
	assert.Zero(t, run.Duration())

	run.Finish()
	assert.GreaterOrEqual(t, run.Duration(), time.Duration(0))
}

func TestNewLogEntry(t *testing.T) {
	record := slog.NewRecord(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelWarn, "Screenshot failed", 0)
	record.AddAttrs(
		slog.String("scenario", "login_logout"),
		slog.Any("err", errors.New("disk full")),
		slog.Duration("duration", 1500*time.Millisecond),
		slog.Group("page", slog.String("locator", "id=username")),
		slog.Group("page", slog.Int("attempt", 2)),
	)

	entry := report.NewLogEntry(record)

	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "Screenshot failed", entry.Message)
	assert.Equal(t, "login_logout", entry.Attrs["scenario"])
	assert.Equal(t, "disk full", entry.Attrs["err"])
	assert.Equal(t, "1.5s", entry.Attrs["duration"])
	assert.Equal(t, map[string]any{"locator": "id=username", "attempt": int64(2)}, entry.Attrs["page"])
}

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	run := report.NewRun("Nightly", "http://localhost")
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "Logging in", 0)
	run.Add(scenario.Result{
		Scenario: "herokuapp_login",
		Status:   scenario.StatusPassed,
		Duration: 2 * time.Second,
		Logs:     []slog.Record{record},
	})
	run.Finish()

	path, err := report.WriteJSON(run, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, report.LatestFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded report.Run
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, "Nightly", decoded.Title)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, scenario.StatusPassed, decoded.Results[0].Status)
	require.Len(t, decoded.Results[0].Logs, 1)
	assert.Equal(t, "Logging in", decoded.Results[0].Logs[0].Message)
}
