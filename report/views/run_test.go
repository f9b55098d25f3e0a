package views_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/report/views"
	"github.com/networkteam/pagetour/scenario"
)

func render(t *testing.T, ctx context.Context, run func(ctx context.Context, buf *bytes.Buffer) error) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, run(ctx, &buf))
	return buf.String()
}

func TestRunPage(t *testing.T) {
	run := report.NewRun("", "http://localhost:8080")
	run.Results = []report.Result{
		{
			Scenario: "herokuapp_login",
			Tags:     []string{"smoke", "login"},
			Status:   scenario.StatusPassed,
			Duration: 1200 * time.Millisecond,
			Logs: []report.LogEntry{
				{Time: time.Now(), Level: "INFO", Message: "Logged in", Attrs: map[string]any{"url": "http://localhost:8080/secure"}},
			},
		},
		{
			Scenario:    "login_invalid/empty",
			Status:      scenario.StatusFailed,
			Message:     `expected "<b>invalid</b>"`,
			Screenshots: []string{"screenshots/login_invalid_empty_assertion_error.png"},
		},
	}
	run.Finish()

	ctx := views.WithHandlerOptions(context.Background(), views.HandlerOptions{PathPrefix: "/reports"})
	html := render(t, ctx, func(ctx context.Context, buf *bytes.Buffer) error {
		return views.RunPage(run).Render(ctx, buf)
	})

	assert.Contains(t, html, "<title>Selenium Mastery Project - Test Report</title>")
	assert.Contains(t, html, "Total: 2")
	assert.Contains(t, html, "Passed: 1")
	assert.Contains(t, html, "Failed: 1")
	assert.Contains(t, html, `<span class="badge badge-success">passed</span>`)
	assert.Contains(t, html, `<span class="badge badge-warning">failed</span>`)
	assert.Contains(t, html, "Tags: smoke, login")
	assert.Contains(t, html, "&lt;b&gt;invalid&lt;/b&gt;")
	assert.NotContains(t, html, "<b>invalid</b>")
	assert.Contains(t, html, `src="/reports/screenshots/login_invalid_empty_assertion_error.png"`)
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, "Logged in")
}

func TestRunPage_CustomScreenshotURL(t *testing.T) {
	run := report.NewRun("Nightly", "")
	run.Results = []report.Result{{
		Scenario:    "alerts_js",
		Status:      scenario.StatusErrored,
		Screenshots: []string{"/tmp/out/screenshots/alerts_js_error.png"},
	}}

	ctx := views.WithHandlerOptions(context.Background(), views.HandlerOptions{
		ScreenshotURL: func(file string) string { return "../screenshots/x.png" },
	})
	html := render(t, ctx, func(ctx context.Context, buf *bytes.Buffer) error {
		return views.RunPage(run).Render(ctx, buf)
	})

	assert.Contains(t, html, `src="../screenshots/x.png"`)
	assert.Contains(t, html, `<span class="badge badge-error">error</span>`)
}

func TestRunList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	passing := report.NewRun("Nightly", "")
	passing.StartedAt = now.Add(-5 * time.Minute)
	passing.FinishedAt = now.Add(-4 * time.Minute)
	passing.Results = []report.Result{{Scenario: "a", Status: scenario.StatusPassed}}

	failing := report.NewRun("Nightly", "")
	failing.StartedAt = now.Add(-2 * time.Hour)
	failing.Results = []report.Result{{Scenario: "a", Status: scenario.StatusFailed}}

	ctx := views.WithHandlerOptions(context.Background(), views.HandlerOptions{
		Now: func() time.Time { return now },
	})
	html := render(t, ctx, func(ctx context.Context, buf *bytes.Buffer) error {
		return views.RunList("Runs", []report.Overview{passing.Overview(), failing.Overview()}).Render(ctx, buf)
	})

	assert.Contains(t, html, `href="/runs/`+passing.ID.String()+`"`)
	assert.Contains(t, html, "5 minutes ago")
	assert.Contains(t, html, "2 hours ago")
	assert.Contains(t, html, "1m0s")
	assert.Contains(t, html, `<span class="badge badge-error">failed</span>`)
}

func TestRunList_Empty(t *testing.T) {
	html := render(t, context.Background(), func(ctx context.Context, buf *bytes.Buffer) error {
		return views.RunList("Runs", nil).Render(ctx, buf)
	})

	assert.Contains(t, html, "No runs recorded yet.")
}

func TestRunPage_HeaderLinksToPrefix(t *testing.T) {
	run := report.NewRun("Nightly", "")

	ctx := views.WithHandlerOptions(context.Background(), views.HandlerOptions{PathPrefix: "/reports"})
	html := render(t, ctx, func(ctx context.Context, buf *bytes.Buffer) error {
		return views.RunPage(run).Render(ctx, buf)
	})

	assert.Contains(t, html, `<header><a href="/reports/">Nightly</a></header>`)
	assert.Contains(t, html, "Total: 0")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRunPage_ReturnsWriteErrors(t *testing.T) {
	run := report.NewRun("Nightly", "")
	run.Results = []report.Result{{Scenario: "a", Status: scenario.StatusPassed}}

	err := views.RunPage(run).Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "broken pipe")
}
