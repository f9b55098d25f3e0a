package scenario

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/capture"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExecute_Classification(t *testing.T) {
	tests := []struct {
		name            string
		run             func(t *T) error
		expectedStatus  Status
		expectedMessage string
	}{
		{
			name:           "passed",
			run:            func(t *T) error { return nil },
			expectedStatus: StatusPassed,
		},
		{
			name: "require aborts as assertion failure",
			run: func(st *T) error {
				require.Equal(st, "Secure Area", "Login Page")
				panic("not reached")
			},
			expectedStatus:  StatusFailed,
			expectedMessage: "Not equal",
		},
		{
			name: "assert records failure and continues",
			run: func(st *T) error {
				assert.True(st, false, "checkbox should be checked")
				return nil
			},
			expectedStatus:  StatusFailed,
			expectedMessage: "checkbox should be checked",
		},
		{
			name:            "error is unexpected",
			run:             func(t *T) error { return errors.New("timed out waiting for id=finish") },
			expectedStatus:  StatusErrored,
			expectedMessage: "timed out waiting for id=finish",
		},
		{
			name:            "panic is unexpected",
			run:             func(t *T) error { panic("boom") },
			expectedStatus:  StatusErrored,
			expectedMessage: "panic: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newT(context.Background(), tt.name, nil, nil, discardLogger())

			status, message := execute(st, tt.run)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Contains(t, message, tt.expectedMessage)
		})
	}
}

func TestT_Cleanups(t *testing.T) {
	st := newT(context.Background(), "cleanup", nil, nil, discardLogger())

	var order []int
	st.Cleanup(func() { order = append(order, 1) })
	st.Cleanup(func() { order = append(order, 2) })

	_, _ = execute(st, func(t *T) error {
		t.FailNow()
		return nil
	})
	st.runCleanups()

	assert.Equal(t, []int{2, 1}, order)
}

func TestT_PanickingCleanup(t *testing.T) {
	logs := capture.NewLog()
	defer logs.Close()
	st := newT(context.Background(), "cleanup", nil, nil, slog.New(capture.NewSlogHandler(logs, slog.LevelDebug)))

	var ran bool
	st.Cleanup(func() { ran = true })
	st.Cleanup(func() { panic("cleanup boom") })

	require.NotPanics(t, st.runCleanups)

	assert.True(t, ran)
	assert.True(t, lo.ContainsBy(logs.Records(), func(r slog.Record) bool {
		return r.Level == slog.LevelError && r.Message == "Cleanup panicked"
	}))
}

func TestFailureScreenshotName(t *testing.T) {
	assert.Equal(t, "login_invalid_empty_assertion_error.png", failureScreenshotName("login_invalid/empty", StatusFailed))
	assert.Equal(t, "alerts_js_error.png", failureScreenshotName("alerts_js", StatusErrored))
}

type failingOpener struct {
	calls int
}

func (o *failingOpener) OpenSession(context.Context) (*browser.Session, error) {
	o.calls++
	return nil, errors.New("browser not installed")
}

func TestRunner_SessionFailureIsolated(t *testing.T) {
	opener := &failingOpener{}
	runner := NewRunner(opener, RunnerOptions{Handler: discardLogger().Handler()})
	defer runner.Close()

	sub := capture.Subscribe(t, runner.Subscribe)

	var ran bool
	results := runner.Run(context.Background(), []Scenario{
		{Name: "first", Tags: []string{TagSmoke}, Run: func(t *T) error { ran = true; return nil }},
		{Name: "second", Run: func(t *T) error { ran = true; return nil }},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 2, opener.calls)
	assert.False(t, ran)
	for _, result := range results {
		assert.Equal(t, StatusErrored, result.Status)
		assert.Contains(t, result.Message, "browser not installed")
		assert.NotEmpty(t, result.Logs)
	}
	assert.Equal(t, []string{TagSmoke}, results[0].Tags)

	published := sub.Wait(2)
	assert.Equal(t, "first", published[0].Scenario)
	assert.Equal(t, "second", published[1].Scenario)
}

func TestRunner_CanceledContext(t *testing.T) {
	opener := &failingOpener{}
	runner := NewRunner(opener, RunnerOptions{Handler: discardLogger().Handler()})
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := runner.Run(ctx, []Scenario{{Name: "first", Run: func(t *T) error { return nil }}})

	require.Len(t, results, 1)
	assert.Equal(t, StatusErrored, results[0].Status)
	assert.Contains(t, results[0].Message, "not started")
	assert.Zero(t, opener.calls)
}
