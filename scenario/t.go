package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/page"
)

// failNow is the panic value used by T.FailNow to abort a scenario.
type failNow struct{}

// T is handed to a running scenario. It satisfies require.TestingT, so testify assertions can be used
// directly; a failed require assertion aborts the scenario as an assertion failure.
type T struct {
	ctx     context.Context
	name    string
	session *browser.Session
	base    *page.Base
	logger  *slog.Logger

	failures    []string
	screenshots []string
	cleanups    []func()
}

func newT(ctx context.Context, name string, session *browser.Session, base *page.Base, logger *slog.Logger) *T {
	return &T{
		ctx:     ctx,
		name:    name,
		session: session,
		base:    base,
		logger:  logger,
	}
}

// Errorf records an assertion failure and lets the scenario continue.
func (t *T) Errorf(format string, args ...any) {
	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	t.failures = append(t.failures, message)
	t.logger.Error("Assertion failed", slog.String("failure", message))
}

// FailNow aborts the scenario.
func (t *T) FailNow() {
	panic(failNow{})
}

func (t *T) Helper() {}

// Failed reports whether an assertion failed.
func (t *T) Failed() bool {
	return len(t.failures) > 0
}

func (t *T) Name() string {
	return t.name
}

// Context is canceled when the run is aborted.
func (t *T) Context() context.Context {
	return t.ctx
}

// Session is the browser session exclusively owned by this scenario.
func (t *T) Session() *browser.Session {
	return t.session
}

// Base is the page helper bound to the session.
func (t *T) Base() *page.Base {
	return t.base
}

func (t *T) Logger() *slog.Logger {
	return t.logger
}

// Step logs a progress event of the scenario.
func (t *T) Step(message string, args ...any) {
	t.logger.Info(message, args...)
}

// URL resolves a path on the demo site.
func (t *T) URL(path string) string {
	return t.base.Resolve(path)
}

// Screenshot captures the active window. Failures are logged and do not affect the scenario.
func (t *T) Screenshot(name string) {
	path, err := t.base.CaptureScreenshot(name)
	if err != nil {
		t.logger.Warn("Screenshot failed", slog.String("name", name), slog.Any("err", err))
		return
	}
	t.screenshots = append(t.screenshots, path)
}

// TempDir creates a directory removed after the scenario.
func (t *T) TempDir() (string, error) {
	dir, err := os.MkdirTemp("", "pagetour-scenario-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir, nil
}

// Cleanup registers fn to run after the scenario, before the session is closed. Functions run in reverse order.
func (t *T) Cleanup(fn func()) {
	t.cleanups = append(t.cleanups, fn)
}

func (t *T) runCleanups() {
	for _, fn := range slices.Backward(t.cleanups) {
		t.runCleanup(fn)
	}
	t.cleanups = nil
}

// runCleanup runs fn and logs a panic instead of letting it skip the remaining cleanups.
func (t *T) runCleanup(fn func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			t.logger.Error("Cleanup panicked", slog.String("scenario", t.name), slog.Any("panic", recovered), slog.String("stack", string(debug.Stack())))
		}
	}()
	fn()
}

func (t *T) failureMessage() string {
	return strings.Join(t.failures, "\n")
}
