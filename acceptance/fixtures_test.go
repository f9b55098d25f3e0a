//go:build acceptance
// +build acceptance

package acceptance

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/page"
)

// TestFixtures bundles all commonly needed test fixtures.
type TestFixtures struct {
	App            *TestApp
	Browser        *BrowserFixture
	Session        *browser.Session
	Base           *page.Base
	ScreenshotsDir string
}

// PageOptions returns page options pointing at the test app with short waits.
func (f *TestFixtures) PageOptions() page.Options {
	return page.Options{
		BaseURL:        f.App.URL,
		Wait:           3 * time.Second,
		PopupWait:      time.Second,
		ScreenshotsDir: f.ScreenshotsDir,
		Logger:         f.App.Logger,
	}
}

// WithTestFixtures creates all fixtures, registers cleanup with t.Cleanup(), and calls the test function.
// This reduces boilerplate in tests by handling the common setup pattern.
func WithTestFixtures(t *testing.T, fn func(t *testing.T, f *TestFixtures)) {
	t.Helper()

	app := NewTestApp(t)
	t.Cleanup(func() { app.Close() })

	bf := NewBrowserFixture(t, app.Logger)
	t.Cleanup(func() { bf.Close() })

	f := &TestFixtures{
		App:            app,
		Browser:        bf,
		Session:        bf.NewSession(t),
		ScreenshotsDir: filepath.Join(t.TempDir(), "screenshots"),
	}
	f.Base = page.NewBase(f.Session, f.PageOptions())

	fn(t, f)
}

// WithTestApp creates only the test app and browser fixtures (useful when sessions are opened by the code under test).
func WithTestApp(t *testing.T, fn func(t *testing.T, app *TestApp, bf *BrowserFixture)) {
	t.Helper()

	app := NewTestApp(t)
	t.Cleanup(func() { app.Close() })

	bf := NewBrowserFixture(t, app.Logger)
	t.Cleanup(func() { bf.Close() })

	fn(t, app, bf)
}
