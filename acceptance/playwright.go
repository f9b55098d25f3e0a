//go:build acceptance
// +build acceptance

package acceptance

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/browser"
)

// BrowserFixture owns a playwright driver that opens isolated sessions.
type BrowserFixture struct {
	Provider *browser.Provider
}

// NewBrowserFixture starts the playwright driver.
// Set HEADLESS=false environment variable to run with visible browser for debugging.
func NewBrowserFixture(t *testing.T, logger *slog.Logger) *BrowserFixture {
	t.Helper()

	options := browser.DefaultOptions()
	options.Logger = logger

	provider, err := browser.NewProvider(options)
	require.NoError(t, err, "failed to start playwright")

	return &BrowserFixture{Provider: provider}
}

// NewSession opens a session with a fresh profile that is closed when the test ends.
func (bf *BrowserFixture) NewSession(t *testing.T) *browser.Session {
	t.Helper()

	session, err := bf.Provider.OpenSession(context.Background())
	require.NoError(t, err, "failed to open browser session")
	t.Cleanup(func() { _ = session.Close() })

	return session
}

// Close releases all Playwright resources.
func (bf *BrowserFixture) Close() {
	_ = bf.Provider.Close()
}
