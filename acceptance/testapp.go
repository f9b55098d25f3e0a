//go:build acceptance
// +build acceptance

package acceptance

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/networkteam/pagetour/capture"
	"github.com/networkteam/pagetour/demoapp"
)

// TestApp serves the demo site replica on a local port.
type TestApp struct {
	Server *httptest.Server
	URL    string
	// Site records the requests served to the browser.
	Site *demoapp.App
	// Logs captures the log output of the app and all fixtures using Logger.
	Logs   *capture.Log
	Logger *slog.Logger
}

// NewTestApp starts the demo site with its default credentials.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	logs := capture.NewLog()
	logger := slog.New(capture.NewSlogHandler(logs, slog.LevelDebug))

	site := demoapp.New(demoapp.Options{Logger: logger})
	server := httptest.NewServer(site)

	return &TestApp{
		Server: server,
		URL:    server.URL,
		Site:   site,
		Logs:   logs,
		Logger: logger,
	}
}

// Close shuts down the server and releases resources.
func (ta *TestApp) Close() {
	ta.Server.Close()
	ta.Logs.Close()
}
