package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/playwright-community/playwright-go"
)

// Provider owns the playwright driver and opens isolated browser sessions.
type Provider struct {
	pw      *playwright.Playwright
	options Options
	logger  *slog.Logger
}

// Install downloads the Chromium build used by sessions. Driver output is discarded unless verbose is set.
func Install(verbose bool) error {
	runOptions := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  verbose,
	}
	if !verbose {
		runOptions.Stdout = io.Discard
		runOptions.Stderr = io.Discard
	}
	if err := playwright.Install(runOptions); err != nil {
		return fmt.Errorf("installing playwright browsers: %w", err)
	}
	return nil
}

// NewProvider starts the playwright driver.
func NewProvider(options Options) (*Provider, error) {
	options = options.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	return &Provider{
		pw:      pw,
		options: options,
		logger:  options.Logger,
	}, nil
}

// OpenSession launches a new browser with a fresh temporary profile.
// The returned session must be closed by the caller.
func (p *Provider) OpenSession(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profileDir, err := os.MkdirTemp("", p.options.ProfileDirPattern)
	if err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}

	browserContext, err := p.pw.Chromium.LaunchPersistentContext(profileDir, p.options.persistentContextOptions())
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("launching browser: %w", err),
			os.RemoveAll(profileDir),
		)
	}

	session, err := newSession(browserContext, profileDir, p.options.ActionTimeout, p.logger)
	if err != nil {
		return nil, errors.Join(err, browserContext.Close(), os.RemoveAll(profileDir))
	}

	p.logger.Debug("Opened browser session", slog.String("profile", profileDir), slog.Bool("headless", p.options.Headless))

	return session, nil
}

// Close stops the playwright driver. Sessions must be closed before.
func (p *Provider) Close() error {
	if err := p.pw.Stop(); err != nil {
		return fmt.Errorf("stopping playwright: %w", err)
	}
	return nil
}
