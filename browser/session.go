package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is one running browser with its own profile. It is owned by a single scenario and must not be shared.
type Session struct {
	context    playwright.BrowserContext
	profileDir string
	logger     *slog.Logger

	mu      sync.Mutex
	active  playwright.Page
	dialogs []*DialogResult

	closeOnce sync.Once
	closeErr  error
}

func newSession(browserContext playwright.BrowserContext, profileDir string, timeout time.Duration, logger *slog.Logger) (*Session, error) {
	browserContext.SetDefaultTimeout(float64(timeout.Milliseconds()))
	browserContext.SetDefaultNavigationTimeout(float64(timeout.Milliseconds()))

	// A persistent context starts with one blank page
	var page playwright.Page
	if pages := browserContext.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		var err error
		page, err = browserContext.NewPage()
		if err != nil {
			return nil, fmt.Errorf("opening page: %w", err)
		}
	}

	s := &Session{
		context:    browserContext,
		profileDir: profileDir,
		logger:     logger,
		active:     page,
	}
	browserContext.OnDialog(s.handleDialog)

	return s, nil
}

// Page returns the window the session currently operates on.
func (s *Session) Page() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Pages returns all open windows and tabs in opening order.
func (s *Session) Pages() []playwright.Page {
	return s.context.Pages()
}

// SwitchTo makes page the active window and brings it to the front.
func (s *Session) SwitchTo(page playwright.Page) error {
	if err := page.BringToFront(); err != nil {
		return fmt.Errorf("switching window: %w", err)
	}

	s.mu.Lock()
	s.active = page
	s.mu.Unlock()

	return nil
}

// WaitForNewPage runs action and returns the window it opened, loaded up to the load event.
// The active window is not changed.
func (s *Session) WaitForNewPage(action func() error) (playwright.Page, error) {
	page, err := s.context.ExpectPage(action)
	if err != nil {
		return nil, fmt.Errorf("waiting for new window: %w", err)
	}
	if err := page.WaitForLoadState(); err != nil {
		return nil, fmt.Errorf("waiting for new window to load: %w", err)
	}
	return page, nil
}

// CloseOthers closes every window except keep and makes keep the active one.
func (s *Session) CloseOthers(keep playwright.Page) error {
	for _, page := range s.context.Pages() {
		if page == keep {
			continue
		}
		if err := page.Close(); err != nil {
			return fmt.Errorf("closing window %s: %w", page.URL(), err)
		}
	}
	return s.SwitchTo(keep)
}

// Close closes the browser and removes the profile directory. Calling Close again returns the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		if err := os.RemoveAll(s.profileDir); err != nil {
			errs = append(errs, fmt.Errorf("removing profile directory: %w", err))
		}
		s.closeErr = errors.Join(errs...)

		s.logger.Debug("Closed browser session", slog.String("profile", s.profileDir))
	})
	return s.closeErr
}
