package page

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/pagetour/browser"
)

const (
	// DefaultBaseURL is the demo site the page objects are written for.
	DefaultBaseURL = "https://the-internet.herokuapp.com"
	// DefaultWait is the budget of FindOne, FindAll, Click and the other implicit waits.
	DefaultWait = 10 * time.Second
	// DefaultPopupWait is the short budget for a transient popup to show up.
	DefaultPopupWait = 5 * time.Second
	// DefaultScreenshotsDir receives captured screenshots.
	DefaultScreenshotsDir = "screenshots"
)

// ErrTimeout is returned when an element or condition did not show up within the wait budget.
var ErrTimeout = errors.New("timed out")

// popupDismissButton is the OK button of the password-save prompt.
var popupDismissButton = XPath("//button[text()='OK']")

// Options configures a Base.
type Options struct {
	// BaseURL is prepended to page paths.
	// Default: DefaultBaseURL
	BaseURL string
	// Wait is the budget for implicit waits.
	// Default: DefaultWait
	Wait time.Duration
	// PopupWait is the budget of DismissTransientPopup.
	// Default: DefaultPopupWait
	PopupWait time.Duration
	// ScreenshotsDir is where CaptureScreenshot writes files. It is created if missing.
	// Default: DefaultScreenshotsDir
	ScreenshotsDir string
	// Logger receives a debug event per interaction.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Base wraps a session with element lookup and interaction helpers. Page types hold a *Base.
type Base struct {
	session *browser.Session
	options Options
	logger  *slog.Logger
}

// NewBase creates a Base operating on the active window of session.
func NewBase(session *browser.Session, options Options) *Base {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	options.BaseURL = strings.TrimSuffix(options.BaseURL, "/")
	if options.Wait <= 0 {
		options.Wait = DefaultWait
	}
	if options.PopupWait <= 0 {
		options.PopupWait = DefaultPopupWait
	}
	if options.ScreenshotsDir == "" {
		options.ScreenshotsDir = DefaultScreenshotsDir
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Base{
		session: session,
		options: options,
		logger:  options.Logger,
	}
}

// Session returns the wrapped session.
func (b *Base) Session() *browser.Session {
	return b.session
}

// Page returns the active window of the session.
func (b *Base) Page() playwright.Page {
	return b.session.Page()
}

// Resolve returns the absolute URL of a path on the site.
func (b *Base) Resolve(path string) string {
	return b.options.BaseURL + "/" + strings.TrimPrefix(path, "/")
}

// Navigate loads url in the active window.
func (b *Base) Navigate(url string) error {
	b.logger.Debug("Navigating", slog.String("url", url))
	if _, err := b.Page().Goto(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Title returns the document title.
func (b *Base) Title() (string, error) {
	title, err := b.Page().Title()
	if err != nil {
		return "", fmt.Errorf("reading title: %w", err)
	}
	return title, nil
}

// URL returns the current location.
func (b *Base) URL() string {
	return b.Page().URL()
}

// FindOne waits for the first element matching loc to be attached.
func (b *Base) FindOne(loc Locator) (playwright.Locator, error) {
	return b.waitFor(loc, playwright.WaitForSelectorStateAttached, b.options.Wait)
}

// FindAll waits for at least one element matching loc and returns all matches.
func (b *Base) FindAll(loc Locator) ([]playwright.Locator, error) {
	if _, err := b.FindOne(loc); err != nil {
		return nil, err
	}
	elements, err := b.Page().Locator(loc.Selector()).All()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", loc, err)
	}
	return elements, nil
}

// Click waits for loc to be visible and enabled, then clicks it.
func (b *Base) Click(loc Locator) error {
	element, err := b.WaitUntilClickable(loc, b.options.Wait)
	if err != nil {
		return err
	}
	b.logger.Debug("Clicking", slog.String("locator", loc.String()))
	if err := element.Click(); err != nil {
		return fmt.Errorf("clicking %s: %w", loc, err)
	}
	return nil
}

// SetText replaces the value of the input matching loc with text.
func (b *Base) SetText(loc Locator, text string) error {
	element, err := b.FindOne(loc)
	if err != nil {
		return err
	}
	b.logger.Debug("Typing", slog.String("locator", loc.String()))
	if err := element.Clear(); err != nil {
		return fmt.Errorf("clearing %s: %w", loc, err)
	}
	if err := element.Fill(text); err != nil {
		return fmt.Errorf("typing into %s: %w", loc, err)
	}
	return nil
}

// ReadText returns the rendered text of the first element matching loc.
func (b *Base) ReadText(loc Locator) (string, error) {
	element, err := b.FindOne(loc)
	if err != nil {
		return "", err
	}
	text, err := element.InnerText()
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", loc, err)
	}
	return text, nil
}

// IsVisible reports whether loc becomes visible within the default wait. It never returns a timeout.
func (b *Base) IsVisible(loc Locator) bool {
	return b.IsVisibleWithin(loc, b.options.Wait)
}

// IsVisibleWithin is IsVisible with an explicit budget.
func (b *Base) IsVisibleWithin(loc Locator, timeout time.Duration) bool {
	_, err := b.WaitUntilVisible(loc, timeout)
	if err != nil && !errors.Is(err, ErrTimeout) {
		b.logger.Debug("Visibility check failed", slog.String("locator", loc.String()), slog.Any("err", err))
	}
	return err == nil
}

// IsEnabled reports whether the first element matching loc is enabled.
func (b *Base) IsEnabled(loc Locator) (bool, error) {
	element, err := b.FindOne(loc)
	if err != nil {
		return false, err
	}
	enabled, err := element.IsEnabled()
	if err != nil {
		return false, fmt.Errorf("checking %s enabled: %w", loc, err)
	}
	return enabled, nil
}

// WaitUntilVisible waits up to timeout for loc to be visible.
func (b *Base) WaitUntilVisible(loc Locator, timeout time.Duration) (playwright.Locator, error) {
	return b.waitFor(loc, playwright.WaitForSelectorStateVisible, timeout)
}

// WaitUntilClickable waits up to timeout for loc to be visible, stable, enabled and not covered by another element.
func (b *Base) WaitUntilClickable(loc Locator, timeout time.Duration) (playwright.Locator, error) {
	deadline := time.Now().Add(timeout)
	element, err := b.WaitUntilVisible(loc, timeout)
	if err != nil {
		return nil, err
	}

	// A trial click runs the actionability checks without clicking
	err = element.Click(playwright.LocatorClickOptions{
		Trial:   playwright.Bool(true),
		Timeout: timeoutMillis(time.Until(deadline)),
	})
	if err != nil {
		return nil, waitError(loc.String()+" to be clickable", err)
	}
	return element, nil
}

// WaitUntilURLContains waits up to timeout for the current location to contain fragment.
func (b *Base) WaitUntilURLContains(fragment string, timeout time.Duration) error {
	err := b.Page().WaitForURL(regexp.MustCompile(regexp.QuoteMeta(fragment)), playwright.PageWaitForURLOptions{
		Timeout:   timeoutMillis(timeout),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	if err != nil {
		return waitError(fmt.Sprintf("URL containing %q", fragment), err)
	}
	return nil
}

// CaptureScreenshot writes the viewport of the active window to name in the screenshots directory
// and returns the file path. Errors are always returned; callers decide whether a screenshot is optional.
func (b *Base) CaptureScreenshot(name string) (string, error) {
	if err := os.MkdirAll(b.options.ScreenshotsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating screenshots directory: %w", err)
	}

	path := filepath.Join(b.options.ScreenshotsDir, name)
	if _, err := b.Page().Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		return "", fmt.Errorf("capturing screenshot %s: %w", name, err)
	}

	b.logger.Debug("Captured screenshot", slog.String("path", path))
	return path, nil
}

// DismissTransientPopup closes the password-save prompt if it shows up within the popup wait.
// It returns false without error or screenshot when there is no popup.
func (b *Base) DismissTransientPopup() bool {
	button, err := b.WaitUntilClickable(popupDismissButton, b.options.PopupWait)
	if err != nil {
		b.logger.Debug("No popup to dismiss", slog.Any("err", err))
		return false
	}

	b.tryScreenshot("password_popup_VISIBLE.png")

	if err := button.Click(); err != nil {
		b.logger.Warn("Could not click popup button", slog.Any("err", err))
		return false
	}
	b.Page().WaitForTimeout(1000)

	b.tryScreenshot("password_popup_DISMISSED.png")

	b.logger.Info("Dismissed password popup")
	return true
}

// tryScreenshot captures a screenshot that must not fail the calling action.
func (b *Base) tryScreenshot(name string) {
	if _, err := b.CaptureScreenshot(name); err != nil {
		b.logger.Warn("Screenshot failed", slog.String("name", name), slog.Any("err", err))
	}
}

func (b *Base) waitFor(loc Locator, state *playwright.WaitForSelectorState, timeout time.Duration) (playwright.Locator, error) {
	element := b.Page().Locator(loc.Selector()).First()
	err := element.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: timeoutMillis(timeout),
	})
	if err != nil {
		return nil, waitError(loc.String(), err)
	}
	return element, nil
}

// timeoutMillis converts a wait budget to playwright milliseconds.
// Playwright reads 0 as no timeout, so budgets below one millisecond become one millisecond.
func timeoutMillis(d time.Duration) *float64 {
	return playwright.Float(float64(max(d, time.Millisecond).Milliseconds()))
}

func waitError(target string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w waiting for %s: %w", ErrTimeout, target, err)
	}
	return fmt.Errorf("waiting for %s: %w", target, err)
}
