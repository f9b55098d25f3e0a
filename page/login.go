package page

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LoginHeading is the heading of the login page.
const LoginHeading = "Login Page"

var (
	loginUsernameField = ID("username")
	loginPasswordField = ID("password")
	loginSubmitButton  = CSS("button[type='submit']")
	loginErrorBanner   = CSS(".flash.error")
	loginHeading       = TagName("h2")
)

// LoginPage is the form authentication page.
type LoginPage struct {
	*Base
}

// NewLoginPage binds a login page to the session of base. It does not navigate.
func NewLoginPage(base *Base) *LoginPage {
	return &LoginPage{Base: base}
}

// PageURL is the absolute URL of the login page.
func (p *LoginPage) PageURL() string {
	return p.Resolve("/login")
}

// Open navigates to the login page.
func (p *LoginPage) Open() error {
	return p.Navigate(p.PageURL())
}

func (p *LoginPage) EnterUsername(username string) error {
	return p.SetText(loginUsernameField, username)
}

func (p *LoginPage) EnterPassword(password string) error {
	return p.SetText(loginPasswordField, password)
}

func (p *LoginPage) ClickLogin() error {
	return p.Click(loginSubmitButton)
}

// Login submits the credentials and waits for the next page to decide the outcome.
// An error is only returned when the form could not be used or neither outcome showed up.
func (p *LoginPage) Login(username, password string) (LoginOutcome, error) {
	p.logger.Info("Logging in", slog.String("username", username))

	if err := p.EnterUsername(username); err != nil {
		return LoginOutcome{}, err
	}
	if err := p.EnterPassword(password); err != nil {
		return LoginOutcome{}, err
	}
	if err := p.submitAndWait(); err != nil {
		return LoginOutcome{}, err
	}

	if strings.Contains(p.URL(), "/secure") {
		return LoggedIn(NewSecurePage(p.Base)), nil
	}

	text, err := p.ReadText(loginErrorBanner)
	if err != nil {
		return LoginOutcome{}, fmt.Errorf("login neither reached the secure area nor showed an error: %w", err)
	}
	return Failed(cleanFlashText(text)), nil
}

// submitAndWait clicks the submit button and waits until the resulting document shows a flash banner.
// The marker set on the current document disappears with the navigation.
func (p *LoginPage) submitAndWait() error {
	if _, err := p.Page().Evaluate(`() => { window.__pagetourSubmitted = true }`); err != nil {
		return fmt.Errorf("marking login form: %w", err)
	}
	if err := p.ClickLogin(); err != nil {
		return err
	}
	_, err := p.Page().WaitForFunction(
		`() => window.__pagetourSubmitted === undefined && document.querySelector('#flash, .flash') !== null`,
		nil,
		playwright.PageWaitForFunctionOptions{
			Timeout: timeoutMillis(p.options.Wait),
		},
	)
	if err != nil {
		return waitError("login response", err)
	}
	return nil
}

// ErrorMessage returns the text of the error banner.
func (p *LoginPage) ErrorMessage() (string, error) {
	text, err := p.ReadText(loginErrorBanner)
	if err != nil {
		return "", err
	}
	return cleanFlashText(text), nil
}

// IsErrorDisplayed reports whether the error banner is visible.
func (p *LoginPage) IsErrorDisplayed() bool {
	return p.IsVisibleWithin(loginErrorBanner, 2*time.Second)
}

func (p *LoginPage) Heading() (string, error) {
	return p.ReadText(loginHeading)
}

// cleanFlashText strips the close mark rendered inside flash banners.
func cleanFlashText(text string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "×"))
}
