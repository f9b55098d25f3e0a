package page

import (
	"log/slog"
	"strings"
	"time"
)

// SecureHeading is the heading of the secure area.
const SecureHeading = "Secure Area"

var (
	secureSuccessBanner = CSS(".flash.success")
	secureBannerClose   = CSS(".flash .close")
	secureLogoutButton  = CSS("a[href='/logout']")
	secureHeading       = TagName("h2")
)

// SecurePage is the area reached after a successful login.
type SecurePage struct {
	*Base
}

// NewSecurePage binds a secure page to the session of base. It does not navigate.
func NewSecurePage(base *Base) *SecurePage {
	return &SecurePage{Base: base}
}

func (p *SecurePage) PageURL() string {
	return p.Resolve("/secure")
}

// IsOnSecurePage reports whether the active window shows the secure area.
func (p *SecurePage) IsOnSecurePage() bool {
	return strings.Contains(p.URL(), "secure")
}

func (p *SecurePage) SuccessMessage() (string, error) {
	text, err := p.ReadText(secureSuccessBanner)
	if err != nil {
		return "", err
	}
	return cleanFlashText(text), nil
}

func (p *SecurePage) IsSuccessDisplayed() bool {
	return p.IsVisibleWithin(secureSuccessBanner, 2*time.Second)
}

func (p *SecurePage) Heading() (string, error) {
	return p.ReadText(secureHeading)
}

func (p *SecurePage) IsLogoutVisible() bool {
	return p.IsVisible(secureLogoutButton)
}

// Logout closes the success banner if present, clicks logout and returns the login page it lands on.
func (p *SecurePage) Logout() (*LoginPage, error) {
	if p.IsVisibleWithin(secureBannerClose, time.Second) {
		if err := p.Click(secureBannerClose); err != nil {
			p.logger.Warn("Could not close banner", slog.Any("err", err))
		} else {
			p.tryScreenshot("secure_page_banner_CLOSED.png")
		}
	}

	if err := p.Click(secureLogoutButton); err != nil {
		return nil, err
	}
	if err := p.WaitUntilURLContains("/login", p.options.Wait); err != nil {
		return nil, err
	}
	if _, err := p.WaitUntilVisible(loginHeading, p.options.Wait); err != nil {
		return nil, err
	}

	p.tryScreenshot("after_logout_login_page.png")

	p.logger.Info("Logged out")
	return NewLoginPage(p.Base), nil
}
