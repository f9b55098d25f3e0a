package scenarios

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/scenario"
)

func herokuappLogin(t *scenario.T) error {
	login := page.NewLoginPage(t.Base())
	if err := login.Open(); err != nil {
		return err
	}

	outcome, err := login.Login(ValidUsername, ValidPassword)
	if err != nil {
		return err
	}
	secure, ok := outcome.SecurePage()
	require.True(t, ok, "expected to be logged in, got %s", outcome)

	message, err := secure.SuccessMessage()
	if err != nil {
		return err
	}
	assert.Contains(t, message, "You logged into a secure area!")
	assert.True(t, secure.IsLogoutVisible(), "logout link should be visible")

	t.Screenshot("herokuapp_login_success.png")
	return nil
}

func loginPageObjects(t *scenario.T) error {
	login := page.NewLoginPage(t.Base())
	if err := login.Open(); err != nil {
		return err
	}

	heading, err := login.Heading()
	if err != nil {
		return err
	}
	require.Equal(t, page.LoginHeading, heading)

	outcome, err := login.Login(ValidUsername, ValidPassword)
	if err != nil {
		return err
	}
	secure, ok := outcome.SecurePage()
	require.True(t, ok, "expected to be logged in, got %s", outcome)
	require.True(t, secure.IsOnSecurePage(), "expected secure URL, got %s", secure.URL())

	heading, err = secure.Heading()
	if err != nil {
		return err
	}
	assert.Contains(t, heading, page.SecureHeading)
	t.Step("Logged in through page objects", "url", secure.URL())

	login, err = secure.Logout()
	if err != nil {
		return err
	}

	outcome, err = login.Login(ValidUsername, "wrongpassword")
	if err != nil {
		return err
	}
	errorText, failed := outcome.ErrorText()
	require.True(t, failed, "expected login to fail")
	assert.Contains(t, strings.ToLower(errorText), "invalid")
	assert.True(t, login.IsErrorDisplayed(), "error banner should be visible")

	return nil
}

func loginLogout(t *scenario.T) error {
	login := page.NewLoginPage(t.Base())
	if err := login.Open(); err != nil {
		return err
	}

	outcome, err := login.Login(ValidUsername, ValidPassword)
	if err != nil {
		return err
	}
	secure, ok := outcome.SecurePage()
	require.True(t, ok, "expected to be logged in, got %s", outcome)

	dismissed := secure.DismissTransientPopup()
	t.Step("Checked password popup", "dismissed", dismissed)

	require.True(t, secure.IsSuccessDisplayed(), "success banner should be visible")

	login, err = secure.Logout()
	if err != nil {
		return err
	}

	heading, err := login.Heading()
	if err != nil {
		return err
	}
	assert.Equal(t, page.LoginHeading, heading)
	return nil
}

type credentials struct {
	Username string
	Password string
}

func invalidLoginScenarios() []scenario.Scenario {
	return scenario.Cases("login_invalid", "Reject invalid credentials", []string{scenario.TagLogin},
		[]scenario.Case[credentials]{
			{Name: "empty", Data: credentials{"", ""}},
			{Name: "unknown_user", Data: credentials{"wronguser", "wrongpass"}},
			{Name: "bad_password", Data: credentials{ValidUsername, "badpassword"}},
		},
		invalidLogin,
	)
}

func invalidLogin(t *scenario.T, creds credentials) error {
	login := page.NewLoginPage(t.Base())
	if err := login.Open(); err != nil {
		return err
	}

	outcome, err := login.Login(creds.Username, creds.Password)
	if err != nil {
		return err
	}

	errorText, failed := outcome.ErrorText()
	require.True(t, failed, "expected login to fail for %q", creds.Username)
	assert.Contains(t, strings.ToLower(errorText), "invalid")
	assert.Contains(t, login.URL(), "/login")
	return nil
}
