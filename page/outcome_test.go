package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/networkteam/pagetour/page"
)

func TestLoginOutcome(t *testing.T) {
	secure := page.NewSecurePage(nil)

	loggedIn := page.LoggedIn(secure)
	assert.True(t, loggedIn.Succeeded())
	got, ok := loggedIn.SecurePage()
	assert.True(t, ok)
	assert.Same(t, secure, got)
	_, failed := loggedIn.ErrorText()
	assert.False(t, failed)
	assert.Equal(t, "logged in", loggedIn.String())

	rejected := page.Failed("Your username is invalid!")
	assert.False(t, rejected.Succeeded())
	text, ok := rejected.ErrorText()
	assert.True(t, ok)
	assert.Equal(t, "Your username is invalid!", text)
	_, ok = rejected.SecurePage()
	assert.False(t, ok)
	assert.Equal(t, "failed: Your username is invalid!", rejected.String())
}
