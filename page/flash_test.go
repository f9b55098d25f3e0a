package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFlashText(t *testing.T) {
	assert.Equal(t, "You logged into a secure area!", cleanFlashText("\n  You logged into a secure area!\n×\n"))
	assert.Equal(t, "Your password is invalid!", cleanFlashText("Your password is invalid!"))
}

func TestBase_Resolve(t *testing.T) {
	b := NewBase(nil, Options{BaseURL: "http://127.0.0.1:8080/"})
	assert.Equal(t, "http://127.0.0.1:8080/login", b.Resolve("/login"))
	assert.Equal(t, "http://127.0.0.1:8080/secure", b.Resolve("secure"))

	defaults := NewBase(nil, Options{})
	assert.Equal(t, DefaultBaseURL+"/login", NewLoginPage(defaults).PageURL())
	assert.Equal(t, DefaultWait, defaults.options.Wait)
	assert.Equal(t, DefaultPopupWait, defaults.options.PopupWait)
}
