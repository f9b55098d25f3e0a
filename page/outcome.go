package page

import "fmt"

// LoginOutcome is the result of submitting the login form: either LoggedIn with the secure page,
// or Failed with the error banner text.
type LoginOutcome struct {
	secure    *SecurePage
	errorText string
}

// LoggedIn is the outcome of a successful login.
func LoggedIn(secure *SecurePage) LoginOutcome {
	return LoginOutcome{secure: secure}
}

// Failed is the outcome of a rejected login.
func Failed(errorText string) LoginOutcome {
	return LoginOutcome{errorText: errorText}
}

// Succeeded reports whether the login was accepted.
func (o LoginOutcome) Succeeded() bool {
	return o.secure != nil
}

// SecurePage returns the secure page of a successful login.
func (o LoginOutcome) SecurePage() (*SecurePage, bool) {
	return o.secure, o.secure != nil
}

// ErrorText returns the error banner text of a failed login.
func (o LoginOutcome) ErrorText() (string, bool) {
	return o.errorText, o.secure == nil
}

func (o LoginOutcome) String() string {
	if o.Succeeded() {
		return "logged in"
	}
	return fmt.Sprintf("failed: %s", o.errorText)
}
