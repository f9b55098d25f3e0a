package demoapp_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/demoapp"
)

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestApp_LoginFlow(t *testing.T) {
	srv := httptest.NewServer(demoapp.New(demoapp.Options{}))
	defer srv.Close()
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/authenticate", url.Values{
		"username": {demoapp.DefaultUsername},
		"password": {demoapp.DefaultPassword},
	})
	require.NoError(t, err)
	body := getBody(t, resp)

	assert.Equal(t, "/secure", resp.Request.URL.Path)
	assert.Contains(t, body, "Secure Area")
	assert.Contains(t, body, "You logged into a secure area!")
	assert.Contains(t, body, `href="/logout"`)

	// The flash message is shown once
	resp, err = client.Get(srv.URL + "/secure")
	require.NoError(t, err)
	assert.NotContains(t, getBody(t, resp), "You logged into a secure area!")

	resp, err = client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	body = getBody(t, resp)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "You logged out of the secure area!")
	assert.Contains(t, body, "Login Page")
}

func TestApp_RejectsInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(demoapp.New(demoapp.Options{}))
	defer srv.Close()

	tests := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"empty", "", "", "Your username is invalid!"},
		{"unknown user", "wronguser", "wrongpass", "Your username is invalid!"},
		{"bad password", "tomsmith", "badpassword", "Your password is invalid!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t)
			resp, err := client.PostForm(srv.URL+"/authenticate", url.Values{
				"username": {tt.username},
				"password": {tt.password},
			})
			require.NoError(t, err)
			body := getBody(t, resp)

			assert.Equal(t, "/login", resp.Request.URL.Path)
			assert.Contains(t, body, `class="flash error"`)
			assert.Contains(t, body, tt.message)
		})
	}
}

func TestApp_SecureRequiresLogin(t *testing.T) {
	srv := httptest.NewServer(demoapp.New(demoapp.Options{}))
	defer srv.Close()

	resp, err := newClient(t).Get(srv.URL + "/secure")
	require.NoError(t, err)
	body := getBody(t, resp)

	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "You must login to view the secure area!")
}

func TestApp_ServesExamples(t *testing.T) {
	srv := httptest.NewServer(demoapp.New(demoapp.Options{}))
	defer srv.Close()

	resp, err := newClient(t).Get(srv.URL + "/")
	require.NoError(t, err)
	body := getBody(t, resp)
	assert.Contains(t, body, "<title>The Internet</title>")
	assert.Contains(t, body, "Add/Remove Elements")

	for _, path := range []string{"/checkboxes", "/dropdown", "/dynamic_loading/1", "/dynamic_loading/2", "/javascript_alerts", "/windows", "/windows/new", "/password_popup", "/add_remove_elements/"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApp_RecordsRequests(t *testing.T) {
	app := demoapp.New(demoapp.Options{RequestHistory: 2})
	srv := httptest.NewServer(app)
	defer srv.Close()

	for _, path := range []string{"/", "/checkboxes", "/does-not-exist"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_ = getBody(t, resp)
	}

	requests := app.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/checkboxes", requests[0].Path)
	assert.Equal(t, http.StatusOK, requests[0].StatusCode)
	assert.Equal(t, "/does-not-exist", requests[1].Path)
	assert.Equal(t, http.StatusNotFound, requests[1].StatusCode)
}
