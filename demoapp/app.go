// Package demoapp serves a local replica of the demo site pages the page objects and scenarios use.
// It lets acceptance tests and offline runs work without the public site.
package demoapp

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/networkteam/pagetour/capture"
)

const (
	DefaultUsername = "tomsmith"
	DefaultPassword = "SuperSecretPassword!"

	sessionCookie = "pagetour_session"
	flashCookie   = "pagetour_flash"
)

// Options configures the replica.
type Options struct {
	// Username accepted by the login form.
	// Default: DefaultUsername
	Username string
	// Password accepted by the login form.
	// Default: DefaultPassword
	Password string
	// Logger receives one debug event per request.
	// Default: slog.Default()
	Logger *slog.Logger
	// RequestHistory is the number of served requests kept for Requests.
	// Default: 100
	RequestHistory int
}

// App is the replica http.Handler.
type App struct {
	options Options
	logger  *slog.Logger
	mux     *http.ServeMux

	recorder *capture.RequestRecorder
	handler  http.Handler
}

// New creates the replica handler.
func New(options Options) *App {
	if options.Username == "" {
		options.Username = DefaultUsername
	}
	if options.Password == "" {
		options.Password = DefaultPassword
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.RequestHistory <= 0 {
		options.RequestHistory = 100
	}

	app := &App{
		options: options,
		logger:  options.Logger,
		mux:     http.NewServeMux(),

		recorder: capture.NewRequestRecorder(options.RequestHistory, options.Logger),
	}
	app.handler = app.recorder.Middleware(app.mux)

	app.mux.HandleFunc("GET /{$}", app.staticPage("The Internet", homePage()))
	app.mux.HandleFunc("GET /login", app.login)
	app.mux.HandleFunc("POST /authenticate", app.authenticate)
	app.mux.HandleFunc("GET /secure", app.secure)
	app.mux.HandleFunc("GET /logout", app.logout)
	app.mux.HandleFunc("GET /password_popup", app.staticPage("The Internet", passwordPopupPage()))
	app.mux.HandleFunc("GET /add_remove_elements/", app.staticPage("The Internet", addRemovePage()))
	app.mux.HandleFunc("GET /checkboxes", app.staticPage("The Internet", checkboxesPage()))
	app.mux.HandleFunc("GET /dropdown", app.staticPage("The Internet", dropdownPage()))
	app.mux.HandleFunc("GET /dynamic_loading/1", app.staticPage("The Internet", dynamicLoadingHiddenPage()))
	app.mux.HandleFunc("GET /dynamic_loading/2", app.staticPage("The Internet", dynamicLoadingRenderedPage()))
	app.mux.HandleFunc("GET /javascript_alerts", app.staticPage("The Internet", javascriptAlertsPage()))
	app.mux.HandleFunc("GET /windows", app.staticPage("The Internet", windowsPage()))
	app.mux.HandleFunc("GET /windows/new", app.staticPage("New Window", newWindowPage()))

	return app
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Requests returns the most recently served requests, oldest first.
func (a *App) Requests() []capture.Request {
	return a.recorder.Requests()
}

func (a *App) staticPage(title string, content templ.Component) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templ.Handler(layout(title, takeFlash(w, r), content)).ServeHTTP(w, r)
	}
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	templ.Handler(layout("The Internet", takeFlash(w, r), loginPage())).ServeHTTP(w, r)
}

func (a *App) authenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	switch {
	case username != a.options.Username:
		setFlash(w, flash{Kind: "error", Message: "Your username is invalid!"})
	case password != a.options.Password:
		setFlash(w, flash{Kind: "error", Message: "Your password is invalid!"})
	default:
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "authenticated", Path: "/", HttpOnly: true})
		setFlash(w, flash{Kind: "success", Message: "You logged into a secure area!"})
		http.Redirect(w, r, "/secure", http.StatusFound)
		return
	}

	a.logger.Debug("Rejected login", slog.String("username", username))
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (a *App) secure(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err != nil || cookie.Value != "authenticated" {
		setFlash(w, flash{Kind: "error", Message: "You must login to view the secure area!"})
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	templ.Handler(layout("The Internet", takeFlash(w, r), securePage())).ServeHTTP(w, r)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	setFlash(w, flash{Kind: "success", Message: "You logged out of the secure area!"})
	http.Redirect(w, r, "/login", http.StatusFound)
}

type flash struct {
	Kind    string
	Message string
}

func setFlash(w http.ResponseWriter, f flash) {
	http.SetCookie(w, &http.Cookie{
		Name:  flashCookie,
		Value: url.QueryEscape(f.Kind + "|" + f.Message),
		Path:  "/",
	})
}

// takeFlash reads the pending flash message and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) *flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(value, "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: message}
}
