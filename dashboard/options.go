package dashboard

// handlerOptions holds configuration for a dashboard Handler.
// This is unexported; use HandlerOption functions to configure.
type handlerOptions struct {
	// PathPrefix is where the handler is mounted (e.g. "/reports").
	PathPrefix string
	// Title is shown on the run list.
	Title string
	// ListLimit limits the number of runs shown in the run list.
	ListLimit int
	// ScreenshotsDir is served below /screenshots/, nothing is served if empty.
	ScreenshotsDir string
}

// HandlerOption configures a dashboard Handler.
type HandlerOption func(*handlerOptions)

// WithPathPrefix sets the path prefix where the handler is mounted.
// For example, "/reports" if mounted at that path.
// This is used for generating correct URLs in the pages.
func WithPathPrefix(prefix string) HandlerOption {
	return func(o *handlerOptions) {
		o.PathPrefix = prefix
	}
}

// WithTitle sets the heading of the run list.
// Default is report.DefaultTitle if not specified.
func WithTitle(title string) HandlerOption {
	return func(o *handlerOptions) {
		o.Title = title
	}
}

// WithListLimit limits the number of runs shown in the run list.
// Default is 50 if not specified.
func WithListLimit(limit int) HandlerOption {
	return func(o *handlerOptions) {
		o.ListLimit = limit
	}
}

// WithScreenshotsDir sets the directory screenshots are served from.
func WithScreenshotsDir(dir string) HandlerOption {
	return func(o *handlerOptions) {
		o.ScreenshotsDir = dir
	}
}
