package views

import (
	"context"
	"path"
	"path/filepath"
	"time"
)

// HandlerOptions control how links are rendered.
type HandlerOptions struct {
	// PathPrefix where the report handler is mounted, empty for the root.
	PathPrefix string
	// ScreenshotURL maps a screenshot file path to the URL it is shown from.
	// Default: the base name below PathPrefix + "/screenshots/"
	ScreenshotURL func(file string) string
	// Now is used for relative times.
	// Default: time.Now
	Now func() time.Time
}

type handlerOptionsKey struct{}

func WithHandlerOptions(ctx context.Context, opts HandlerOptions) context.Context {
	return context.WithValue(ctx, handlerOptionsKey{}, opts)
}

func MustGetHandlerOptions(ctx context.Context) HandlerOptions {
	opts, ok := ctx.Value(handlerOptionsKey{}).(HandlerOptions)
	if !ok {
		opts = HandlerOptions{}
	}
	if opts.ScreenshotURL == nil {
		prefix := opts.PathPrefix
		opts.ScreenshotURL = func(file string) string {
			return path.Join(prefix+"/screenshots", filepath.Base(file))
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}
