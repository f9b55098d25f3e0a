package browser

import (
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	// DefaultProfileDirPattern is the os.MkdirTemp pattern for isolated profile directories.
	DefaultProfileDirPattern = "pagetour-profile-*"
	// DefaultActionTimeout bounds every playwright action that is not given an explicit timeout.
	DefaultActionTimeout = 30 * time.Second
)

// defaultArgs keep a fresh profile free of password manager, autofill and notification prompts
// and open the window maximized.
var defaultArgs = []string{
	"--start-maximized",
	"--disable-save-password-bubble",
	"--disable-notifications",
	"--disable-infobars",
	"--disable-features=PasswordLeakDetection,AutofillServerCommunication",
	"--password-store=basic",
}

// suppressedDefaultArgs are playwright defaults removed from the launch command line.
var suppressedDefaultArgs = []string{
	"--enable-automation",
	"--enable-logging",
}

// Options configures how sessions are launched.
type Options struct {
	// Headless runs the browser without a visible window.
	// Default: true, unless the HEADLESS environment variable is "false"
	Headless bool
	// SlowMo delays every browser operation, useful when watching a headed run.
	// Default: 0
	SlowMo time.Duration
	// Args are additional browser command line arguments.
	Args []string
	// ActionTimeout is the default timeout for playwright actions and navigations.
	// Default: DefaultActionTimeout
	ActionTimeout time.Duration
	// ProfileDirPattern is the pattern for temporary profile directories.
	// Default: DefaultProfileDirPattern
	ProfileDirPattern string
	// Logger receives session lifecycle events.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns options for a maximized, isolated Chromium session.
func DefaultOptions() Options {
	return Options{
		Headless:          os.Getenv("HEADLESS") != "false",
		ActionTimeout:     DefaultActionTimeout,
		ProfileDirPattern: DefaultProfileDirPattern,
	}
}

func (o Options) withDefaults() Options {
	if o.ActionTimeout <= 0 {
		o.ActionTimeout = DefaultActionTimeout
	}
	if o.ProfileDirPattern == "" {
		o.ProfileDirPattern = DefaultProfileDirPattern
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// launchArgs merges the default arguments with the configured ones, dropping duplicates.
func (o Options) launchArgs() []string {
	args := slices.Clone(defaultArgs)
	for _, arg := range o.Args {
		if !slices.Contains(args, arg) {
			args = append(args, arg)
		}
	}
	return args
}

func (o Options) persistentContextOptions() playwright.BrowserTypeLaunchPersistentContextOptions {
	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:          playwright.Bool(o.Headless),
		Args:              o.launchArgs(),
		IgnoreDefaultArgs: slices.Clone(suppressedDefaultArgs),
		// The window size follows the maximized window instead of a fixed viewport
		NoViewport:      playwright.Bool(true),
		AcceptDownloads: playwright.Bool(true),
	}
	if o.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(o.SlowMo.Milliseconds()))
	}
	return opts
}
