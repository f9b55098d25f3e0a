package pagetour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/dashboard"
	"github.com/networkteam/pagetour/history"
	"github.com/networkteam/pagetour/page"
	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/scenario"
	"github.com/networkteam/pagetour/scenarios"
)

type Instance struct {
	options Options
	logger  *slog.Logger

	provider *browser.Provider
	registry *scenario.Registry
	runner   *scenario.Runner
	store    runStore
}

type runStore interface {
	dashboard.RunStore
	SaveRun(ctx context.Context, run *report.Run) error
}

type Options struct {
	// Browser configures launched sessions.
	// Default: nil, will use browser.DefaultOptions()
	Browser *browser.Options
	// Opener opens the session of every scenario.
	// Default: nil, will start a browser.Provider with Browser
	Opener scenario.SessionOpener
	// Page configures the page helpers handed to scenarios.
	// Default: zero value, see page.Options
	Page page.Options
	// Scenarios configures the built-in scenario set.
	// Default: zero value, see scenarios.Options
	Scenarios scenarios.Options

	// Handler receives all log output.
	// Default: slog.Default().Handler()
	Handler slog.Handler
	// CaptureLevel is the minimum level of log records attached to results.
	// Default: slog.LevelInfo
	CaptureLevel slog.Leveler

	// ReportsDir receives the JSON summary and an HTML report per run.
	// Default: report.DefaultDir
	ReportsDir string
	// ReportTitle is the title of reports.
	// Default: report.DefaultTitle
	ReportTitle string
	// HistoryPath is the SQLite database runs are stored in.
	// Default: "", runs are kept in memory for the lifetime of the instance
	HistoryPath string
	// MemoryHistorySize is the number of runs kept without HistoryPath.
	// Default: 20
	MemoryHistorySize int
}

// New creates an instance with default options.
func New(ctx context.Context) (*Instance, error) {
	return NewWithOptions(ctx, Options{})
}

// NewWithOptions creates an instance with the built-in scenarios registered.
// Default options are the zero value of Options.
func NewWithOptions(ctx context.Context, options Options) (*Instance, error) {
	if options.Handler == nil {
		options.Handler = slog.Default().Handler()
	}
	if options.ReportsDir == "" {
		options.ReportsDir = report.DefaultDir
	}
	if options.ReportTitle == "" {
		options.ReportTitle = report.DefaultTitle
	}
	if options.MemoryHistorySize <= 0 {
		options.MemoryHistorySize = 20
	}
	if options.Page.BaseURL == "" {
		options.Page.BaseURL = page.DefaultBaseURL
	}
	logger := slog.New(options.Handler)

	instance := &Instance{
		options:  options,
		logger:   logger,
		registry: scenario.NewRegistry(),
	}
	scenarios.Register(instance.registry, options.Scenarios)

	if options.HistoryPath != "" {
		store, err := history.Open(ctx, options.HistoryPath, history.Options{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		instance.store = store
	} else {
		instance.store = newMemoryStore(options.MemoryHistorySize)
	}

	opener := options.Opener
	if opener == nil {
		browserOptions := browser.DefaultOptions()
		if options.Browser != nil {
			browserOptions = *options.Browser
		}
		if browserOptions.Logger == nil {
			browserOptions.Logger = logger
		}

		provider, err := browser.NewProvider(browserOptions)
		if err != nil {
			return nil, errors.Join(err, instance.closeStore())
		}
		instance.provider = provider
		opener = provider
	}

	if options.Page.Logger == nil {
		options.Page.Logger = logger
	}
	instance.runner = scenario.NewRunner(opener, scenario.RunnerOptions{
		Page:         options.Page,
		Handler:      options.Handler,
		CaptureLevel: options.CaptureLevel,
	})

	return instance, nil
}

// Close stops the browser driver and closes the history.
func (i *Instance) Close() error {
	i.runner.Close()

	var errs []error
	if i.provider != nil {
		errs = append(errs, i.provider.Close())
	}
	errs = append(errs, i.closeStore())
	return errors.Join(errs...)
}

func (i *Instance) closeStore() error {
	if closer, ok := i.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Scenarios returns the registry of runnable scenarios. Custom scenarios can be added before Run.
func (i *Instance) Scenarios() *scenario.Registry {
	return i.registry
}

// Subscribe returns a channel receiving each scenario result as soon as it is finished.
func (i *Instance) Subscribe(ctx context.Context) <-chan scenario.Result {
	return i.runner.Subscribe(ctx)
}

// Run executes the selected scenarios, writes the reports and records the run in the history.
// A returned error means the selection was invalid or the run could not be recorded;
// failed scenarios are reported through the run.
func (i *Instance) Run(ctx context.Context, selection scenario.Selection) (*report.Run, error) {
	selected, err := i.registry.Select(selection)
	if err != nil {
		return nil, err
	}

	run := report.NewRun(i.options.ReportTitle, i.options.Page.BaseURL)
	for _, result := range i.runner.Run(ctx, selected) {
		run.Add(result)
	}
	run.Finish()

	summary := run.Summary()
	i.logger.Info("Finished run",
		slog.String("run", run.ID.String()),
		slog.Int("total", summary.Total),
		slog.Int("passed", summary.Passed),
		slog.Int("failed", summary.Failed),
		slog.Int("errored", summary.Errored),
		slog.Duration("duration", run.Duration()),
	)

	var errs []error
	if path, err := report.WriteJSON(run, i.options.ReportsDir); err != nil {
		errs = append(errs, err)
	} else {
		i.logger.Info("Wrote summary", slog.String("path", path))
	}
	if path, err := dashboard.ExportRun(run, i.options.ReportsDir); err != nil {
		errs = append(errs, err)
	} else {
		i.logger.Info("Wrote report", slog.String("path", path))
	}
	if err := i.store.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		errs = append(errs, fmt.Errorf("saving run: %w", err))
	}

	return run, errors.Join(errs...)
}

// ReportHandler serves the recorded runs and the screenshots directory.
func (i *Instance) ReportHandler(pathPrefix string) http.Handler {
	screenshotsDir := i.options.Page.ScreenshotsDir
	if screenshotsDir == "" {
		screenshotsDir = page.DefaultScreenshotsDir
	}

	return dashboard.NewHandler(i.store,
		dashboard.WithPathPrefix(pathPrefix),
		dashboard.WithTitle(i.options.ReportTitle),
		dashboard.WithScreenshotsDir(screenshotsDir),
	)
}
