package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"

	"github.com/networkteam/pagetour/browser"
	"github.com/networkteam/pagetour/capture"
	"github.com/networkteam/pagetour/page"
)

// Status is the outcome of a scenario.
type Status string

const (
	StatusPassed Status = "passed"
	// StatusFailed means an expectation did not hold.
	StatusFailed Status = "failed"
	// StatusErrored means an unexpected error, timeout or panic.
	StatusErrored Status = "error"
)

// Result is the outcome of one scenario run.
type Result struct {
	Scenario    string
	Description string
	Tags        []string
	Status      Status
	Message     string
	StartedAt   time.Time
	Duration    time.Duration
	Screenshots []string
	Logs        []slog.Record
}

// SessionOpener opens a fresh browser session per scenario.
type SessionOpener interface {
	OpenSession(ctx context.Context) (*browser.Session, error)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Page configures the page helper of every scenario. Its Logger is replaced by the scenario logger.
	Page page.Options
	// Handler receives the log output of scenarios in addition to the per-scenario capture.
	// Default: slog.Default().Handler()
	Handler slog.Handler
	// CaptureLevel is the minimum level of records kept in results.
	// Default: slog.LevelInfo
	CaptureLevel slog.Leveler
	// LogCapacity is the maximum number of records kept per scenario.
	// Default: capture.DefaultLogOptions().Capacity
	LogCapacity int
}

// Runner runs scenarios serially, each in its own session.
type Runner struct {
	opener   SessionOpener
	options  RunnerOptions
	logger   *slog.Logger
	notifier *capture.Notifier[Result]
}

func NewRunner(opener SessionOpener, options RunnerOptions) *Runner {
	if options.Handler == nil {
		options.Handler = slog.Default().Handler()
	}
	if options.CaptureLevel == nil {
		options.CaptureLevel = slog.LevelInfo
	}
	if options.LogCapacity <= 0 {
		options.LogCapacity = capture.DefaultLogOptions().Capacity
	}

	return &Runner{
		opener:   opener,
		options:  options,
		logger:   slog.New(options.Handler),
		notifier: capture.NewNotifier[Result](),
	}
}

// Subscribe returns a channel receiving every finished result.
func (r *Runner) Subscribe(ctx context.Context) <-chan Result {
	return r.notifier.Subscribe(ctx)
}

// Close ends all subscriptions.
func (r *Runner) Close() {
	r.notifier.Close()
}

// Run executes scenarios in order. A failing scenario never affects the following ones.
// Scenarios not started because ctx was canceled are reported as errored.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) []Result {
	r.logger.Info("Collected scenarios", slog.Int("count", len(scenarios)))

	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		result := r.runOne(ctx, s)
		results = append(results, result)
		r.notifier.Publish(result)
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, s Scenario) Result {
	log := capture.NewLogWithOptions(capture.LogOptions{Capacity: r.options.LogCapacity})
	defer log.Close()

	logger := slog.New(slogmulti.Fanout(
		r.options.Handler,
		capture.NewSlogHandler(log, r.options.CaptureLevel),
	)).With(slog.String("scenario", s.Name))

	result := Result{
		Scenario:    s.Name,
		Description: s.Description,
		Tags:        s.Tags,
		StartedAt:   time.Now(),
	}

	logger.Info("Starting scenario")
	result.Status, result.Message, result.Screenshots = r.runInSession(ctx, s, logger)
	result.Duration = time.Since(result.StartedAt)

	switch result.Status {
	case StatusPassed:
		logger.Info("Scenario passed", slog.Duration("duration", result.Duration))
	case StatusFailed:
		logger.Error("Scenario failed", slog.String("failure", result.Message), slog.Duration("duration", result.Duration))
	default:
		logger.Error("Scenario errored", slog.String("err", result.Message), slog.Duration("duration", result.Duration))
	}

	result.Logs = log.Records()
	return result
}

func (r *Runner) runInSession(ctx context.Context, s Scenario, logger *slog.Logger) (Status, string, []string) {
	if err := ctx.Err(); err != nil {
		return StatusErrored, fmt.Sprintf("not started: %v", err), nil
	}

	session, err := r.opener.OpenSession(ctx)
	if err != nil {
		logger.Error("Could not open session", slog.Any("err", err))
		return StatusErrored, fmt.Sprintf("opening session: %v", err), nil
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("Could not close session", slog.Any("err", err))
		}
	}()

	pageOptions := r.options.Page
	pageOptions.Logger = logger
	t := newT(ctx, s.Name, session, page.NewBase(session, pageOptions), logger)
	defer t.runCleanups()

	status, message := execute(t, s.Run)
	if status != StatusPassed {
		t.Screenshot(failureScreenshotName(s.Name, status))
	}

	return status, message, t.screenshots
}

// execute runs fn and classifies its outcome. Panics are recovered.
func execute(t *T, fn func(t *T) error) (status Status, message string) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if _, ok := recovered.(failNow); ok {
			status, message = StatusFailed, t.failureMessage()
			return
		}
		t.logger.Error("Scenario panicked", slog.Any("panic", recovered), slog.String("stack", string(debug.Stack())))
		status, message = StatusErrored, fmt.Sprintf("panic: %v", recovered)
	}()

	err := fn(t)
	switch {
	case err != nil:
		message = err.Error()
		if t.Failed() {
			message = t.failureMessage() + "\n" + message
		}
		return StatusErrored, message
	case t.Failed():
		return StatusFailed, t.failureMessage()
	default:
		return StatusPassed, ""
	}
}

func failureScreenshotName(scenario string, status Status) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(scenario)
	if status == StatusFailed {
		return name + "_assertion_error.png"
	}
	return name + "_error.png"
}
