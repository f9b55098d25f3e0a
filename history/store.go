// Package history keeps finished runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/networkteam/go-sqllogger"

	"github.com/networkteam/pagetour/report"
	"github.com/networkteam/pagetour/scenario"
)

// DefaultPath is the database file used by the CLI.
const DefaultPath = "reports/history.db"

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	base_url TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	total INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	errored INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	scenario TEXT NOT NULL,
	description TEXT NOT NULL,
	tags TEXT NOT NULL,
	status TEXT NOT NULL,
	message TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	duration INTEGER NOT NULL,
	screenshots TEXT NOT NULL,
	logs TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at DESC);
`

type Options struct {
	// Logger receives store messages and executed queries at debug level.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Store is a SQLite backed run history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string, options Options) (*Store, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "history"))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	connector := newSQLiteConnector(path + "?_foreign_keys=on&_busy_timeout=5000")
	db := sql.OpenDB(sqllogger.LoggingConnector(newQueryLogger(logger), connector))
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Debug("Opened history", slog.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores run and its results, replacing a previous version with the same id.
func (s *Store) SaveRun(ctx context.Context, run *report.Run) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	summary := run.Summary()
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, title, base_url, started_at, finished_at, total, passed, failed, errored)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Title, run.BaseURL, toNanos(run.StartedAt), toNanos(run.FinishedAt),
		summary.Total, summary.Passed, summary.Failed, summary.Errored,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM results WHERE run_id = ?`, run.ID.String()); err != nil {
		return fmt.Errorf("deleting results: %w", err)
	}

	for i, result := range run.Results {
		tags, err := marshalJSON(result.Tags)
		if err != nil {
			return err
		}
		screenshots, err := marshalJSON(result.Screenshots)
		if err != nil {
			return err
		}
		logs, err := marshalJSON(result.Logs)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (run_id, position, scenario, description, tags, status, message, started_at, duration, screenshots, logs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID.String(), i, result.Scenario, result.Description, tags, string(result.Status), result.Message,
			toNanos(result.StartedAt), int64(result.Duration), screenshots, logs,
		)
		if err != nil {
			return fmt.Errorf("inserting result %s: %w", result.Scenario, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	s.logger.Debug("Saved run", slog.String("run", run.ID.String()), slog.Int("results", len(run.Results)))

	return nil
}

// ListRuns returns at most limit runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]report.Overview, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, base_url, started_at, finished_at, total, passed, failed, errored
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []report.Overview
	for rows.Next() {
		var (
			o                     report.Overview
			id                    string
			startedAt, finishedAt int64
		)
		err := rows.Scan(&id, &o.Title, &o.BaseURL, &startedAt, &finishedAt,
			&o.Summary.Total, &o.Summary.Passed, &o.Summary.Failed, &o.Summary.Errored)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if o.ID, err = uuid.FromString(id); err != nil {
			return nil, fmt.Errorf("parsing run id: %w", err)
		}
		o.StartedAt = fromNanos(startedAt)
		o.FinishedAt = fromNanos(finishedAt)
		runs = append(runs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun loads a run with all results. It returns ErrRunNotFound for unknown ids.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*report.Run, error) {
	run := &report.Run{ID: id}

	var startedAt, finishedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT title, base_url, started_at, finished_at FROM runs WHERE id = ?`, id.String(),
	).Scan(&run.Title, &run.BaseURL, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	run.StartedAt = fromNanos(startedAt)
	run.FinishedAt = fromNanos(finishedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT scenario, description, tags, status, message, started_at, duration, screenshots, logs
		FROM results WHERE run_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			result                    report.Result
			status                    string
			tags, screenshots, logs   string
			resultStarted, durationNs int64
		)
		err := rows.Scan(&result.Scenario, &result.Description, &tags, &status, &result.Message,
			&resultStarted, &durationNs, &screenshots, &logs)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		result.Status = scenario.Status(status)
		result.StartedAt = fromNanos(resultStarted)
		result.Duration = time.Duration(durationNs)
		if err := unmarshalJSON(tags, &result.Tags); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(screenshots, &result.Screenshots); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(logs, &result.Logs); err != nil {
			return nil, err
		}
		run.Results = append(run.Results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return run, nil
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

func unmarshalJSON(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decoding column: %w", err)
	}
	return nil
}
