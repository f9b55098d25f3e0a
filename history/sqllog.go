package history

import (
	"context"
	"database/sql/driver"
	"log/slog"
	"time"

	"github.com/networkteam/go-sqllogger"
)

// newQueryLogger logs executed statements at debug level.
func newQueryLogger(logger *slog.Logger) sqllogger.SQLLogger {
	return &queryLogger{logger: logger}
}

type queryLogger struct {
	logger *slog.Logger
}

// ConnBegin implements sqllogger.SQLLogger.
func (l *queryLogger) ConnBegin(ctx context.Context, connID int64, txID int64, opts driver.TxOptions) {
	l.logger.DebugContext(ctx, "Begin transaction", slog.Int64("conn", connID), slog.Int64("tx", txID))
}

// ConnClose implements sqllogger.SQLLogger.
func (l *queryLogger) ConnClose(ctx context.Context, connID int64) {
}

// ConnExec implements sqllogger.SQLLogger.
func (l *queryLogger) ConnExec(ctx context.Context, connID int64, query string, args []driver.Value) {
	l.logQuery(ctx, query, toNamedValues(args))
}

// ConnExecContext implements sqllogger.SQLLogger.
func (l *queryLogger) ConnExecContext(ctx context.Context, connID int64, query string, args []driver.NamedValue) {
	l.logQuery(ctx, query, args)
}

// ConnPrepare implements sqllogger.SQLLogger.
func (l *queryLogger) ConnPrepare(ctx context.Context, connID int64, stmtID int64, query string) {
}

// ConnPrepareContext implements sqllogger.SQLLogger.
func (l *queryLogger) ConnPrepareContext(ctx context.Context, connID int64, stmtID int64, query string) {
}

// ConnQuery implements sqllogger.SQLLogger.
func (l *queryLogger) ConnQuery(ctx context.Context, connID int64, rowsID int64, query string, args []driver.Value) {
	l.logQuery(ctx, query, toNamedValues(args))
}

// ConnQueryContext implements sqllogger.SQLLogger.
func (l *queryLogger) ConnQueryContext(ctx context.Context, connID int64, rowsID int64, query string, args []driver.NamedValue) {
	l.logQuery(ctx, query, args)
}

// Connect implements sqllogger.SQLLogger.
func (l *queryLogger) Connect(ctx context.Context, connID int64) {
}

// RowsClose implements sqllogger.SQLLogger.
func (l *queryLogger) RowsClose(ctx context.Context, rowsID int64) {
}

// StmtClose implements sqllogger.SQLLogger.
func (l *queryLogger) StmtClose(ctx context.Context, stmtID int64) {
}

// StmtExec implements sqllogger.SQLLogger.
func (l *queryLogger) StmtExec(ctx context.Context, stmtID int64, query string, args []driver.Value) {
	l.logQuery(ctx, query, toNamedValues(args))
}

// StmtExecContext implements sqllogger.SQLLogger.
func (l *queryLogger) StmtExecContext(ctx context.Context, stmtID int64, query string, args []driver.NamedValue) {
	l.logQuery(ctx, query, args)
}

// StmtQuery implements sqllogger.SQLLogger.
func (l *queryLogger) StmtQuery(ctx context.Context, stmtID int64, rowsID int64, query string, args []driver.Value) {
	l.logQuery(ctx, query, toNamedValues(args))
}

// StmtQueryContext implements sqllogger.SQLLogger.
func (l *queryLogger) StmtQueryContext(ctx context.Context, stmtID int64, rowsID int64, query string, args []driver.NamedValue) {
	l.logQuery(ctx, query, args)
}

// TxCommit implements sqllogger.SQLLogger.
func (l *queryLogger) TxCommit(ctx context.Context, txID int64) {
	l.logger.DebugContext(ctx, "Commit transaction", slog.Int64("tx", txID))
}

// TxRollback implements sqllogger.SQLLogger.
func (l *queryLogger) TxRollback(ctx context.Context, txID int64) {
	l.logger.DebugContext(ctx, "Rollback transaction", slog.Int64("tx", txID))
}

var _ sqllogger.SQLLogger = &queryLogger{}

func (l *queryLogger) logQuery(ctx context.Context, query string, args []driver.NamedValue) {
	if !l.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []any{slog.String("query", query), slog.Int("args", len(args))}
	if _, duration := timingFromContext(ctx); duration > 0 {
		attrs = append(attrs, slog.Duration("duration", duration))
	}
	l.logger.DebugContext(ctx, "Executed query", attrs...)
}

func toNamedValues(args []driver.Value) []driver.NamedValue {
	var namedArgs []driver.NamedValue
	for i, arg := range args {
		namedArgs = append(namedArgs, driver.NamedValue{
			Ordinal: i + 1,
			Value:   arg,
		})
	}
	return namedArgs
}

func timingFromContext(ctx context.Context) (time.Time, time.Duration) {
	timing, ok := sqllogger.GetTiming(ctx)
	if !ok {
		return time.Now(), 0
	}

	return timing.Start, timing.End.Sub(timing.Start)
}
