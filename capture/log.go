package capture

import (
	"context"
	"log/slog"
	"slices"

	"github.com/samber/lo"
)

// Log keeps slog records emitted while something of interest runs, e.g. a single scenario.
type Log struct {
	records  *RingBuffer[slog.Record]
	notifier *Notifier[slog.Record]
}

// LogOptions configures a Log.
type LogOptions struct {
	// Capacity is the maximum number of records to keep. Older records are dropped.
	// Default: 500
	Capacity int
	// NotifierOptions are the options for record subscriptions.
	// Default: nil, will use DefaultNotifierOptions()
	NotifierOptions *NotifierOptions
}

// DefaultLogOptions returns the default log options.
func DefaultLogOptions() LogOptions {
	return LogOptions{
		Capacity: 500,
	}
}

// NewLog creates a log with default options.
func NewLog() *Log {
	return NewLogWithOptions(DefaultLogOptions())
}

// NewLogWithOptions creates a log with the given options.
func NewLogWithOptions(options LogOptions) *Log {
	if options.Capacity <= 0 {
		options.Capacity = DefaultLogOptions().Capacity
	}
	notifierOptions := DefaultNotifierOptions()
	if options.NotifierOptions != nil {
		notifierOptions = *options.NotifierOptions
	}

	return &Log{
		records:  NewRingBuffer[slog.Record](options.Capacity),
		notifier: NewNotifierWithOptions[slog.Record](notifierOptions),
	}
}

// Collect stores a record and notifies subscribers.
func (l *Log) Collect(record slog.Record) {
	l.records.Add(record)
	l.notifier.Publish(record)
}

// Records returns all kept records, oldest first.
func (l *Log) Records() []slog.Record {
	return l.records.All()
}

// Subscribe returns a channel receiving records collected from now on.
func (l *Log) Subscribe(ctx context.Context) <-chan slog.Record {
	return l.notifier.Subscribe(ctx)
}

// Close releases the subscriptions of the log. Kept records stay readable.
func (l *Log) Close() {
	l.notifier.Close()
}

// SlogHandler is a slog.Handler writing into a Log.
// Combine it with another handler through slogmulti.Fanout to keep regular log output.
type SlogHandler struct {
	log   *Log
	level slog.Leveler

	attrs  []slog.Attr
	groups []string
}

// NewSlogHandler creates a handler collecting records at or above level into log.
func NewSlogHandler(log *Log, level slog.Leveler) *SlogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SlogHandler{
		log:   log,
		level: level,
	}
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	// Handler attributes come before record attributes, so the record is rebuilt
	collected := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	collected.AddAttrs(h.attrs...)

	attrs := make([]slog.Attr, 0, record.NumAttrs())
	record.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})

	for i := len(h.groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{slog.Group(h.groups[i], lo.ToAnySlice(attrs)...)}
	}
	collected.AddAttrs(attrs...)

	h.log.Collect(collected)

	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SlogHandler{
		log:   h.log,
		level: h.level,

		attrs:  appendAttrsToGroup(h.groups, h.attrs, attrs...),
		groups: h.groups,
	}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &SlogHandler{
		log:   h.log,
		level: h.level,

		attrs:  h.attrs,
		groups: append(slices.Clone(h.groups), name),
	}
}

// appendAttrsToGroup nests attrs below the given group path, merging into existing groups.
func appendAttrsToGroup(groups []string, existing []slog.Attr, attrs ...slog.Attr) []slog.Attr {
	existing = slices.Clone(existing)

	if len(groups) == 0 {
		return append(existing, attrs...)
	}

	for i, attr := range existing {
		if attr.Key == groups[0] && attr.Value.Kind() == slog.KindGroup {
			nested := appendAttrsToGroup(groups[1:], attr.Value.Group(), attrs...)
			existing[i] = slog.Group(groups[0], lo.ToAnySlice(nested)...)
			return existing
		}
	}

	nested := appendAttrsToGroup(groups[1:], nil, attrs...)
	return append(existing, slog.Group(groups[0], lo.ToAnySlice(nested)...))
}

var _ slog.Handler = &SlogHandler{}
