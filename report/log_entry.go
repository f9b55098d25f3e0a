package report

import (
	"log/slog"
	"maps"
	"time"
)

// LogEntry is a captured log record in a serializable form.
type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

func NewLogEntry(record slog.Record) LogEntry {
	entry := LogEntry{
		Time:    record.Time,
		Level:   record.Level.String(),
		Message: record.Message,
	}
	if record.NumAttrs() > 0 {
		entry.Attrs = make(map[string]any, record.NumAttrs())
		record.Attrs(func(attr slog.Attr) bool {
			addAttr(entry.Attrs, attr)
			return true
		})
	}
	return entry
}

func addAttr(attrs map[string]any, attr slog.Attr) {
	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindGroup:
		group := make(map[string]any)
		for _, ga := range value.Group() {
			addAttr(group, ga)
		}
		if attr.Key == "" {
			// Inline group
			maps.Copy(attrs, group)
			return
		}
		if existing, ok := attrs[attr.Key].(map[string]any); ok {
			maps.Copy(existing, group)
			return
		}
		attrs[attr.Key] = group
	case slog.KindTime:
		attrs[attr.Key] = value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		attrs[attr.Key] = value.Duration().String()
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			attrs[attr.Key] = err.Error()
			return
		}
		attrs[attr.Key] = value.Any()
	default:
		attrs[attr.Key] = value.Any()
	}
}
