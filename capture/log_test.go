package capture_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/capture"
)

func recordAttrs(r slog.Record) map[string]slog.Value {
	attrs := map[string]slog.Value{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value
		return true
	})
	return attrs
}

func TestSlogHandler_CollectsRecords(t *testing.T) {
	log := capture.NewLog()
	defer log.Close()

	logger := slog.New(capture.NewSlogHandler(log, slog.LevelInfo))
	logger.Debug("dropped")
	logger.Info("navigating", slog.String("url", "https://example.com"))
	logger.Warn("screenshot failed")

	records := log.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "navigating", records[0].Message)
	assert.Equal(t, "https://example.com", recordAttrs(records[0])["url"].String())
	assert.Equal(t, slog.LevelWarn, records[1].Level)
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	log := capture.NewLog()
	defer log.Close()

	logger := slog.New(capture.NewSlogHandler(log, slog.LevelDebug)).
		With(slog.String("scenario", "login_logout")).
		WithGroup("page").
		With(slog.String("name", "login"))

	logger.Debug("click", slog.String("locator", "css=button"))

	records := log.Records()
	require.Len(t, records, 1)

	attrs := recordAttrs(records[0])
	assert.Equal(t, "login_logout", attrs["scenario"].String())

	// Both the handler attr and the record attr are nested below the "page" group
	var pageKeys []string
	records[0].Attrs(func(a slog.Attr) bool {
		if a.Key == "page" && a.Value.Kind() == slog.KindGroup {
			for _, ga := range a.Value.Group() {
				pageKeys = append(pageKeys, ga.Key)
			}
		}
		return true
	})
	assert.ElementsMatch(t, []string{"name", "locator"}, pageKeys)
}

func TestLog_Subscribe(t *testing.T) {
	log := capture.NewLog()
	defer log.Close()

	sub := capture.Subscribe(t, log.Subscribe)

	logger := slog.New(capture.NewSlogHandler(log, nil))
	logger.InfoContext(context.Background(), "one")
	logger.InfoContext(context.Background(), "two")

	records := sub.Wait(2)
	assert.Equal(t, "one", records[0].Message)
	assert.Equal(t, "two", records[1].Message)
}

func TestLog_CapacityBound(t *testing.T) {
	log := capture.NewLogWithOptions(capture.LogOptions{Capacity: 2})
	defer log.Close()

	logger := slog.New(capture.NewSlogHandler(log, nil))
	logger.Info("a")
	logger.Info("b")
	logger.Info("c")

	records := log.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].Message)
}
