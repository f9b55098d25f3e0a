package browser

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/pagetour/capture"
)

type fakeDialog struct {
	playwright.Dialog

	typ        string
	message    string
	dismissErr error

	accepted  []string
	dismissed bool
}

func (d *fakeDialog) Type() string { return d.typ }
func (d *fakeDialog) Message() string { return d.message }

func (d *fakeDialog) Accept(promptText ...string) error {
	d.accepted = append(d.accepted, promptText...)
	return nil
}

func (d *fakeDialog) Dismiss() error {
	d.dismissed = true
	return d.dismissErr
}

func newTestSession(t *testing.T) (*Session, *capture.Log) {
	t.Helper()

	logs := capture.NewLog()
	t.Cleanup(logs.Close)
	return &Session{logger: slog.New(capture.NewSlogHandler(logs, slog.LevelDebug))}, logs
}

func TestSession_HandleNextDialog(t *testing.T) {
	s, _ := newTestSession(t)

	result := s.HandleNextDialog(AcceptPrompt("pagetour"))
	dialog := &fakeDialog{typ: "prompt", message: "I am a JS prompt"}
	s.handleDialog(dialog)

	require.NoError(t, result.Wait(time.Second))
	assert.Equal(t, "prompt", result.Type)
	assert.Equal(t, "I am a JS prompt", result.Message)
	assert.Equal(t, []string{"pagetour"}, dialog.accepted)
	assert.False(t, dialog.dismissed)
}

func TestDialogResult_WaitTimeoutWithdrawsAction(t *testing.T) {
	s, _ := newTestSession(t)

	result := s.HandleNextDialog(AcceptDialog)
	require.Error(t, result.Wait(10*time.Millisecond))

	s.mu.Lock()
	assert.Empty(t, s.dialogs)
	s.mu.Unlock()

	// A dialog after the timeout is dismissed instead of accepted with the stale action
	late := &fakeDialog{typ: "confirm", message: "I am a JS Confirm"}
	s.handleDialog(late)
	assert.True(t, late.dismissed)
	assert.Empty(t, late.accepted)
	assert.Empty(t, result.Type)

	// Waiting again times out again instead of blocking
	assert.Error(t, result.Wait(10*time.Millisecond))
}

func TestDialogResult_WaitKeepsLaterActions(t *testing.T) {
	s, _ := newTestSession(t)

	stale := s.HandleNextDialog(AcceptDialog)
	pending := s.HandleNextDialog(DismissDialog)
	require.Error(t, stale.Wait(10*time.Millisecond))

	dialog := &fakeDialog{typ: "alert", message: "I am a JS Alert"}
	s.handleDialog(dialog)

	require.NoError(t, pending.Wait(time.Second))
	assert.True(t, dialog.dismissed)
	assert.Equal(t, "alert", pending.Type)
}

func TestSession_UnexpectedDialogDismissError(t *testing.T) {
	s, logs := newTestSession(t)

	s.handleDialog(&fakeDialog{typ: "alert", message: "surprise", dismissErr: errors.New("target closed")})

	assert.True(t, lo.ContainsBy(logs.Records(), func(r slog.Record) bool {
		return r.Level == slog.LevelWarn && r.Message == "Could not dismiss dialog"
	}))
}
