package browser

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DialogAction decides how a native alert, confirm or prompt dialog is answered.
type DialogAction struct {
	Accept bool
	// PromptText is typed into a prompt before accepting.
	PromptText string
}

var (
	AcceptDialog  = DialogAction{Accept: true}
	DismissDialog = DialogAction{}
)

// AcceptPrompt answers a prompt dialog with text.
func AcceptPrompt(text string) DialogAction {
	return DialogAction{Accept: true, PromptText: text}
}

// DialogResult reports a handled dialog once it appeared.
type DialogResult struct {
	session *Session
	action  DialogAction
	done    chan struct{}
	// withdrawn is set under session.mu once Wait gave up before a dialog took the action.
	withdrawn bool

	// Type is one of "alert", "confirm", "prompt" or "beforeunload". Valid after Wait returned nil.
	Type string
	// Message is the text shown by the dialog. Valid after Wait returned nil.
	Message string
	err     error
}

// Wait blocks until the dialog was handled or timeout passed.
// On timeout the action is withdrawn, so a later dialog is dismissed instead of answered with it.
func (r *DialogResult) Wait(timeout time.Duration) error {
	select {
	case <-r.done:
		return r.err
	case <-time.After(timeout):
	}

	if r.session.withdrawDialog(r) {
		return fmt.Errorf("no dialog appeared within %s", timeout)
	}
	// A dialog took the action right at the deadline
	<-r.done
	return r.err
}

// HandleNextDialog registers action for the next dialog in any window of the session.
// Dialogs without a registered action are dismissed.
func (s *Session) HandleNextDialog(action DialogAction) *DialogResult {
	result := &DialogResult{
		session: s,
		action:  action,
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.dialogs = append(s.dialogs, result)
	s.mu.Unlock()

	return result
}

// withdrawDialog removes a pending result from the queue. It reports false if a dialog already took it.
func (s *Session) withdrawDialog(result *DialogResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.dialogs, result); i >= 0 {
		s.dialogs = slices.Delete(s.dialogs, i, i+1)
		result.withdrawn = true
	}
	return result.withdrawn
}

func (s *Session) handleDialog(dialog playwright.Dialog) {
	s.mu.Lock()
	var result *DialogResult
	if len(s.dialogs) > 0 {
		result = s.dialogs[0]
		s.dialogs = s.dialogs[1:]
	}
	s.mu.Unlock()

	if result == nil {
		s.logger.Warn("Dismissing unexpected dialog", slog.String("type", dialog.Type()), slog.String("message", dialog.Message()))
		if err := dialog.Dismiss(); err != nil {
			s.logger.Warn("Could not dismiss dialog", slog.Any("err", err))
		}
		return
	}

	result.Type = dialog.Type()
	result.Message = dialog.Message()
	if result.action.Accept {
		if result.action.PromptText != "" {
			result.err = dialog.Accept(result.action.PromptText)
		} else {
			result.err = dialog.Accept()
		}
	} else {
		result.err = dialog.Dismiss()
	}

	s.logger.Debug("Handled dialog", slog.String("type", result.Type), slog.Bool("accepted", result.action.Accept))
	close(result.done)
}
