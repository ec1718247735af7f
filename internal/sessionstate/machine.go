// Package sessionstate tracks the session lifecycle. Local control actions
// never change state directly; the channel's session_status messages are
// the source of truth and always win.
package sessionstate

import (
	"github.com/edufocus/liveclass/internal/models"
)

// TimerAction tells the caller what the elapsed-time timer must do after a
// transition
type TimerAction string

const (
	// TimerActionNone leaves the timer alone
	TimerActionNone TimerAction = "none"

	// TimerActionRun starts or resumes ticking from the session start time
	TimerActionRun TimerAction = "run"

	// TimerActionFreeze keeps the displayed value but stops ticking
	TimerActionFreeze TimerAction = "freeze"

	// TimerActionStop stops the timer for good
	TimerActionStop TimerAction = "stop"
)

// Transition describes one applied status change
type Transition struct {
	// From and To are the statuses either side of the change
	From models.SessionStatus
	To   models.SessionStatus

	// Timer is what the elapsed timer must do now
	Timer TimerAction

	// Redirect is true when the caller should schedule navigation back to
	// the dashboard
	Redirect bool
}

// Machine holds the current session status. Status is purely the last
// applied transition; there is no hidden state.
type Machine struct {
	status  models.SessionStatus
	pending models.ControlAction
}

// New creates a machine starting from whatever status the session record
// reported on load
func New(initial models.SessionStatus) *Machine {
	return &Machine{
		status: initial,
	}
}

// Status returns the current status
func (m *Machine) Status() models.SessionStatus {
	return m.status
}

// MarkControlSent records a locally issued control action awaiting its
// inbound confirmation. It does not change the status: confirmation comes
// from the channel or not at all.
func (m *Machine) MarkControlSent(action models.ControlAction) {
	m.pending = action
}

// PendingControl returns the unconfirmed local control action, if any
func (m *Machine) PendingControl() (models.ControlAction, bool) {
	return m.pending, m.pending != ""
}

// Apply applies an inbound status unconditionally, last writer wins. Once
// the machine reaches ended no further transitions are accepted. Any
// pending local control is cleared: whatever arrived inbound supersedes it.
func (m *Machine) Apply(status models.SessionStatus) (Transition, bool) {
	if m.status == models.SessionStatusEnded {
		return Transition{}, false
	}

	from := m.status
	m.status = status
	m.pending = ""

	t := Transition{
		From: from,
		To:   status,
	}

	switch status {
	case models.SessionStatusLive:
		t.Timer = TimerActionRun
	case models.SessionStatusPaused:
		t.Timer = TimerActionFreeze
	case models.SessionStatusEnded:
		t.Timer = TimerActionStop
		t.Redirect = true
	default:
		t.Timer = TimerActionNone
	}

	return t, true
}
