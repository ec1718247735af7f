package live

import (
	"context"
	"time"

	"github.com/edufocus/liveclass/internal/channel"
	"github.com/edufocus/liveclass/internal/common/clock"
	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/gaze"
	"github.com/edufocus/liveclass/internal/models"
	"github.com/edufocus/liveclass/internal/notify"
	"github.com/edufocus/liveclass/internal/render"
	"github.com/edufocus/liveclass/internal/repositories/samples"
)

// SessionChannel is the real-time connection for one session. The
// controller holds the only handle; no other component may send or close,
// which prevents duplicate join and leave messages.
type SessionChannel interface {
	// Open connects to the session; failures enter the reconnect path
	Open(ctx context.Context, sessionID, credential string)

	// Send transmits a message if connected, reporting whether it was attempted
	Send(msg *models.ChannelMessage) bool

	// Events returns the ordered event stream
	Events() <-chan channel.Event

	// Close tears down intentionally, sending leave first
	Close()
}

// SessionAPI is the request/response collaborator that owns session records
type SessionAPI interface {
	// GetSession fetches one session record by ID
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

// Config holds configuration for a live session controller
type Config struct {
	// SessionID is the session to join
	SessionID string

	// Credential is the bearer token attached to the channel
	Credential string

	// UserID and UserName identify this participant
	UserID   string
	UserName string

	// Role selects the view: students get the self-monitor, instructors
	// the aggregate monitor
	Role models.Role

	// Channel is the session's real-time connection
	Channel SessionChannel

	// API loads the session record
	API SessionAPI

	// Gaze is the observation source; nil means focus tracking is off for
	// this participant (webcam consent declined, or instructor role)
	Gaze gaze.Source

	// Sampler scores observations; required for students
	Sampler *focus.Sampler

	// Renderer receives view models
	Renderer render.Renderer

	// Notifier surfaces user-visible messages
	Notifier *notify.Notifier

	// Samples records relayed focus history for the reports layer; optional
	Samples samples.Repository

	// Clock drives the elapsed-time display; defaults to the system clock
	Clock clock.Clock

	// TickInterval is the elapsed-timer resolution; defaults to 1s
	TickInterval time.Duration

	// EndedRedirectDelay is how long after an ended status the dashboard
	// redirect fires; defaults to 3s
	EndedRedirectDelay time.Duration

	// LoadFailureRedirectDelay is how long after a session-load failure
	// the redirect fires; defaults to 2s
	LoadFailureRedirectDelay time.Duration

	// Redirect is the navigation hook back to the dashboard; optional
	Redirect func()
}
