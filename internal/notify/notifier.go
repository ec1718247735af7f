// Package notify delivers dismissible, auto-expiring user notifications.
// Channel and sampler failures are converted to notifications here; they
// never propagate across the controller boundary.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/edufocus/liveclass/internal/common/clock"
	"github.com/edufocus/liveclass/internal/common/uuid"
)

// Level is the notification severity
type Level string

const (
	// LevelSuccess notifications expire after 5s
	LevelSuccess Level = "success"

	// LevelInfo notifications expire after 3s
	LevelInfo Level = "info"

	// LevelError notifications expire after 5s
	LevelError Level = "error"
)

// Notification is one user-visible message
type Notification struct {
	// ID identifies the notification for dismissal
	ID string

	// Level is the severity
	Level Level

	// Message is the display text
	Message string

	// CreatedAt is when the notification was raised
	CreatedAt time.Time
}

// Sink receives notifications for display
type Sink interface {
	// Show presents a notification
	Show(n Notification)

	// Expire removes a notification, either dismissed or timed out
	Expire(id string)
}

// Config holds configuration for a notifier
type Config struct {
	// Sink receives the notifications
	Sink Sink

	// UUID generates notification IDs; defaults to the standard generator
	UUID uuid.UUID

	// Clock timestamps notifications; defaults to the system clock
	Clock clock.Clock

	// SuccessTTL, InfoTTL and ErrorTTL override the expiry durations
	SuccessTTL time.Duration
	InfoTTL    time.Duration
	ErrorTTL   time.Duration
}

// Notifier raises notifications and expires them on a timer. Every expiry
// timer is cancellable and released on Close.
type Notifier struct {
	sink       Sink
	uuid       uuid.UUID
	clock      clock.Clock
	successTTL time.Duration
	infoTTL    time.Duration
	errorTTL   time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// New creates a notifier
func New(cfg *Config) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Sink == nil {
		return nil, errors.New("sink cannot be nil")
	}

	idGen := cfg.UUID
	if idGen == nil {
		idGen = uuid.New()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	successTTL := cfg.SuccessTTL
	if successTTL <= 0 {
		successTTL = 5 * time.Second
	}

	infoTTL := cfg.InfoTTL
	if infoTTL <= 0 {
		infoTTL = 3 * time.Second
	}

	errorTTL := cfg.ErrorTTL
	if errorTTL <= 0 {
		errorTTL = 5 * time.Second
	}

	return &Notifier{
		sink:       cfg.Sink,
		uuid:       idGen,
		clock:      clk,
		successTTL: successTTL,
		infoTTL:    infoTTL,
		errorTTL:   errorTTL,
		timers:     make(map[string]*time.Timer),
	}, nil
}

// Success raises a success notification and returns its ID
func (n *Notifier) Success(message string) string {
	return n.raise(LevelSuccess, message, n.successTTL)
}

// Info raises an info notification and returns its ID
func (n *Notifier) Info(message string) string {
	return n.raise(LevelInfo, message, n.infoTTL)
}

// Error raises an error notification and returns its ID
func (n *Notifier) Error(message string) string {
	return n.raise(LevelError, message, n.errorTTL)
}

// Dismiss removes a notification before its timer fires
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	timer, ok := n.timers[id]
	if ok {
		timer.Stop()
		delete(n.timers, id)
	}
	n.mu.Unlock()

	if ok {
		n.sink.Expire(id)
	}
}

// Close cancels every pending expiry timer. Notifications already shown
// stay with the sink.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
}

func (n *Notifier) raise(level Level, message string, ttl time.Duration) string {
	id := n.uuid.NewUUID()

	n.sink.Show(Notification{
		ID:        id,
		Level:     level,
		Message:   message,
		CreatedAt: n.clock.Now(),
	})

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return id
	}
	n.timers[id] = time.AfterFunc(ttl, func() {
		n.mu.Lock()
		delete(n.timers, id)
		n.mu.Unlock()
		n.sink.Expire(id)
	})
	n.mu.Unlock()

	return id
}
