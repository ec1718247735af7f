package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/edufocus/liveclass/internal/models"
)

// EventType categorizes channel events
type EventType string

const (
	// EventTypeConnected indicates the connection is open and the join
	// message has been transmitted
	EventTypeConnected EventType = "connected"

	// EventTypeMessage carries one inbound ChannelMessage
	EventTypeMessage EventType = "message"

	// EventTypeDisconnected indicates an unexpected connection loss; a
	// reconnect attempt has been scheduled unless the retry budget is spent
	EventTypeDisconnected EventType = "disconnected"

	// EventTypeConnectionLost indicates the retry budget is exhausted; the
	// channel will not reconnect until Open is called again
	EventTypeConnectionLost EventType = "connection_lost"
)

// Event is one observable channel occurrence, delivered in order on the
// stream returned by Events
type Event struct {
	// Type categorizes the event
	Type EventType

	// Message is set for EventTypeMessage
	Message *models.ChannelMessage

	// Reason is set for disconnect events
	Reason error
}

// ErrConnectionLost is the reason attached to the terminal connection_lost event
var ErrConnectionLost = errors.New("connection lost after maximum reconnect attempts")

// Config holds configuration for a session channel
type Config struct {
	// BaseURL is the websocket origin, e.g. wss://host
	BaseURL string

	// UserID identifies this client on the session
	UserID string

	// UserName is this client's display name, sent with the join message
	UserName string

	// Role is this client's role, sent with the join message
	Role models.Role

	// Dialer establishes connections; defaults to the gorilla dialer
	Dialer Dialer

	// ReconnectBaseDelay is the backoff unit; defaults to 1s. The delay
	// before attempt n is min(n * base, max).
	ReconnectBaseDelay time.Duration

	// ReconnectMaxDelay caps the backoff delay; defaults to 10s
	ReconnectMaxDelay time.Duration

	// MaxReconnectAttempts bounds one unexpected-disconnect streak; defaults to 5
	MaxReconnectAttempts int

	// EventBuffer is the event stream capacity; defaults to 64
	EventBuffer int
}

// Channel maintains one logical websocket connection to a live session,
// reconnecting with bounded linear backoff when the connection drops
// unexpectedly. A caller-initiated Close is never retried.
type Channel struct {
	baseURL     string
	userID      string
	userName    string
	role        models.Role
	dialer      Dialer
	baseDelay   time.Duration
	maxDelay    time.Duration
	maxAttempts int

	events chan Event

	// writeMu serializes writes; the underlying connection does not
	// support concurrent writers
	writeMu sync.Mutex

	mu         sync.Mutex
	conn       Conn
	sessionID  string
	credential string
	attempts   int
	closed     bool
	lost       bool
	retry      *time.Timer
	gen        int
	quit       chan struct{}
}

// New creates a session channel
func New(cfg *Config) (*Channel, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	if cfg.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = NewGorillaDialer()
	}

	baseDelay := cfg.ReconnectBaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	maxDelay := cfg.ReconnectMaxDelay
	if maxDelay <= 0 {
		maxDelay = 10 * time.Second
	}

	maxAttempts := cfg.MaxReconnectAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = 64
	}

	return &Channel{
		baseURL:     cfg.BaseURL,
		userID:      cfg.UserID,
		userName:    cfg.UserName,
		role:        cfg.Role,
		dialer:      dialer,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		maxAttempts: maxAttempts,
		events:      make(chan Event, buffer),
	}, nil
}

// Events returns the ordered event stream. It is consumed by a single
// dispatch loop; each event is delivered exactly once.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Open connects to the given session. A failed dial does not surface an
// error to the caller; it enters the reconnect path so the page stays
// usable through transient network loss. Calling Open after a terminal
// connection_lost event starts a fresh retry budget.
func (c *Channel) Open(ctx context.Context, sessionID, credential string) {
	c.mu.Lock()
	c.sessionID = sessionID
	c.credential = credential
	c.closed = false
	c.lost = false
	c.attempts = 0
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	if c.conn != nil {
		// only one active connection per session; the generation bump keeps
		// the replaced read loop from reporting this as a disconnect
		c.conn.Close()
		c.conn = nil
		c.gen++
	}
	c.quit = make(chan struct{})
	c.mu.Unlock()

	c.dial(ctx)
}

// Connected reports whether the underlying connection is currently open
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Lost reports whether the channel gave up reconnecting
func (c *Channel) Lost() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lost
}

// Send transmits a message if the connection is open. It returns whether
// the message was handed to the transport; there is no delivery guarantee.
func (c *Channel) Send(msg *models.ChannelMessage) bool {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		log.Printf("channel: dropping %s message, not connected", msg.Type)
		return false
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("channel: failed to marshal %s message: %v", msg.Type, err)
		return false
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()

	if err != nil {
		log.Printf("channel: failed to write %s message: %v", msg.Type, err)
		return false
	}

	return true
}

// Close tears the connection down intentionally. If the connection is open
// a leave message is transmitted before the close handshake. Any pending
// reconnect is cancelled; an intentional close is never retried.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	if c.quit != nil {
		close(c.quit)
		c.quit = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return
	}

	c.writeMu.Lock()
	if data, err := json.Marshal(&models.ChannelMessage{
		Type:   models.MessageTypeLeave,
		UserID: c.userID,
	}); err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("channel: failed to send leave message: %v", err)
		}
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client leaving"), deadline)
	c.writeMu.Unlock()

	if err := conn.Close(); err != nil {
		log.Printf("channel: error closing connection: %v", err)
	}
}

// dial attempts one connection and either starts the read loop or enters
// the reconnect path
func (c *Channel) dial(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	target := fmt.Sprintf("%s/ws/session/%s/?token=%s",
		c.baseURL, c.sessionID, url.QueryEscape(c.credential))
	c.mu.Unlock()

	conn, err := c.dialer.DialContext(ctx, target, nil)
	if err != nil {
		log.Printf("channel: dial failed: %v", err)
		c.scheduleReconnect(err)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.attempts = 0
	c.gen++
	gen := c.gen
	quit := c.quit
	c.mu.Unlock()

	c.events <- Event{Type: EventTypeConnected}

	c.Send(&models.ChannelMessage{
		Type:   models.MessageTypeJoin,
		UserID: c.userID,
		Role:   c.role,
		Name:   c.userName,
	})

	go c.readLoop(conn, gen, quit)
}

// readLoop delivers inbound messages in transmission order until the
// connection fails, is replaced, or is closed intentionally. Publishing is
// gated on quit so a stalled consumer cannot pin the goroutine past Close.
func (c *Channel) readLoop(conn Conn, gen int, quit chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(gen, err)
			return
		}

		var msg models.ChannelMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("channel: discarding malformed message: %v", err)
			continue
		}

		select {
		case c.events <- Event{Type: EventTypeMessage, Message: &msg}:
		case <-quit:
			return
		}
	}
}

func (c *Channel) handleReadError(gen int, cause error) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		// intentional close, or a stale read loop from a replaced connection
		c.mu.Unlock()
		return
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.events <- Event{Type: EventTypeDisconnected, Reason: cause}
	c.scheduleReconnect(cause)
}

// scheduleReconnect arms the backoff timer for the next attempt, or emits
// the terminal connection_lost event once the budget is spent
func (c *Channel) scheduleReconnect(cause error) {
	c.mu.Lock()
	if c.closed || c.lost {
		c.mu.Unlock()
		return
	}

	c.attempts++
	if c.attempts > c.maxAttempts {
		c.lost = true
		c.mu.Unlock()
		log.Printf("channel: giving up after %d reconnect attempts", c.maxAttempts)
		c.events <- Event{Type: EventTypeConnectionLost, Reason: ErrConnectionLost}
		return
	}

	attempt := c.attempts
	delay := c.backoffDelay(attempt)

	c.retry = time.AfterFunc(delay, func() {
		c.dial(context.Background())
	})
	c.mu.Unlock()

	log.Printf("channel: reconnecting in %s (attempt %d/%d): %v", delay, attempt, c.maxAttempts, cause)
}

// backoffDelay is linear in the attempt number, capped at the max delay
func (c *Channel) backoffDelay(attempt int) time.Duration {
	delay := time.Duration(attempt) * c.baseDelay
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	return delay
}
