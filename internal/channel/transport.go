package channel

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the subset of a websocket connection the channel uses
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Dialer establishes websocket connections
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (Conn, error)
}

// gorillaDialer adapts the gorilla websocket dialer to the Dialer interface
type gorillaDialer struct {
	dialer *websocket.Dialer
}

// NewGorillaDialer creates a Dialer backed by the default gorilla dialer
func NewGorillaDialer() Dialer {
	return &gorillaDialer{
		dialer: websocket.DefaultDialer,
	}
}

// DialContext opens a websocket connection to the given URL
func (d *gorillaDialer) DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (Conn, error) {
	conn, _, err := d.dialer.DialContext(ctx, urlStr, requestHeader)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
