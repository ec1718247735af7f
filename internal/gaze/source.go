// Package gaze supplies raw gaze observations. The perceptual model that
// produces coordinates is a black box behind the Source interface; this
// package only defines the contract and a synthetic generator.
package gaze

import (
	"context"

	"github.com/edufocus/liveclass/internal/focus"
)

// Source is a stream of raw gaze observations. When the subject is not
// detected a source simply emits nothing; consumers keep their previous
// score.
type Source interface {
	// Start begins producing observations. An error means tracking could
	// not be initialized (camera permission, tracker failure); the session
	// then proceeds with focus tracking disabled for this participant.
	Start(ctx context.Context) error

	// Observations returns the observation stream. The channel is closed
	// when the source stops.
	Observations() <-chan focus.Observation

	// Stop releases the underlying capture resource. It must be called on
	// teardown before the session channel closes.
	Stop()
}
