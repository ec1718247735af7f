package gaze

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/edufocus/liveclass/internal/focus"
)

// SyntheticConfig configures a synthetic gaze source
type SyntheticConfig struct {
	// FrameWidth and FrameHeight are the simulated frame dimensions
	FrameWidth  float64
	FrameHeight float64

	// Interval is the observation cadence; defaults to 1s
	Interval time.Duration

	// DropoutRate is the probability that a tick produces no observation,
	// simulating the subject leaving the frame; defaults to 0
	DropoutRate float64

	// Optional seed for testing
	Seed int64
}

// Synthetic produces a random-walk gaze trail around the frame center. It
// stands in for a real tracker on headless clients and in tests.
type Synthetic struct {
	frameWidth  float64
	frameHeight float64
	interval    time.Duration
	dropoutRate float64
	random      *rand.Rand

	observations chan focus.Observation
	stopOnce     sync.Once
	stop         chan struct{}
	started      bool
}

// NewSynthetic creates a synthetic gaze source
func NewSynthetic(cfg *SyntheticConfig) (*Synthetic, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return nil, errors.New("frame dimensions must be positive")
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}

	var seed int64
	if cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Synthetic{
		frameWidth:   cfg.FrameWidth,
		frameHeight:  cfg.FrameHeight,
		interval:     interval,
		dropoutRate:  cfg.DropoutRate,
		random:       rand.New(rand.NewSource(seed)),
		observations: make(chan focus.Observation, 16),
		stop:         make(chan struct{}),
	}, nil
}

// Start begins the random walk
func (g *Synthetic) Start(ctx context.Context) error {
	if g.started {
		return errors.New("synthetic source already started")
	}
	g.started = true

	go g.run(ctx)
	return nil
}

// Observations returns the observation stream
func (g *Synthetic) Observations() <-chan focus.Observation {
	return g.observations
}

// Stop ends the walk and closes the observation stream
func (g *Synthetic) Stop() {
	g.stopOnce.Do(func() {
		close(g.stop)
	})
}

func (g *Synthetic) run(ctx context.Context) {
	defer close(g.observations)

	x := g.frameWidth / 2
	y := g.frameHeight / 2

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-g.stop:
			return
		case <-ticker.C:
			if g.dropoutRate > 0 && g.random.Float64() < g.dropoutRate {
				// subject not detected this tick
				continue
			}

			x = clamp(x+g.step(g.frameWidth), 0, g.frameWidth)
			y = clamp(y+g.step(g.frameHeight), 0, g.frameHeight)

			select {
			case g.observations <- focus.Observation{X: x, Y: y}:
			case <-g.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

// step is a bounded random displacement, at most a tenth of the dimension
func (g *Synthetic) step(dimension float64) float64 {
	return (g.random.Float64() - 0.5) * dimension / 5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
