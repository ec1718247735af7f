package focus

import (
	"errors"

	"github.com/edufocus/liveclass/internal/common/clock"
	"github.com/edufocus/liveclass/internal/models"
)

// Observation is one raw gaze position reported by a tracking source
type Observation struct {
	// X and Y are the gaze coordinates within the frame
	X float64
	Y float64
}

// Result describes what a recorded observation produced
type Result struct {
	// Score is the focus score for this observation
	Score int

	// Ordinal is the 1-based index of the observation
	Ordinal int

	// Relay is true when this score should be transmitted upstream;
	// only every fifth observation is relayed
	Relay bool
}

// Config holds configuration for a sampler
type Config struct {
	// FrameWidth and FrameHeight are the gaze frame dimensions
	FrameWidth  float64
	FrameHeight float64

	// WindowSize bounds the local chart window; defaults to 30
	WindowSize int

	// RelayEvery is the reporting cadence; defaults to 5
	RelayEvery int

	// Clock timestamps samples; defaults to the system clock
	Clock clock.Clock
}

// Sampler scores gaze observations and keeps the bounded sliding window
// backing the local chart. When gaze tracking reports nothing, the previous
// score simply persists; absence never decays the score. A sampler is
// driven from a single dispatch loop and is not safe for concurrent use.
type Sampler struct {
	frameWidth  float64
	frameHeight float64
	windowSize  int
	relayEvery  int
	clock       clock.Clock

	window    []models.FocusSample
	ordinal   int
	lastScore int
	hasScore  bool
}

// New creates a sampler
func New(cfg *Config) (*Sampler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return nil, errors.New("frame dimensions must be positive")
	}

	windowSize := cfg.WindowSize
	if windowSize <= 0 {
		windowSize = 30
	}

	relayEvery := cfg.RelayEvery
	if relayEvery <= 0 {
		relayEvery = 5
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &Sampler{
		frameWidth:  cfg.FrameWidth,
		frameHeight: cfg.FrameHeight,
		windowSize:  windowSize,
		relayEvery:  relayEvery,
		clock:       clk,
	}, nil
}

// Observe scores a raw gaze observation and records it
func (s *Sampler) Observe(obs Observation) Result {
	return s.Record(Score(obs.X, obs.Y, s.frameWidth, s.frameHeight))
}

// Record appends an already-scored sample to the window. Server-pushed
// scores and locally computed ones share this path, so the relay cadence
// and the window bound hold for both.
func (s *Sampler) Record(score int) Result {
	s.ordinal++
	s.lastScore = score
	s.hasScore = true

	s.window = append(s.window, models.FocusSample{
		Ordinal:   s.ordinal,
		Score:     score,
		Timestamp: s.clock.Now(),
	})
	if len(s.window) > s.windowSize {
		s.window = s.window[1:]
	}

	return Result{
		Score:   score,
		Ordinal: s.ordinal,
		Relay:   s.ordinal%s.relayEvery == 0,
	}
}

// Current returns the last known score; ok is false before the first
// observation, which callers must present as "no score available", not 0
func (s *Sampler) Current() (score int, ok bool) {
	return s.lastScore, s.hasScore
}

// Window returns a copy of the sample window, oldest first
func (s *Sampler) Window() []models.FocusSample {
	out := make([]models.FocusSample, len(s.window))
	copy(out, s.window)
	return out
}
