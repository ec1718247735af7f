// Package live orchestrates one browser session: it wires the channel to
// the state machine and roster, drives the elapsed-time display, and
// exposes the role-specific monitor views.
package live

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/edufocus/liveclass/internal/channel"
	"github.com/edufocus/liveclass/internal/common/clock"
	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/models"
	"github.com/edufocus/liveclass/internal/render"
	"github.com/edufocus/liveclass/internal/repositories/samples"
	"github.com/edufocus/liveclass/internal/roster"
	"github.com/edufocus/liveclass/internal/sessionstate"
)

// Define errors
var (
	ErrNotInstructor    = errors.New("only instructors can control the session")
	ErrSessionNotLoaded = errors.New("session record not loaded")
)

// Controller runs one live session end to end. It owns the channel, the
// sampler, the state machine and the roster exclusively; all events funnel
// through its single dispatch loop.
type Controller struct {
	cfg *Config

	clock              clock.Clock
	tickInterval       time.Duration
	endedRedirectDelay time.Duration
	loadFailDelay      time.Duration

	mu              sync.Mutex
	session         *models.Session
	machine         *sessionstate.Machine
	roster          *roster.Roster
	elapsed         time.Duration
	timerRunning    bool
	trackingEnabled bool
	connectionLost  bool
	classData       []models.FocusEntry
	hasClassData    bool
	acks            int

	redirectTimer *time.Timer
	done          chan struct{}
	doneOnce      sync.Once
	leaveOnce     sync.Once
}

// New creates a live session controller
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	if cfg.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	if cfg.Channel == nil {
		return nil, errors.New("channel cannot be nil")
	}

	if cfg.API == nil {
		return nil, errors.New("API client cannot be nil")
	}

	if cfg.Renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	if cfg.Role == models.RoleStudent && cfg.Sampler == nil {
		return nil, errors.New("students require a sampler")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = time.Second
	}

	endedDelay := cfg.EndedRedirectDelay
	if endedDelay <= 0 {
		endedDelay = 3 * time.Second
	}

	loadFailDelay := cfg.LoadFailureRedirectDelay
	if loadFailDelay <= 0 {
		loadFailDelay = 2 * time.Second
	}

	return &Controller{
		cfg:                cfg,
		clock:              clk,
		tickInterval:       tickInterval,
		endedRedirectDelay: endedDelay,
		loadFailDelay:      loadFailDelay,
		roster:             roster.New(),
		done:               make(chan struct{}),
	}, nil
}

// Run loads the session record, opens the channel and drives the dispatch
// loop until the context is cancelled, the session redirects away, or the
// event stream closes. Teardown runs exactly once on every exit path.
func (c *Controller) Run(ctx context.Context) error {
	session, err := c.cfg.API.GetSession(ctx, c.cfg.SessionID)
	if err != nil {
		// blocking failure: no retry, redirect away shortly
		c.cfg.Notifier.Error("Failed to load session data. Please try again.")
		c.scheduleRedirect(c.loadFailDelay)
		return fmt.Errorf("failed to load session %s: %w", c.cfg.SessionID, err)
	}

	c.mu.Lock()
	c.session = session
	c.machine = sessionstate.New(session.Status)
	c.timerRunning = session.Status == models.SessionStatusLive
	c.mu.Unlock()

	var observations <-chan focus.Observation
	if c.cfg.Gaze != nil {
		if err := c.cfg.Gaze.Start(ctx); err != nil {
			log.Printf("live: gaze tracking unavailable: %v", err)
			c.cfg.Notifier.Error("Failed to initialize focus tracking.")
		} else {
			c.mu.Lock()
			c.trackingEnabled = true
			c.mu.Unlock()
			observations = c.cfg.Gaze.Observations()
		}
	}

	c.cfg.Channel.Open(ctx, c.cfg.SessionID, c.cfg.Credential)

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	defer c.Leave()

	c.renderView()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.done:
			return nil

		case ev, ok := <-c.cfg.Channel.Events():
			if !ok {
				return nil
			}
			c.handleChannelEvent(ctx, ev)

		case obs, ok := <-observations:
			if !ok {
				observations = nil
				continue
			}
			c.handleObservation(obs)

		case <-ticker.C:
			c.tick()
		}
	}
}

// TogglePause asks the server to pause a live session or resume a paused
// one. Local state is untouched until the session_status confirmation
// arrives; the channel is the source of truth.
func (c *Controller) TogglePause() error {
	if c.cfg.Role != models.RoleInstructor {
		return ErrNotInstructor
	}

	c.mu.Lock()
	if c.machine == nil {
		c.mu.Unlock()
		return ErrSessionNotLoaded
	}

	action := models.ControlActionPaused
	if c.machine.Status() == models.SessionStatusPaused {
		action = models.ControlActionLive
	}
	c.machine.MarkControlSent(action)
	c.mu.Unlock()

	c.cfg.Channel.Send(&models.ChannelMessage{
		Type:      models.MessageTypeSessionControl,
		Action:    action,
		SessionID: c.cfg.SessionID,
	})
	return nil
}

// End asks the server to end the session, with optional notes for the
// session report
func (c *Controller) End(notes string) error {
	if c.cfg.Role != models.RoleInstructor {
		return ErrNotInstructor
	}

	c.mu.Lock()
	if c.machine == nil {
		c.mu.Unlock()
		return ErrSessionNotLoaded
	}
	c.machine.MarkControlSent(models.ControlActionEnd)
	c.mu.Unlock()

	c.cfg.Channel.Send(&models.ChannelMessage{
		Type:      models.MessageTypeSessionControl,
		Action:    models.ControlActionEnd,
		SessionID: c.cfg.SessionID,
		Notes:     notes,
	})
	return nil
}

// SendChat relays a chat line through the session channel
func (c *Controller) SendChat(text string) bool {
	return c.cfg.Channel.Send(&models.ChannelMessage{
		Type:     models.MessageTypeChat,
		UserID:   c.cfg.UserID,
		UserName: c.cfg.UserName,
		Role:     c.cfg.Role,
		Message:  text,
	})
}

// Leave tears the session down: the channel transmits leave before its
// close handshake, and the camera/tracking resource is released before the
// connection goes away. The ordering is a hard requirement; a deferred
// leave may never be delivered once the page is gone.
func (c *Controller) Leave() {
	c.leaveOnce.Do(func() {
		c.mu.Lock()
		if c.redirectTimer != nil {
			c.redirectTimer.Stop()
			c.redirectTimer = nil
		}
		c.mu.Unlock()

		if c.cfg.Gaze != nil {
			c.cfg.Gaze.Stop()
		}
		c.cfg.Channel.Close()
	})
}

func (c *Controller) handleChannelEvent(ctx context.Context, ev channel.Event) {
	switch ev.Type {
	case channel.EventTypeConnected:
		log.Printf("live: channel connected for session %s", c.cfg.SessionID)

	case channel.EventTypeDisconnected:
		c.cfg.Notifier.Error("Connection lost. Attempting to reconnect...")

	case channel.EventTypeConnectionLost:
		c.mu.Lock()
		c.connectionLost = true
		c.mu.Unlock()
		c.cfg.Notifier.Error("Connection lost. Please rejoin the session.")
		c.renderView()

	case channel.EventTypeMessage:
		c.dispatch(ctx, ev.Message)
	}
}

func (c *Controller) dispatch(ctx context.Context, msg *models.ChannelMessage) {
	switch msg.Type {
	case models.MessageTypeParticipantsUpdate:
		c.mu.Lock()
		c.roster.Replace(msg.Participants)
		c.mu.Unlock()
		c.snapshotRoster(ctx)
		c.renderView()

	case models.MessageTypeFocusData:
		c.handleFocusData(msg)

	case models.MessageTypeFocusUpdate:
		// an individual relay between roster refreshes; never resurrects a
		// participant the last participants_update removed
		if c.cfg.Role == models.RoleInstructor && msg.Score != nil {
			c.mu.Lock()
			c.roster.UpsertFocus(msg.UserID, *msg.Score)
			c.mu.Unlock()
			c.renderView()
		}

	case models.MessageTypeSessionStatus:
		c.handleSessionStatus(msg.Status)

	case models.MessageTypeConnectionEstablished:
		if msg.Message != "" {
			c.cfg.Notifier.Info(msg.Message)
		}

	case models.MessageTypeUserJoined:
		c.mu.Lock()
		c.roster.SetConnected(msg.UserID, true)
		c.mu.Unlock()
		if msg.UserName != "" {
			c.cfg.Notifier.Info(fmt.Sprintf("%s joined the session", msg.UserName))
		}
		c.renderView()

	case models.MessageTypeUserLeft:
		c.mu.Lock()
		c.roster.SetConnected(msg.UserID, false)
		c.mu.Unlock()
		if msg.UserName != "" {
			c.cfg.Notifier.Info(fmt.Sprintf("%s left the session", msg.UserName))
		}
		c.renderView()

	case models.MessageTypeChat:
		c.cfg.Renderer.RenderChat(render.ChatEntry{
			UserID:    msg.UserID,
			UserName:  msg.UserName,
			Role:      msg.Role,
			Message:   msg.Message,
			Timestamp: msg.Timestamp,
		})

	case models.MessageTypeFocusUpdateAck:
		c.mu.Lock()
		c.acks++
		c.mu.Unlock()

	case models.MessageTypeError:
		c.cfg.Notifier.Error(msg.Message)

	default:
		log.Printf("live: ignoring message type %q", msg.Type)
	}
}

func (c *Controller) handleFocusData(msg *models.ChannelMessage) {
	switch c.cfg.Role {
	case models.RoleStudent:
		if msg.Score == nil {
			return
		}
		// server-pushed scores share the sampler path, so the relay
		// cadence and the window bound hold for both
		result := c.cfg.Sampler.Record(*msg.Score)
		c.relayIfDue(result)
		c.renderView()

	case models.RoleInstructor:
		c.mu.Lock()
		c.classData = msg.Data
		c.hasClassData = true
		c.mu.Unlock()
		c.renderView()
	}
}

func (c *Controller) handleSessionStatus(status models.SessionStatus) {
	c.mu.Lock()
	if c.machine == nil {
		c.mu.Unlock()
		return
	}

	t, ok := c.machine.Apply(status)
	if !ok {
		// ended is terminal; late transitions are ignored
		c.mu.Unlock()
		return
	}

	switch t.Timer {
	case sessionstate.TimerActionRun:
		c.timerRunning = true
	case sessionstate.TimerActionFreeze, sessionstate.TimerActionStop:
		c.timerRunning = false
	}
	c.session.Status = status
	c.mu.Unlock()

	switch status {
	case models.SessionStatusPaused:
		c.cfg.Notifier.Info("Session paused")
	case models.SessionStatusEnded:
		c.cfg.Notifier.Info("Session ended")
	}

	if t.Redirect {
		c.scheduleRedirect(c.endedRedirectDelay)
	}

	c.renderView()
}

func (c *Controller) handleObservation(obs focus.Observation) {
	c.mu.Lock()
	enabled := c.trackingEnabled
	c.mu.Unlock()
	if !enabled {
		return
	}

	result := c.cfg.Sampler.Observe(obs)
	c.relayIfDue(result)
	c.renderView()
}

// relayIfDue transmits every fifth score upstream and records it for the
// reports layer
func (c *Controller) relayIfDue(result focus.Result) {
	if !result.Relay {
		return
	}

	c.cfg.Channel.Send(&models.ChannelMessage{
		Type:   models.MessageTypeFocusUpdate,
		UserID: c.cfg.UserID,
		Score:  models.IntPtr(result.Score),
	})

	if c.cfg.Samples != nil {
		err := c.cfg.Samples.RecordSample(context.Background(), &samples.RecordSampleInput{
			SessionID: c.cfg.SessionID,
			UserID:    c.cfg.UserID,
			Sample: &models.FocusSample{
				Ordinal:   result.Ordinal,
				Score:     result.Score,
				Timestamp: c.clock.Now(),
			},
		})
		if err != nil {
			log.Printf("live: failed to record focus sample: %v", err)
		}
	}
}

func (c *Controller) snapshotRoster(ctx context.Context) {
	if c.cfg.Samples == nil {
		return
	}

	c.mu.Lock()
	participants := c.roster.Participants()
	c.mu.Unlock()

	err := c.cfg.Samples.SaveRosterSnapshot(ctx, &samples.SaveRosterSnapshotInput{
		SessionID:    c.cfg.SessionID,
		Participants: participants,
	})
	if err != nil {
		log.Printf("live: failed to snapshot roster: %v", err)
	}
}

func (c *Controller) tick() {
	c.mu.Lock()
	if c.timerRunning && c.session != nil {
		c.elapsed = c.clock.Now().Sub(c.session.StartTime)
	}
	c.mu.Unlock()

	c.renderView()
}

func (c *Controller) scheduleRedirect(delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redirectTimer != nil {
		return
	}

	c.redirectTimer = time.AfterFunc(delay, func() {
		if c.cfg.Redirect != nil {
			c.cfg.Redirect()
		}
		c.doneOnce.Do(func() {
			close(c.done)
		})
	})
}

func (c *Controller) renderView() {
	c.mu.Lock()

	header := render.Header{
		ParticipantCount: c.roster.Count(),
		ConnectionLost:   c.connectionLost,
		Elapsed:          c.elapsed,
	}
	if c.session != nil {
		header.Title = c.session.Title
		header.ClassroomName = c.session.ClassroomName
		header.Status = c.session.Status
	}

	switch c.cfg.Role {
	case models.RoleStudent:
		view := &render.StudentView{
			Header:          header,
			TrackingEnabled: c.trackingEnabled,
		}
		if c.cfg.Sampler != nil {
			if score, ok := c.cfg.Sampler.Current(); ok {
				view.HasScore = true
				view.CurrentScore = score
				view.Level = focus.Classify(score)
			}
			view.Window = c.cfg.Sampler.Window()
		}
		c.mu.Unlock()
		c.cfg.Renderer.RenderStudent(view)

	case models.RoleInstructor:
		view := &render.InstructorView{
			Header:       header,
			Participants: c.roster.Participants(),
			Breakdown:    c.roster.Breakdown(),
			AverageFocus: c.roster.AverageFocus(),
		}
		if c.hasClassData {
			view.AverageFocus = averageEntries(c.classData)
		}
		c.mu.Unlock()
		c.cfg.Renderer.RenderInstructor(view)

	default:
		c.mu.Unlock()
	}
}

// averageEntries guards the empty case explicitly; the upstream feed can
// emit empty focus_data lists
func averageEntries(entries []models.FocusEntry) float64 {
	if len(entries) == 0 {
		return 0
	}

	var sum int
	for _, e := range entries {
		sum += e.FocusScore
	}
	return float64(sum) / float64(len(entries))
}
