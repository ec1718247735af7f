package sessionstate

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/edufocus/liveclass/internal/models"
)

type MachineTestSuite struct {
	suite.Suite
}

func TestMachineTestSuite(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}

func (s *MachineTestSuite) TestInitialStatusFromSessionRecord() {
	m := New(models.SessionStatusScheduled)
	s.Equal(models.SessionStatusScheduled, m.Status())

	m = New(models.SessionStatusLive)
	s.Equal(models.SessionStatusLive, m.Status())
}

func (s *MachineTestSuite) TestApplyLiveStartsTimer() {
	m := New(models.SessionStatusScheduled)

	t, ok := m.Apply(models.SessionStatusLive)
	s.True(ok)
	s.Equal(models.SessionStatusScheduled, t.From)
	s.Equal(models.SessionStatusLive, t.To)
	s.Equal(TimerActionRun, t.Timer)
	s.False(t.Redirect)
}

func (s *MachineTestSuite) TestApplyPausedFreezesTimer() {
	m := New(models.SessionStatusLive)

	t, ok := m.Apply(models.SessionStatusPaused)
	s.True(ok)
	s.Equal(TimerActionFreeze, t.Timer)
}

func (s *MachineTestSuite) TestApplyEndedStopsTimerAndRedirects() {
	m := New(models.SessionStatusLive)

	t, ok := m.Apply(models.SessionStatusEnded)
	s.True(ok)
	s.Equal(TimerActionStop, t.Timer)
	s.True(t.Redirect)
}

func (s *MachineTestSuite) TestEndedIsTerminal() {
	m := New(models.SessionStatusLive)

	_, ok := m.Apply(models.SessionStatusEnded)
	s.True(ok)

	_, ok = m.Apply(models.SessionStatusLive)
	s.False(ok)
	s.Equal(models.SessionStatusEnded, m.Status())

	_, ok = m.Apply(models.SessionStatusPaused)
	s.False(ok)
	s.Equal(models.SessionStatusEnded, m.Status())
}

func (s *MachineTestSuite) TestInboundWinsOverInFlightControl() {
	// a local end control is sent but unconfirmed when a paused status
	// arrives; the channel is the source of truth
	m := New(models.SessionStatusLive)
	m.MarkControlSent(models.ControlActionEnd)

	t, ok := m.Apply(models.SessionStatusPaused)
	s.True(ok)
	s.Equal(models.SessionStatusPaused, m.Status())
	s.Equal(TimerActionFreeze, t.Timer)

	_, pending := m.PendingControl()
	s.False(pending)

	// the confirmation arrives later and still applies
	t, ok = m.Apply(models.SessionStatusEnded)
	s.True(ok)
	s.True(t.Redirect)
}

func (s *MachineTestSuite) TestControlDoesNotChangeStatusLocally() {
	m := New(models.SessionStatusLive)
	m.MarkControlSent(models.ControlActionPaused)

	s.Equal(models.SessionStatusLive, m.Status())

	action, pending := m.PendingControl()
	s.True(pending)
	s.Equal(models.ControlActionPaused, action)
}
