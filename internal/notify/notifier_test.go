package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/edufocus/liveclass/internal/common/clock/mocks"
	uuidMocks "github.com/edufocus/liveclass/internal/common/uuid/mocks"
)

type recordingSink struct {
	mu      sync.Mutex
	shown   []Notification
	expired []string
}

func (r *recordingSink) Show(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
}

func (r *recordingSink) Expire(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired = append(r.expired, id)
}

func (r *recordingSink) expiredIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.expired))
	copy(out, r.expired)
	return out
}

type NotifierTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	sink      *recordingSink
	notifier  *Notifier
	testTime  time.Time
}

func (s *NotifierTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.sink = &recordingSink{}
	s.testTime = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	notifier, err := New(&Config{
		Sink:       s.sink,
		UUID:       s.mockUUID,
		Clock:      s.mockClock,
		SuccessTTL: 20 * time.Millisecond,
		InfoTTL:    10 * time.Millisecond,
		ErrorTTL:   20 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.notifier = notifier
}

func (s *NotifierTestSuite) TearDownTest() {
	s.notifier.Close()
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (s *NotifierTestSuite) TestShowAndAutoExpire() {
	s.mockUUID.EXPECT().NewUUID().Return("note-1")

	id := s.notifier.Error("Connection lost. Attempting to reconnect...")
	s.Equal("note-1", id)

	s.Require().Len(s.sink.shown, 1)
	s.Equal(LevelError, s.sink.shown[0].Level)
	s.Equal(s.testTime, s.sink.shown[0].CreatedAt)

	s.Eventually(func() bool {
		ids := s.sink.expiredIDs()
		return len(ids) == 1 && ids[0] == "note-1"
	}, time.Second, 5*time.Millisecond)
}

func (s *NotifierTestSuite) TestDismissCancelsExpiry() {
	s.mockUUID.EXPECT().NewUUID().Return("note-2")

	id := s.notifier.Info("Session paused")
	s.notifier.Dismiss(id)

	s.Equal([]string{"note-2"}, s.sink.expiredIDs())

	// the timer was cancelled; no second expiry arrives
	time.Sleep(30 * time.Millisecond)
	s.Equal([]string{"note-2"}, s.sink.expiredIDs())
}

func (s *NotifierTestSuite) TestCloseCancelsPendingTimers() {
	s.mockUUID.EXPECT().NewUUID().Return("note-3")

	s.notifier.Success("Joined session successfully")
	s.notifier.Close()

	time.Sleep(40 * time.Millisecond)
	s.Empty(s.sink.expiredIDs())
}

func (s *NotifierTestSuite) TestDefaultTTLs() {
	notifier, err := New(&Config{Sink: s.sink})
	s.Require().NoError(err)
	defer notifier.Close()

	s.Equal(5*time.Second, notifier.successTTL)
	s.Equal(3*time.Second, notifier.infoTTL)
	s.Equal(5*time.Second, notifier.errorTTL)
}

func (s *NotifierTestSuite) TestNewRequiresSink() {
	_, err := New(&Config{})
	s.Error(err)

	_, err = New(nil)
	s.Error(err)
}
