package focus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/edufocus/liveclass/internal/common/clock/mocks"
)

type SamplerTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	sampler   *Sampler
	testTime  time.Time
}

func (s *SamplerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.testTime = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	sampler, err := New(&Config{
		FrameWidth:  640,
		FrameHeight: 480,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.sampler = sampler
}

func TestSamplerTestSuite(t *testing.T) {
	suite.Run(t, new(SamplerTestSuite))
}

func (s *SamplerTestSuite) TestNewRequiresFrameDimensions() {
	_, err := New(&Config{FrameWidth: 0, FrameHeight: 480})
	s.Error(err)

	_, err = New(nil)
	s.Error(err)
}

func (s *SamplerTestSuite) TestScoreAtCenter() {
	s.Equal(100, Score(320, 240, 640, 480))
}

func (s *SamplerTestSuite) TestScoreAtCorners() {
	s.Equal(0, Score(0, 0, 640, 480))
	s.Equal(0, Score(640, 0, 640, 480))
	s.Equal(0, Score(0, 480, 640, 480))
	s.Equal(0, Score(640, 480, 640, 480))
}

func (s *SamplerTestSuite) TestScoreAlwaysBounded() {
	// including gaze estimates that wander outside the frame
	points := [][2]float64{
		{-200, -200}, {900, 700}, {320, -50}, {-10, 240}, {320, 240}, {1, 479},
	}
	for _, p := range points {
		score := Score(p[0], p[1], 640, 480)
		s.GreaterOrEqual(score, 0)
		s.LessOrEqual(score, 100)
	}
}

func (s *SamplerTestSuite) TestEveryFifthObservationRelays() {
	var relayed []int
	for i := 0; i < 12; i++ {
		result := s.sampler.Observe(Observation{X: 320, Y: 240})
		if result.Relay {
			relayed = append(relayed, result.Ordinal)
		}
	}

	s.Equal([]int{5, 10}, relayed)
	s.Len(s.sampler.Window(), 12)
}

func (s *SamplerTestSuite) TestWindowRetainsMostRecentThirty() {
	for i := 0; i < 35; i++ {
		s.sampler.Observe(Observation{X: 320, Y: 240})
	}

	window := s.sampler.Window()
	s.Require().Len(window, 30)
	s.Equal(6, window[0].Ordinal)
	s.Equal(35, window[29].Ordinal)
	s.Equal(s.testTime, window[0].Timestamp)
}

func (s *SamplerTestSuite) TestCurrentBeforeAnyObservation() {
	_, ok := s.sampler.Current()
	s.False(ok)
}

func (s *SamplerTestSuite) TestCurrentPersistsBetweenObservations() {
	s.sampler.Observe(Observation{X: 320, Y: 240})

	// no observation arrives for a while; the score must not decay
	score, ok := s.sampler.Current()
	s.True(ok)
	s.Equal(100, score)
}

func (s *SamplerTestSuite) TestRecordSharesCadenceWithObserve() {
	for i := 0; i < 4; i++ {
		result := s.sampler.Observe(Observation{X: 320, Y: 240})
		s.False(result.Relay)
	}

	// a server-pushed score lands on ordinal 5
	result := s.sampler.Record(55)
	s.True(result.Relay)
	s.Equal(5, result.Ordinal)
	s.Equal(55, result.Score)
}

func (s *SamplerTestSuite) TestClassify() {
	s.Equal(LevelHigh, Classify(100))
	s.Equal(LevelHigh, Classify(70))
	s.Equal(LevelMedium, Classify(69))
	s.Equal(LevelMedium, Classify(40))
	s.Equal(LevelLow, Classify(39))
	s.Equal(LevelLow, Classify(0))
}
