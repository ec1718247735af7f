package gaze

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SyntheticTestSuite struct {
	suite.Suite
}

func TestSyntheticTestSuite(t *testing.T) {
	suite.Run(t, new(SyntheticTestSuite))
}

func (s *SyntheticTestSuite) TestObservationsStayInFrame() {
	source, err := NewSynthetic(&SyntheticConfig{
		FrameWidth:  640,
		FrameHeight: 480,
		Interval:    time.Millisecond,
		Seed:        42,
	})
	s.Require().NoError(err)

	s.Require().NoError(source.Start(context.Background()))
	defer source.Stop()

	for i := 0; i < 20; i++ {
		select {
		case obs := <-source.Observations():
			s.GreaterOrEqual(obs.X, 0.0)
			s.LessOrEqual(obs.X, 640.0)
			s.GreaterOrEqual(obs.Y, 0.0)
			s.LessOrEqual(obs.Y, 480.0)
		case <-time.After(time.Second):
			s.Require().FailNow("timed out waiting for observation")
		}
	}
}

func (s *SyntheticTestSuite) TestStopClosesStream() {
	source, err := NewSynthetic(&SyntheticConfig{
		FrameWidth:  640,
		FrameHeight: 480,
		Interval:    time.Millisecond,
		Seed:        7,
	})
	s.Require().NoError(err)
	s.Require().NoError(source.Start(context.Background()))

	source.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-source.Observations():
			if !open {
				return
			}
		case <-deadline:
			s.Require().FailNow("stream never closed")
		}
	}
}

func (s *SyntheticTestSuite) TestConfigValidation() {
	_, err := NewSynthetic(nil)
	s.Error(err)

	_, err = NewSynthetic(&SyntheticConfig{FrameWidth: 0, FrameHeight: 480})
	s.Error(err)
}
