package roster

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/models"
)

type RosterTestSuite struct {
	suite.Suite
	roster *Roster
}

func (s *RosterTestSuite) SetupTest() {
	s.roster = New()
}

func TestRosterTestSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func (s *RosterTestSuite) TestAverageFocusOnEmptyRoster() {
	s.Equal(0.0, s.roster.AverageFocus())
	s.Equal(0, s.roster.Count())
}

func (s *RosterTestSuite) TestReplaceAndAggregate() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", Role: models.RoleStudent, FocusScore: 80},
		{ID: "2", Name: "Ben", Role: models.RoleStudent, FocusScore: 20},
	})

	s.Equal(2, s.roster.Count())
	s.Equal(50.0, s.roster.AverageFocus())

	breakdown := s.roster.Breakdown()
	s.Equal(1, breakdown[focus.LevelHigh])
	s.Equal(1, breakdown[focus.LevelLow])
	s.Equal(0, breakdown[focus.LevelMedium])
}

func (s *RosterTestSuite) TestReplaceNeverMerges() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
		{ID: "2", Name: "Ben", FocusScore: 20},
	})

	s.roster.Replace([]models.Participant{
		{ID: "2", Name: "Ben", FocusScore: 35},
	})

	s.Equal(1, s.roster.Count())
	participants := s.roster.Participants()
	s.Require().Len(participants, 1)
	s.Equal("2", participants[0].ID)
	s.Equal(35, participants[0].FocusScore)
}

func (s *RosterTestSuite) TestDuplicateJoinIsIdempotent() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
		{ID: "1", Name: "Ada", FocusScore: 75},
	})

	s.Equal(1, s.roster.Count())
	s.Equal(75, s.roster.Participants()[0].FocusScore)
}

func (s *RosterTestSuite) TestUpsertFocusPatchesOneParticipant() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
		{ID: "2", Name: "Ben", FocusScore: 20},
	})

	ok := s.roster.UpsertFocus("2", 60)
	s.True(ok)

	participants := s.roster.Participants()
	s.Equal(80, participants[0].FocusScore) // Ada untouched
	s.Equal(60, participants[1].FocusScore)
	s.True(participants[1].HasFocusScore)
}

func (s *RosterTestSuite) TestUpsertFocusDoesNotResurrect() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
		{ID: "2", Name: "Ben", FocusScore: 20},
	})

	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
	})

	ok := s.roster.UpsertFocus("2", 90)
	s.False(ok)
	s.Equal(1, s.roster.Count())
}

func (s *RosterTestSuite) TestSetConnected() {
	s.roster.Replace([]models.Participant{
		{ID: "1", Name: "Ada", FocusScore: 80},
	})

	s.True(s.roster.SetConnected("1", true))
	s.True(s.roster.Participants()[0].Connected)

	s.False(s.roster.SetConnected("missing", true))
}

func (s *RosterTestSuite) TestParticipantsSortedByName() {
	s.roster.Replace([]models.Participant{
		{ID: "3", Name: "Cara"},
		{ID: "1", Name: "Ada"},
		{ID: "2", Name: "Ben"},
	})

	participants := s.roster.Participants()
	s.Equal("Ada", participants[0].Name)
	s.Equal("Ben", participants[1].Name)
	s.Equal("Cara", participants[2].Name)
}
