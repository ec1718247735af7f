package samples

import "github.com/edufocus/liveclass/internal/models"

// RecordSampleInput contains parameters for recording a focus sample
type RecordSampleInput struct {
	SessionID string
	UserID    string
	Sample    *models.FocusSample
}

// GetSamplesInput contains parameters for retrieving a user's samples
type GetSamplesInput struct {
	SessionID string
	UserID    string
}

// GetSamplesOutput contains the retrieved samples, oldest first
type GetSamplesOutput struct {
	Samples []*models.FocusSample
}

// SaveRosterSnapshotInput contains parameters for storing a roster snapshot
type SaveRosterSnapshotInput struct {
	SessionID    string
	Participants []models.Participant
}

// GetRosterSnapshotInput contains parameters for retrieving a roster snapshot
type GetRosterSnapshotInput struct {
	SessionID string
}

// GetRosterSnapshotOutput contains the retrieved roster snapshot
type GetRosterSnapshotOutput struct {
	Participants []models.Participant
}
