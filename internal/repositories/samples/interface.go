package samples

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/edufocus/liveclass/internal/repositories/samples Repository

import (
	"context"
)

// Repository defines the interface for focus-history persistence. Relayed
// focus scores and roster snapshots are recorded here so the reports layer
// can read them after the session.
type Repository interface {
	// RecordSample appends one relayed focus sample to a user's session history
	RecordSample(ctx context.Context, input *RecordSampleInput) error

	// GetSamples retrieves a user's recorded samples for a session, oldest first
	GetSamples(ctx context.Context, input *GetSamplesInput) (*GetSamplesOutput, error)

	// SaveRosterSnapshot stores the latest roster for a session
	SaveRosterSnapshot(ctx context.Context, input *SaveRosterSnapshotInput) error

	// GetRosterSnapshot retrieves the latest stored roster for a session
	GetRosterSnapshot(ctx context.Context, input *GetRosterSnapshotInput) (*GetRosterSnapshotOutput, error)
}
