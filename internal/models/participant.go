package models

// Role identifies what a user can do in a session
type Role string

const (
	// RoleInstructor is the session owner; can pause, resume and end it
	RoleInstructor Role = "instructor"

	// RoleStudent joins a session and reports focus scores
	RoleStudent Role = "student"
)

// Participant represents one user currently in a live session
type Participant struct {
	// ID is the user identity; the roster holds at most one entry per ID
	ID string `json:"id"`

	// Name is the display name of the participant
	Name string `json:"name"`

	// Role is the participant's role in the session
	Role Role `json:"role"`

	// FocusScore is the last known focus score, 0-100
	FocusScore int `json:"focus_score"`

	// HasFocusScore is false when the participant has focus tracking
	// disabled; a missing score is not the same as a score of zero
	HasFocusScore bool `json:"has_focus_score,omitempty"`

	// Connected indicates whether the participant's channel is currently up
	Connected bool `json:"connected,omitempty"`
}

// FocusEntry is one participant's score in an instructor-facing
// classroom-wide focus_data message
type FocusEntry struct {
	// Name is the participant display name
	Name string `json:"name"`

	// FocusScore is the participant's latest score, 0-100
	FocusScore int `json:"focus_score"`
}
