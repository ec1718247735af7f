// Package render defines the typed view models the controller pushes into
// the rendering boundary. State transitions never touch presentation
// directly; they produce one of these views.
package render

import (
	"time"

	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/models"
)

// Header is the session summary shared by both role views
type Header struct {
	// Title is the session title
	Title string

	// ClassroomName is the owning classroom's display name
	ClassroomName string

	// Status is the current lifecycle state
	Status models.SessionStatus

	// Elapsed is the running session duration; frozen while paused
	Elapsed time.Duration

	// ParticipantCount is the current roster size
	ParticipantCount int

	// ConnectionLost is true once the channel gave up reconnecting
	ConnectionLost bool
}

// StudentView is the self-monitor view bound to the student role
type StudentView struct {
	Header

	// TrackingEnabled is false when gaze tracking could not be initialized
	TrackingEnabled bool

	// HasScore is false before the first observation; render as "no score
	// available", never as 0
	HasScore bool

	// CurrentScore is the latest focus score
	CurrentScore int

	// Level classifies the current score
	Level focus.Level

	// Window is the recent-sample chart data, oldest first
	Window []models.FocusSample
}

// InstructorView is the aggregate monitor view bound to the instructor role
type InstructorView struct {
	Header

	// AverageFocus is the classroom-wide mean score; 0 on an empty roster
	AverageFocus float64

	// Participants is the roster, sorted by name
	Participants []models.Participant

	// Breakdown counts participants per focus level
	Breakdown map[focus.Level]int
}

// ChatEntry is one chat line relayed through the session channel
type ChatEntry struct {
	// UserID and UserName identify the sender
	UserID   string
	UserName string

	// Role is the sender's role
	Role models.Role

	// Message is the chat text
	Message string

	// Timestamp is the server timestamp, if present
	Timestamp string
}

// Renderer consumes view models. Implementations must not retain the
// slices inside a view past the call.
type Renderer interface {
	// RenderStudent presents the student self-monitor view
	RenderStudent(view *StudentView)

	// RenderInstructor presents the instructor aggregate view
	RenderInstructor(view *InstructorView)

	// RenderChat presents one chat line
	RenderChat(entry ChatEntry)
}
