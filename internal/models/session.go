package models

import (
	"time"
)

// SessionStatus represents the lifecycle state of a live session
type SessionStatus string

const (
	// SessionStatusScheduled indicates a session that has not started yet
	SessionStatusScheduled SessionStatus = "scheduled"

	// SessionStatusLive indicates a session that is currently running
	SessionStatusLive SessionStatus = "live"

	// SessionStatusPaused indicates a session that is temporarily paused
	SessionStatusPaused SessionStatus = "paused"

	// SessionStatusEnded indicates a session that has finished; this state is terminal
	SessionStatusEnded SessionStatus = "ended"
)

// Session represents a live classroom session
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// Title is the display title of the session
	Title string `json:"title"`

	// ClassroomID is the classroom this session belongs to
	ClassroomID string `json:"classroom_id"`

	// ClassroomName is the display name of the owning classroom
	ClassroomName string `json:"classroom_name"`

	// StartTime is when the session actually started
	StartTime time.Time `json:"start_time"`

	// EndTime is when the session ended, if it has
	EndTime *time.Time `json:"end_time,omitempty"`

	// Status is the current lifecycle state
	Status SessionStatus `json:"status"`
}
