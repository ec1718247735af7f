package models

import (
	"time"
)

// FocusSample is one scored gaze observation kept in the local chart window
type FocusSample struct {
	// Ordinal is the 1-based index of the observation within the session
	Ordinal int `json:"ordinal"`

	// Score is the focus score derived from the observation, 0-100
	Score int `json:"score"`

	// Timestamp is when the observation was scored
	Timestamp time.Time `json:"timestamp"`
}
