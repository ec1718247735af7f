// Package focus turns raw gaze observations into bounded focus scores and
// manages the upstream reporting cadence.
package focus

import (
	"math"
)

// Level buckets a focus score for display
type Level string

const (
	// LevelHigh is a score of 70 or above
	LevelHigh Level = "high"

	// LevelMedium is a score between 40 and 69
	LevelMedium Level = "medium"

	// LevelLow is a score below 40
	LevelLow Level = "low"
)

// Classify maps a score to its display level. The thresholds are a fixed
// contract shared by the roster and the sampler consumers.
func Classify(score int) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Score converts a gaze position within a frame to a focus score. Gaze at
// the geometric center scores 100; gaze at a corner scores 0. The result
// is clamped to [0, 100].
func Score(x, y, frameWidth, frameHeight float64) int {
	centerX := frameWidth / 2
	centerY := frameHeight / 2

	distance := math.Sqrt(math.Pow(x-centerX, 2) + math.Pow(y-centerY, 2))
	maxDistance := math.Sqrt(math.Pow(frameWidth, 2)+math.Pow(frameHeight, 2)) / 2

	score := 100 - int(math.Round(distance/maxDistance*100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}
