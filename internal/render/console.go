package render

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Console renders views as log lines; it is the default renderer for the
// headless client
type Console struct{}

// NewConsole creates a console renderer
func NewConsole() *Console {
	return &Console{}
}

// RenderStudent prints the self-monitor view
func (c *Console) RenderStudent(view *StudentView) {
	score := "no score available"
	if view.HasScore {
		score = fmt.Sprintf("%d%% (%s)", view.CurrentScore, view.Level)
	}
	if !view.TrackingEnabled {
		score = "focus tracking disabled"
	}

	log.Printf("[%s] %s | %s | %s | focus: %s | samples: %d",
		view.Status, view.Title, view.ClassroomName,
		FormatElapsed(view.Elapsed), score, len(view.Window))
}

// RenderInstructor prints the aggregate view with one bar per participant
func (c *Console) RenderInstructor(view *InstructorView) {
	log.Printf("[%s] %s | %s | %s | participants: %d | avg focus: %.1f%%",
		view.Status, view.Title, view.ClassroomName,
		FormatElapsed(view.Elapsed), view.ParticipantCount, view.AverageFocus)

	for _, p := range view.Participants {
		log.Printf("  %-20s %s %3d%%", p.Name, scoreBar(p.FocusScore), p.FocusScore)
	}
}

// RenderChat prints one chat line
func (c *Console) RenderChat(entry ChatEntry) {
	log.Printf("chat %s (%s): %s", entry.UserName, entry.Role, entry.Message)
}

// FormatElapsed renders a duration as HH:MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// scoreBar builds a ten-segment bar for a 0-100 score
func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	filled := score / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}
