// Package roster maintains the live participant list and its aggregate
// focus statistics.
package roster

import (
	"sort"

	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/models"
)

// Roster holds at most one participant per identity. Content changes only
// through full replacement; focus scores may be patched individually
// between refreshes. A roster is driven from a single dispatch loop and is
// not safe for concurrent use.
type Roster struct {
	participants map[string]models.Participant
}

// New creates an empty roster
func New() *Roster {
	return &Roster{
		participants: make(map[string]models.Participant),
	}
}

// Replace swaps the whole roster for the given participants, last writer
// wins. It never merges with prior state; a participant absent from the
// new set is gone. Duplicate identities collapse to the last entry.
func (r *Roster) Replace(participants []models.Participant) {
	next := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		next[p.ID] = p
	}
	r.participants = next
}

// UpsertFocus patches one participant's score between roster refreshes. It
// is a no-op for identities not currently in the roster; removed
// participants are never resurrected.
func (r *Roster) UpsertFocus(id string, score int) bool {
	p, ok := r.participants[id]
	if !ok {
		return false
	}

	p.FocusScore = score
	p.HasFocusScore = true
	r.participants[id] = p
	return true
}

// SetConnected flags a participant's channel presence without touching the
// rest of their entry
func (r *Roster) SetConnected(id string, connected bool) bool {
	p, ok := r.participants[id]
	if !ok {
		return false
	}

	p.Connected = connected
	r.participants[id] = p
	return true
}

// Count returns the number of participants
func (r *Roster) Count() int {
	return len(r.participants)
}

// Participants returns the roster sorted by name for stable rendering
func (r *Roster) Participants() []models.Participant {
	out := make([]models.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// AverageFocus returns the arithmetic mean of all known scores. An empty
// roster yields 0, never NaN; the upstream aggregation computes this
// division unguarded and can emit empty-state artifacts.
func (r *Roster) AverageFocus() float64 {
	if len(r.participants) == 0 {
		return 0
	}

	var sum int
	for _, p := range r.participants {
		sum += p.FocusScore
	}

	return float64(sum) / float64(len(r.participants))
}

// Breakdown counts participants per focus level
func (r *Roster) Breakdown() map[focus.Level]int {
	out := make(map[focus.Level]int)
	for _, p := range r.participants {
		out[focus.Classify(p.FocusScore)]++
	}
	return out
}
