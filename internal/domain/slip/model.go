package slip

import "time"

type Status string

const (
	StatusOpen      Status = "open"
	StatusLocked    Status = "locked"
	StatusCompleted Status = "completed"
)

// Slip is a time-boxed round of picks inside a group.
type Slip struct {
	ID              string
	GroupID         string
	Name            string
	PickDeadline    time.Time
	ResultsDeadline time.Time
	IsVibe          bool
	MaxPicksPerUser int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Status reports where the slip sits in its pick window at now.
// A zero results deadline keeps the slip locked once picks close.
func (s Slip) Status(now time.Time) Status {
	if s.PickDeadline.IsZero() || now.Before(s.PickDeadline) {
		return StatusOpen
	}
	if s.ResultsDeadline.IsZero() || now.Before(s.ResultsDeadline) {
		return StatusLocked
	}
	return StatusCompleted
}

func (s Slip) AcceptsPicks(now time.Time) bool {
	return s.Status(now) == StatusOpen
}

// CountsTowardLeaderboard is false for vibe slips, which only award XP.
func (s Slip) CountsTowardLeaderboard() bool {
	return !s.IsVibe
}
