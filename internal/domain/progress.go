package domain

import "time"

// Scheduling defaults and floors shared by the engine.
const (
	DefaultEase = 2.5
	MinEase     = 1.3
)

// Progress holds one card's review history. Created on first review,
// persisted by the progress store.
type Progress struct {
	CardID       string     `json:"card_id"`
	Ease         float64    `json:"ease"`
	Interval     int        `json:"interval"`
	Reps         int        `json:"reps"`
	Lapses       int        `json:"lapses"`
	Due          time.Time  `json:"due"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

// NewProgress returns the default record for a never-reviewed card:
// due immediately, nothing accumulated.
func NewProgress(cardID string, now time.Time) Progress {
	return Progress{
		CardID: cardID,
		Ease:   DefaultEase,
		Due:    now,
	}
}
