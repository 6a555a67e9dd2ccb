package testutil

import (
	"time"

	"recall/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCard creates a test card in the given deck
func NewTestCard(id, deck, question, answer string) domain.Card {
	return domain.Card{
		ID:        id,
		Deck:      deck,
		Kind:      domain.KindBasic,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// NewTestProgress creates a seen progress record due at the given offset
// from the reference instant.
func NewTestProgress(cardID string, reps, interval int, due time.Time) domain.Progress {
	reviewed := due.AddDate(0, 0, -interval)
	return domain.Progress{
		CardID:       cardID,
		Ease:         domain.DefaultEase,
		Interval:     interval,
		Reps:         reps,
		Due:          due,
		LastReviewed: &reviewed,
	}
}
