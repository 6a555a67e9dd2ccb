package repository

import (
	"recall/internal/domain"
)

// VaultRepository defines card storage operations. Cards are content the
// engine never mutates after creation.
type VaultRepository interface {
	LoadCards() ([]domain.Card, error)
	Refresh() ([]domain.Card, error)
	SaveCard(card domain.Card) error
}

// ProgressRepository defines review-history storage operations
type ProgressRepository interface {
	Load() (map[string]domain.Progress, error)
	Save(cardID string, progress domain.Progress) error
}

// TransferRepository defines bulk import. ImportAll must be atomic:
// either every card and progress record lands or none do. With replace set,
// existing data is dropped first; otherwise records are upserted by ID.
type TransferRepository interface {
	ImportAll(cards []domain.Card, progressByID map[string]domain.Progress, replace bool) error
}
