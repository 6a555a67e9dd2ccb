package service

import (
	"fmt"
	"regexp"
	"time"

	"recall/internal/domain"
	"recall/internal/repository"
	"recall/internal/scheduler"

	"go.uber.org/zap"
)

var deckSlugPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// DeckService handles deck statistics and card creation
type DeckService struct {
	vault    repository.VaultRepository
	progress repository.ProgressRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeckService creates a new deck service
func NewDeckService(vault repository.VaultRepository, progress repository.ProgressRepository, logger *zap.Logger) *DeckService {
	return &DeckService{
		vault:    vault,
		progress: progress,
		logger:   logger,
		now:      time.Now,
	}
}

// Stats returns per-deck counts plus the dashboard total row
func (s *DeckService) Stats() ([]domain.DeckStats, domain.DeckStats, error) {
	cards, err := s.vault.LoadCards()
	if err != nil {
		return nil, domain.DeckStats{}, fmt.Errorf("load cards: %w", err)
	}
	progressByID, err := s.progress.Load()
	if err != nil {
		return nil, domain.DeckStats{}, fmt.Errorf("load progress: %w", err)
	}

	stats := scheduler.Aggregate(cards, progressByID, s.now())
	return stats, scheduler.Totals(stats), nil
}

// AddCard validates and stores a new card. The card gets no progress
// record, so it is immediately new and due.
func (s *DeckService) AddCard(deck string, kind domain.CardKind, question, answer, hint, image string) (domain.Card, error) {
	if !deckSlugPattern.MatchString(deck) {
		return domain.Card{}, fmt.Errorf("deck name must be a lowercase alphanumeric slug, got %q", deck)
	}
	if !kind.IsValid() {
		return domain.Card{}, fmt.Errorf("unknown card kind %q", kind)
	}
	if question == "" || answer == "" {
		return domain.Card{}, fmt.Errorf("question and answer cannot be empty")
	}

	now := s.now()
	card := domain.Card{
		ID:        fmt.Sprintf("%s-%x", deck, now.UnixNano()),
		Deck:      deck,
		Kind:      kind,
		Question:  question,
		Answer:    answer,
		Hint:      hint,
		Image:     image,
		CreatedAt: now,
	}

	if err := s.vault.SaveCard(card); err != nil {
		return domain.Card{}, fmt.Errorf("save card: %w", err)
	}

	s.logger.Info("Card added",
		zap.String("card_id", card.ID),
		zap.String("deck", deck),
	)

	return card, nil
}

// Refresh reloads the card collection from the vault
func (s *DeckService) Refresh() ([]domain.Card, error) {
	cards, err := s.vault.Refresh()
	if err != nil {
		s.logger.Error("Vault refresh failed", zap.Error(err))
		return nil, fmt.Errorf("refresh vault: %w", err)
	}
	return cards, nil
}
