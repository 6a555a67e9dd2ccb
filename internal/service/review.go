package service

import (
	"fmt"
	"time"

	"recall/internal/domain"
	"recall/internal/repository"
	"recall/internal/scheduler"
	"recall/internal/session"

	"go.uber.org/zap"
)

// ReviewService builds and hands out review sessions
type ReviewService struct {
	vault    repository.VaultRepository
	progress repository.ProgressRepository
	settings scheduler.Settings
	logger   *zap.Logger
	now      func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(
	vault repository.VaultRepository,
	progress repository.ProgressRepository,
	settings scheduler.Settings,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		vault:    vault,
		progress: progress,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Start builds the queue for the given deck and returns an active session.
// An empty deckFilter means all decks. Returns session.ErrNoDueCards when
// nothing is reviewable.
func (s *ReviewService) Start(deckFilter string) (*session.Session, error) {
	cards, progressByID, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	queue := scheduler.BuildQueue(cards, progressByID, deckFilter, s.settings, now)
	if len(queue) == 0 {
		return nil, session.ErrNoDueCards
	}

	cardsByID := make(map[string]domain.Card, len(cards))
	for _, c := range cards {
		cardsByID[c.ID] = c
	}

	s.logger.Info("Review session started",
		zap.String("deck", deckFilter),
		zap.Int("queue_length", len(queue)),
	)

	return session.New(deckFilter, queue, cardsByID, progressByID, s.progress, s.now, s.logger), nil
}

// ReviewableCount reports how many cards Start would queue for the deck,
// without building the session. Used to enable or disable the start action.
func (s *ReviewService) ReviewableCount(deckFilter string) (int, error) {
	cards, progressByID, err := s.load()
	if err != nil {
		return 0, err
	}
	return scheduler.ReviewableCount(cards, progressByID, deckFilter, s.settings, s.now()), nil
}

func (s *ReviewService) load() ([]domain.Card, map[string]domain.Progress, error) {
	cards, err := s.vault.LoadCards()
	if err != nil {
		return nil, nil, fmt.Errorf("load cards: %w", err)
	}
	progressByID, err := s.progress.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load progress: %w", err)
	}
	return cards, progressByID, nil
}
