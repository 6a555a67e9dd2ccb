// Package session holds the review-session state machine: one value per
// active review, owned by the caller, driven synchronously from the UI
// layer. All scheduling math is delegated to the scheduler package.
package session

import (
	"fmt"
	"time"

	"recall/internal/domain"
	"recall/internal/scheduler"

	"go.uber.org/zap"
)

// ProgressWriter is the store surface the session needs: one write per
// submitted rating. Retry and backoff are the store's concern.
type ProgressWriter interface {
	Save(cardID string, progress domain.Progress) error
}

// Session drives one review pass over a prebuilt queue. It is not safe for
// concurrent use; each chat or window owns its own value.
type Session struct {
	deckFilter string
	queue      []string
	cards      map[string]domain.Card
	progress   map[string]domain.Progress

	index     int
	flipped   bool
	hintShown bool
	active    bool

	store  ProgressWriter
	now    func() time.Time
	logger *zap.Logger
}

// Snapshot is the read-only view the UI layer renders from.
type Snapshot struct {
	DeckFilter  string
	QueueLength int
	Position    int
	Flipped     bool
	HintShown   bool
	Card        domain.Card
	Active      bool
}

// New creates an active session over the given queue. The queue must be
// non-empty and every identifier must resolve in cards; ReviewService
// guarantees both.
func New(
	deckFilter string,
	queue []string,
	cards map[string]domain.Card,
	progress map[string]domain.Progress,
	store ProgressWriter,
	now func() time.Time,
	logger *zap.Logger,
) *Session {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		deckFilter: deckFilter,
		queue:      queue,
		cards:      cards,
		progress:   progress,
		active:     len(queue) > 0,
		store:      store,
		now:        now,
		logger:     logger,
	}
}

// Snapshot returns the current view of the session
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		DeckFilter:  s.deckFilter,
		QueueLength: len(s.queue),
		Position:    s.index,
		Flipped:     s.flipped,
		HintShown:   s.hintShown,
		Active:      s.active,
	}
	if s.active {
		snap.Card = s.cards[s.queue[s.index]]
	}
	return snap
}

// Active reports whether the session still has cards to review
func (s *Session) Active() bool {
	return s.active
}

// Preview returns the interval each rating would produce for the current
// card. It never mutates progress.
func (s *Session) Preview() (scheduler.IntervalPreview, error) {
	if !s.active {
		return scheduler.IntervalPreview{}, ErrInvalidTransition
	}
	return scheduler.PreviewIntervals(s.currentProgress(), s.now()), nil
}

// Flip reveals the answer. Flipping an already-flipped card is a no-op;
// flipping outside an active session is a contract violation.
func (s *Session) Flip() error {
	if !s.active {
		return ErrInvalidTransition
	}
	s.flipped = true
	return nil
}

// ToggleHint shows or hides the hint. Valid only before the flip and only
// when the current card carries a hint.
func (s *Session) ToggleHint() error {
	if !s.active || s.flipped {
		return ErrInvalidTransition
	}
	card := s.cards[s.queue[s.index]]
	if !card.HasHint() {
		return ErrInvalidTransition
	}
	s.hintShown = !s.hintShown
	return nil
}

// SubmitReview commits a rating for the current card: applies the interval
// update, persists it, and advances to the next card. A store failure is
// returned to the caller but the queue still advances; the card counts as
// reviewed for this session and the write is the store's to reconcile.
func (s *Session) SubmitReview(rating domain.Rating) error {
	if !s.active || !s.flipped {
		return ErrInvalidTransition
	}
	if !rating.IsValid() {
		return fmt.Errorf("%w: rating %d", ErrInvalidTransition, int(rating))
	}

	cardID := s.queue[s.index]
	now := s.now()
	updated := scheduler.ApplyRating(s.currentProgress(), rating, now)
	s.progress[cardID] = updated

	var saveErr error
	if err := s.store.Save(cardID, updated); err != nil {
		s.logger.Error("Failed to persist review",
			zap.String("card_id", cardID),
			zap.Error(err),
		)
		saveErr = fmt.Errorf("save progress for %s: %w", cardID, err)
	} else {
		s.logger.Info("Review committed",
			zap.String("card_id", cardID),
			zap.String("rating", rating.String()),
			zap.Int("interval_days", updated.Interval),
		)
	}

	s.index++
	s.flipped = false
	s.hintShown = false
	if s.index >= len(s.queue) {
		s.active = false
	}

	return saveErr
}

// End discards the remaining queue. Already-committed ratings stand.
// Idempotent: ending an inactive session is a no-op.
func (s *Session) End() {
	s.active = false
}

// currentProgress returns the current card's record, or the default record
// for a never-reviewed card.
func (s *Session) currentProgress() domain.Progress {
	cardID := s.queue[s.index]
	if p, ok := s.progress[cardID]; ok {
		return p
	}
	return domain.NewProgress(cardID, s.now())
}
