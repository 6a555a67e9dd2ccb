package scheduler

import (
	"sort"
	"time"

	"recall/internal/domain"
)

// Settings bounds one review session.
type Settings struct {
	DailyLimit      int  // hard ceiling on queue length, >= 1
	NewCardsPerDay  int  // new cards admitted per session, >= 0
	IncludeNewCards bool // admit unseen cards at all
}

// BuildQueue selects and orders the cards for one session. Due cards come
// first, oldest overdue leading; unseen-new cards follow in their original
// order, capped by NewCardsPerDay; the whole queue is truncated from the
// tail to DailyLimit, so new cards are dropped before due ones. An empty
// deckFilter means all decks. Deterministic for identical inputs and clock.
func BuildQueue(cards []domain.Card, progressByID map[string]domain.Progress, deckFilter string, settings Settings, now time.Time) []string {
	due, unseen := partition(cards, progressByID, deckFilter, now)

	sort.Slice(due, func(i, j int) bool {
		a, b := progressByID[due[i]], progressByID[due[j]]
		if a.Due.Equal(b.Due) {
			return due[i] < due[j]
		}
		return a.Due.Before(b.Due)
	})

	queue := due
	if settings.IncludeNewCards {
		take := settings.NewCardsPerDay
		if take > len(unseen) {
			take = len(unseen)
		}
		queue = append(queue, unseen[:take]...)
	}

	if settings.DailyLimit > 0 && len(queue) > settings.DailyLimit {
		queue = queue[:settings.DailyLimit]
	}

	return queue
}

// ReviewableCount returns the length of the queue BuildQueue would produce
// without materializing it.
func ReviewableCount(cards []domain.Card, progressByID map[string]domain.Progress, deckFilter string, settings Settings, now time.Time) int {
	due, unseen := partition(cards, progressByID, deckFilter, now)

	count := len(due)
	if settings.IncludeNewCards {
		take := settings.NewCardsPerDay
		if take > len(unseen) {
			take = len(unseen)
		}
		count += take
	}

	if settings.DailyLimit > 0 && count > settings.DailyLimit {
		count = settings.DailyLimit
	}

	return count
}

// partition splits the filtered cards into due identifiers and unseen-new
// identifiers. A card counts as unseen-new when it has no progress record or
// a zero repetition count; such cards never land in the due partition even
// though classification marks them due.
func partition(cards []domain.Card, progressByID map[string]domain.Progress, deckFilter string, now time.Time) (due, unseen []string) {
	for _, card := range cards {
		if deckFilter != "" && card.Deck != deckFilter {
			continue
		}

		p, ok := progressByID[card.ID]
		if !ok || p.Reps == 0 {
			unseen = append(unseen, card.ID)
			continue
		}
		if !p.Due.After(now) {
			due = append(due, card.ID)
		}
	}
	return due, unseen
}
