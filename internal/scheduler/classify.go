package scheduler

import (
	"sort"
	"time"

	"recall/internal/domain"
)

// Mastery thresholds: a card this deep into the schedule is considered
// durably retained.
const (
	masteryReps     = 8
	masteryInterval = 21 // days
)

// Classification labels one card's scheduling status. New and due are not
// mutually exclusive: a never-reviewed card is both.
type Classification struct {
	New      bool
	Due      bool
	Mastered bool
}

// Classify derives the status of a card from its progress record.
// A nil progress means the card has never been reviewed.
func Classify(p *domain.Progress, now time.Time) Classification {
	if p == nil {
		return Classification{New: true, Due: true}
	}
	return Classification{
		New:      p.Reps == 0,
		Due:      !p.Due.After(now),
		Mastered: p.Reps >= masteryReps && p.Interval >= masteryInterval,
	}
}

// Aggregate groups cards by deck and counts total/due/new/mastered per
// group. Output is sorted by deck name so identical inputs always produce
// identical output.
func Aggregate(cards []domain.Card, progressByID map[string]domain.Progress, now time.Time) []domain.DeckStats {
	byDeck := make(map[string]*domain.DeckStats)

	for _, card := range cards {
		stats, ok := byDeck[card.Deck]
		if !ok {
			stats = &domain.DeckStats{Deck: card.Deck}
			byDeck[card.Deck] = stats
		}

		var progress *domain.Progress
		if p, ok := progressByID[card.ID]; ok {
			progress = &p
		}
		c := Classify(progress, now)

		stats.Total++
		if c.Due {
			stats.Due++
		}
		if c.New {
			stats.New++
		}
		if c.Mastered {
			stats.Mastered++
		}
	}

	out := make([]domain.DeckStats, 0, len(byDeck))
	for _, stats := range byDeck {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deck < out[j].Deck })

	return out
}

// Totals sums deck stats into one dashboard row.
func Totals(stats []domain.DeckStats) domain.DeckStats {
	total := domain.DeckStats{Deck: "all"}
	for _, s := range stats {
		total.Total += s.Total
		total.Due += s.Due
		total.New += s.New
		total.Mastered += s.Mastered
	}
	return total
}
