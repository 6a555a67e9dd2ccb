package scheduler

import (
	"fmt"
	"testing"
	"time"

	"recall/internal/domain"

	"github.com/stretchr/testify/assert"
)

var queueAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func defaultSettings() Settings {
	return Settings{DailyLimit: 20, NewCardsPerDay: 5, IncludeNewCards: true}
}

func seenProgress(cardID string, dueOffsetDays int) domain.Progress {
	return domain.Progress{
		CardID:   cardID,
		Ease:     2.5,
		Interval: 6,
		Reps:     2,
		Due:      queueAt.AddDate(0, 0, dueOffsetDays),
	}
}

func TestBuildQueueOrdersDueBeforeNew(t *testing.T) {
	cards := []domain.Card{
		{ID: "a", Deck: "spanish"},
		{ID: "b", Deck: "spanish"},
		{ID: "c", Deck: "spanish"},
		{ID: "d", Deck: "spanish"},
	}
	progress := map[string]domain.Progress{
		"a": seenProgress("a", -1),
		"b": seenProgress("b", -7),
		"c": seenProgress("c", 2), // not due
	}

	queue := BuildQueue(cards, progress, "", defaultSettings(), queueAt)

	// Oldest overdue first, unseen card last.
	assert.Equal(t, []string{"b", "a", "d"}, queue)
}

func TestBuildQueueDueTieBrokenByID(t *testing.T) {
	cards := []domain.Card{
		{ID: "z", Deck: "spanish"},
		{ID: "a", Deck: "spanish"},
		{ID: "m", Deck: "spanish"},
	}
	progress := map[string]domain.Progress{
		"z": seenProgress("z", -2),
		"a": seenProgress("a", -2),
		"m": seenProgress("m", -2),
	}

	queue := BuildQueue(cards, progress, "", defaultSettings(), queueAt)

	assert.Equal(t, []string{"a", "m", "z"}, queue)
}

func TestBuildQueueDeckFilter(t *testing.T) {
	cards := []domain.Card{
		{ID: "sp-1", Deck: "spanish"},
		{ID: "ge-1", Deck: "geography"},
		{ID: "sp-2", Deck: "spanish"},
	}
	progress := map[string]domain.Progress{
		"sp-1": seenProgress("sp-1", -1),
		"ge-1": seenProgress("ge-1", -1),
	}

	queue := BuildQueue(cards, progress, "spanish", defaultSettings(), queueAt)

	assert.Equal(t, []string{"sp-1", "sp-2"}, queue)
}

func TestBuildQueueNewCardCap(t *testing.T) {
	// Five due cards plus eight unseen, three new per day allowed:
	// the queue is exactly the five due cards followed by the first
	// three unseen cards in original order.
	var cards []domain.Card
	progress := make(map[string]domain.Progress)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("due-%d", i)
		cards = append(cards, domain.Card{ID: id, Deck: "spanish"})
		progress[id] = seenProgress(id, -i-1)
	}
	for i := 0; i < 8; i++ {
		cards = append(cards, domain.Card{ID: fmt.Sprintf("new-%d", i), Deck: "spanish"})
	}

	settings := Settings{DailyLimit: 10, NewCardsPerDay: 3, IncludeNewCards: true}
	queue := BuildQueue(cards, progress, "", settings, queueAt)

	assert.Len(t, queue, 8)
	assert.Equal(t, []string{"due-4", "due-3", "due-2", "due-1", "due-0"}, queue[:5])
	assert.Equal(t, []string{"new-0", "new-1", "new-2"}, queue[5:])
}

func TestBuildQueueExcludesNewWhenDisabled(t *testing.T) {
	cards := []domain.Card{
		{ID: "seen", Deck: "spanish"},
		{ID: "unseen", Deck: "spanish"},
	}
	progress := map[string]domain.Progress{
		"seen": seenProgress("seen", -1),
	}

	settings := Settings{DailyLimit: 10, NewCardsPerDay: 5, IncludeNewCards: false}
	queue := BuildQueue(cards, progress, "", settings, queueAt)

	assert.Equal(t, []string{"seen"}, queue)
}

func TestBuildQueueTruncatesNewCardsFirst(t *testing.T) {
	cards := []domain.Card{
		{ID: "due-1", Deck: "spanish"},
		{ID: "due-2", Deck: "spanish"},
		{ID: "new-1", Deck: "spanish"},
		{ID: "new-2", Deck: "spanish"},
	}
	progress := map[string]domain.Progress{
		"due-1": seenProgress("due-1", -2),
		"due-2": seenProgress("due-2", -1),
	}

	settings := Settings{DailyLimit: 3, NewCardsPerDay: 5, IncludeNewCards: true}
	queue := BuildQueue(cards, progress, "", settings, queueAt)

	// Both due cards survive, only one new card fits.
	assert.Equal(t, []string{"due-1", "due-2", "new-1"}, queue)
}

func TestBuildQueueTruncatesLeastOverdueDue(t *testing.T) {
	var cards []domain.Card
	progress := make(map[string]domain.Progress)
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("due-%d", i)
		cards = append(cards, domain.Card{ID: id, Deck: "spanish"})
		progress[id] = seenProgress(id, -i-1)
	}

	settings := Settings{DailyLimit: 4, NewCardsPerDay: 0, IncludeNewCards: true}
	queue := BuildQueue(cards, progress, "", settings, queueAt)

	// The four most overdue remain; the least overdue fall off the tail.
	assert.Equal(t, []string{"due-5", "due-4", "due-3", "due-2"}, queue)
}

func TestBuildQueueDeterministic(t *testing.T) {
	cards := []domain.Card{
		{ID: "a", Deck: "spanish"},
		{ID: "b", Deck: "spanish"},
		{ID: "c", Deck: "geography"},
		{ID: "d", Deck: "geography"},
	}
	progress := map[string]domain.Progress{
		"a": seenProgress("a", -3),
		"c": seenProgress("c", -3),
	}

	first := BuildQueue(cards, progress, "", defaultSettings(), queueAt)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, BuildQueue(cards, progress, "", defaultSettings(), queueAt))
	}
}

func TestReviewableCountMatchesBuildQueue(t *testing.T) {
	var cards []domain.Card
	progress := make(map[string]domain.Progress)
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("due-%d", i)
		cards = append(cards, domain.Card{ID: id, Deck: "spanish"})
		progress[id] = seenProgress(id, -i)
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, domain.Card{ID: fmt.Sprintf("new-%d", i), Deck: "geography"})
	}

	settingsVariants := []Settings{
		{DailyLimit: 5, NewCardsPerDay: 2, IncludeNewCards: true},
		{DailyLimit: 50, NewCardsPerDay: 2, IncludeNewCards: true},
		{DailyLimit: 50, NewCardsPerDay: 0, IncludeNewCards: true},
		{DailyLimit: 50, NewCardsPerDay: 10, IncludeNewCards: false},
		{DailyLimit: 1, NewCardsPerDay: 10, IncludeNewCards: true},
	}

	for _, settings := range settingsVariants {
		for _, filter := range []string{"", "spanish", "geography"} {
			queue := BuildQueue(cards, progress, filter, settings, queueAt)
			count := ReviewableCount(cards, progress, filter, settings, queueAt)
			assert.Equal(t, len(queue), count,
				"settings %+v filter %q", settings, filter)
		}
	}
}

func TestBuildQueueRespectsDailyLimit(t *testing.T) {
	var cards []domain.Card
	progress := make(map[string]domain.Progress)
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("c-%d", i)
		cards = append(cards, domain.Card{ID: id, Deck: "spanish"})
		if i%2 == 0 {
			progress[id] = seenProgress(id, -1)
		}
	}

	settings := Settings{DailyLimit: 10, NewCardsPerDay: 30, IncludeNewCards: true}
	queue := BuildQueue(cards, progress, "", settings, queueAt)

	assert.Len(t, queue, 10)
}
