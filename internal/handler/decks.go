package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDecks shows per-deck statistics with a review button per deck
func (h *Handler) handleDecks(c tele.Context) error {
	stats, totals, err := h.deckService.Stats()
	if err != nil {
		h.logger.Error("Failed to load deck stats", zap.Error(err))
		return h.respondError(c, "Failed to load decks")
	}

	if len(stats) == 0 {
		return h.edit(c, "You have no cards yet. Use /add to create one.", mainMenuMarkup())
	}

	var b strings.Builder
	b.WriteString("📊 Your decks\n\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "• %s — %d cards, %d due, %d new, %d mastered\n",
			s.Deck, s.Total, s.Due, s.New, s.Mastered)
	}
	fmt.Fprintf(&b, "\nTotal: %d cards, %d due, %d new, %d mastered",
		totals.Total, totals.Due, totals.New, totals.Mastered)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, s := range stats {
		count, err := h.reviewService.ReviewableCount(s.Deck)
		if err != nil {
			h.logger.Error("Failed to count reviewable cards",
				zap.String("deck", s.Deck),
				zap.Error(err),
			)
			continue
		}
		if count == 0 {
			continue
		}
		btn := markup.Data(fmt.Sprintf("🎓 %s (%d)", s.Deck, count), "deck_"+s.Deck)
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnReviewAll), markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.edit(c, b.String(), markup)
}

// respondError answers a callback with an alert, or sends a plain message
func (h *Handler) respondError(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
