package handler

import (
	"errors"
	"fmt"
	"strings"

	"recall/internal/domain"
	"recall/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleReviewCommand starts a session from /review, optionally deck-scoped:
// "/review spanish" reviews one deck, bare "/review" reviews everything.
func (h *Handler) handleReviewCommand(c tele.Context) error {
	deck := strings.TrimSpace(c.Message().Payload)
	return h.startReview(c, deck)
}

// handleReviewAll starts an unscoped session from the menu button
func (h *Handler) handleReviewAll(c tele.Context) error {
	return h.startReview(c, "")
}

// handleDeckReview starts a deck-scoped session from a deck button
func (h *Handler) handleDeckReview(c tele.Context, deck string) error {
	return h.startReview(c, deck)
}

func (h *Handler) startReview(c tele.Context, deck string) error {
	userID := c.Sender().ID

	// A fresh start ends any leftover session for this chat.
	h.dropSession(userID)

	sess, err := h.reviewService.Start(deck)
	if err != nil {
		if errors.Is(err, session.ErrNoDueCards) {
			return h.respondError(c, "Nothing to review right now 🎉")
		}
		h.logger.Error("Failed to start review", zap.Error(err))
		return h.respondError(c, "Failed to start the session")
	}

	h.setSession(userID, sess)
	return h.sendCard(c, sess)
}

// handleFlip reveals the answer of the current card
func (h *Handler) handleFlip(c tele.Context) error {
	sess := h.currentSession(c.Sender().ID)
	if sess == nil {
		return h.respondError(c, "No active session. Use /review to start one.")
	}

	if err := sess.Flip(); err != nil {
		h.logger.Warn("Flip rejected", zap.Error(err))
		return c.Respond()
	}
	return h.sendCard(c, sess)
}

// handleHint toggles the hint of the current card
func (h *Handler) handleHint(c tele.Context) error {
	sess := h.currentSession(c.Sender().ID)
	if sess == nil {
		return h.respondError(c, "No active session. Use /review to start one.")
	}

	if err := sess.ToggleHint(); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "No hint for this card"})
	}
	return h.sendCard(c, sess)
}

// handleRate commits a rating for the flipped card and shows the next one
func (h *Handler) handleRate(c tele.Context, name string) error {
	userID := c.Sender().ID

	sess := h.currentSession(userID)
	if sess == nil {
		return h.respondError(c, "No active session. Use /review to start one.")
	}

	rating, err := domain.ParseRating(name)
	if err != nil {
		h.logger.Warn("Unknown rating in callback", zap.String("rating", name))
		return c.Respond()
	}

	if err := sess.SubmitReview(rating); err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			return c.Respond()
		}
		// Store failure: the review still advanced, tell the user and go on.
		h.logger.Error("Review saved locally but persistence failed", zap.Error(err))
		if respErr := c.Respond(&tele.CallbackResponse{Text: "⚠️ Saving failed, will need a re-sync"}); respErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(respErr))
		}
	}

	if !sess.Active() {
		h.dropSession(userID)
		return h.edit(c, "🏁 Session complete. Well done!", mainMenuMarkup())
	}
	return h.sendCard(c, sess)
}

// handleEndReview ends the session early, keeping committed reviews
func (h *Handler) handleEndReview(c tele.Context) error {
	h.dropSession(c.Sender().ID)
	return h.edit(c, "Session ended. Reviewed cards are saved.", mainMenuMarkup())
}

// sendCard renders the session's current card with the matching keyboard
func (h *Handler) sendCard(c tele.Context, sess *session.Session) error {
	snap := sess.Snapshot()
	card := snap.Card

	var b strings.Builder
	fmt.Fprintf(&b, "Card %d/%d", snap.Position+1, snap.QueueLength)
	if snap.DeckFilter == "" {
		fmt.Fprintf(&b, " — deck %s", card.Deck)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "❓ %s\n", card.Question)
	if snap.HintShown {
		fmt.Fprintf(&b, "💡 %s\n", card.Hint)
	}
	if snap.Flipped {
		fmt.Fprintf(&b, "\n✅ %s\n", card.Answer)
	}

	markup := &tele.ReplyMarkup{}
	if !snap.Flipped {
		row := tele.Row{markup.Data(btnFlip.Text, btnFlip.Unique)}
		if card.HasHint() {
			row = append(row, markup.Data(btnHint.Text, btnHint.Unique))
		}
		markup.Inline(
			row,
			markup.Row(markup.Data(btnEndReview.Text, btnEndReview.Unique)),
		)
		if h.keyboardHints {
			b.WriteString("\nTap 🔄 to reveal the answer.")
		}
	} else {
		preview, err := sess.Preview()
		if err != nil {
			h.logger.Error("Failed to preview intervals", zap.Error(err))
			return h.respondError(c, "Session state error")
		}
		markup.Inline(
			markup.Row(
				markup.Data(fmt.Sprintf("😓 Hard (%s)", formatDays(preview.Hard)), "rate_hard"),
				markup.Data(fmt.Sprintf("🙂 Good (%s)", formatDays(preview.Good)), "rate_good"),
				markup.Data(fmt.Sprintf("😎 Easy (%s)", formatDays(preview.Easy)), "rate_easy"),
			),
			markup.Row(markup.Data(btnEndReview.Text, btnEndReview.Unique)),
		)
		if h.keyboardHints {
			b.WriteString("\nHow well did you remember it?")
		}
	}

	return h.edit(c, b.String(), markup)
}

// formatDays renders an interval for a rating button
func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
