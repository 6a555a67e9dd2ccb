package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start and the main-menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User opened main menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.resetAddState(userID)

	count, err := h.reviewService.ReviewableCount("")
	if err != nil {
		h.logger.Error("Failed to count reviewable cards", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	text := fmt.Sprintf(
		"🏠 Main menu\n\nCards waiting for review: %d\n\n"+
			"/review — start a session\n"+
			"/decks — deck overview\n"+
			"/add — add a card\n"+
			"/export — back up your collection",
		count,
	)

	return h.edit(c, text, mainMenuMarkup())
}

// handleCancel aborts the add-card conversation and any active session
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.resetAddState(userID)
	h.dropSession(userID)

	return c.Send("Cancelled.", mainMenuMarkup())
}
