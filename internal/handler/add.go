package handler

import (
	"fmt"
	"strings"

	"recall/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// addStep tracks where the add-card conversation is
type addStep int

const (
	stepDeck addStep = iota + 1
	stepQuestion
	stepAnswer
	stepHint
)

// addState holds the partially entered card
type addState struct {
	step     addStep
	deck     string
	question string
	answer   string
}

func (h *Handler) getAddState(userID int64) *addState {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()
	return h.states[userID]
}

func (h *Handler) setAddState(userID int64, state *addState) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

func (h *Handler) resetAddState(userID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	delete(h.states, userID)
}

// handleAddCommand starts the add-card conversation
func (h *Handler) handleAddCommand(c tele.Context) error {
	userID := c.Sender().ID

	h.dropSession(userID)
	h.setAddState(userID, &addState{step: stepDeck})

	return c.Send("Which deck? (lowercase letters and digits, e.g. spanish)")
}

// handleText advances the add-card conversation
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID

	state := h.getAddState(userID)
	if state == nil {
		return c.Send("Use /review to study or /add to create a card.")
	}

	text := strings.TrimSpace(c.Text())
	if text == "" {
		return c.Send("Please send some text, or /cancel.")
	}

	switch state.step {
	case stepDeck:
		state.deck = strings.ToLower(text)
		state.step = stepQuestion
		h.setAddState(userID, state)
		return c.Send("Question?")

	case stepQuestion:
		state.question = text
		state.step = stepAnswer
		h.setAddState(userID, state)
		return c.Send("Answer?")

	case stepAnswer:
		state.answer = text
		state.step = stepHint
		h.setAddState(userID, state)
		return c.Send("Hint? (send - for none)")

	case stepHint:
		hint := text
		if hint == "-" {
			hint = ""
		}

		card, err := h.deckService.AddCard(state.deck, domain.KindBasic, state.question, state.answer, hint, "")
		h.resetAddState(userID)
		if err != nil {
			h.logger.Warn("Add card rejected", zap.Error(err))
			return c.Send(fmt.Sprintf("Couldn't add the card: %v\n\nTry /add again.", err))
		}

		return c.Send(
			fmt.Sprintf("✅ Added to %s. The card is due right away.", card.Deck),
			mainMenuMarkup(),
		)
	}

	h.resetAddState(userID)
	return c.Send("Something went wrong, state reset. Try /add again.")
}
