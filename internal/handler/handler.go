package handler

import (
	"strings"
	"sync"
	"unicode"

	"recall/internal/service"
	"recall/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	deckService     *service.DeckService
	reviewService   *service.ReviewService
	transferService *service.TransferService
	keyboardHints   bool
	logger          *zap.Logger

	// One review session per chat (in-memory)
	sessions   map[int64]*session.Session
	sessionMux sync.Mutex

	// Add-card conversation states
	states   map[int64]*addState
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	deckService *service.DeckService,
	reviewService *service.ReviewService,
	transferService *service.TransferService,
	keyboardHints bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		deckService:     deckService,
		reviewService:   reviewService,
		transferService: transferService,
		keyboardHints:   keyboardHints,
		logger:          logger,
		sessions:        make(map[int64]*session.Session),
		states:          make(map[int64]*addState),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/decks", h.handleDecks)
	h.bot.Handle("/review", h.handleReviewCommand)
	h.bot.Handle("/add", h.handleAddCommand)
	h.bot.Handle("/export", h.handleExport)
	h.bot.Handle("/cancel", h.handleCancel)

	// Add-card conversation + import document
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleImportDocument)

	// Static inline buttons
	h.bot.Handle(&btnDecks, h.handleDecks)
	h.bot.Handle(&btnReviewAll, h.handleReviewAll)
	h.bot.Handle(&btnFlip, h.handleFlip)
	h.bot.Handle(&btnHint, h.handleHint)
	h.bot.Handle(&btnEndReview, h.handleEndReview)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// handleCallback routes dynamic callback data (deck and rating buttons)
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	data := cleanCallbackData(callback.Data)

	switch {
	case strings.HasPrefix(data, "deck_"):
		return h.handleDeckReview(c, strings.TrimPrefix(data, "deck_"))
	case strings.HasPrefix(data, "rate_"):
		return h.handleRate(c, strings.TrimPrefix(data, "rate_"))
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// currentSession returns the chat's active session, if any
func (h *Handler) currentSession(userID int64) *session.Session {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	sess, ok := h.sessions[userID]
	if !ok || !sess.Active() {
		return nil
	}
	return sess
}

func (h *Handler) setSession(userID int64, sess *session.Session) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.sessions[userID] = sess
}

func (h *Handler) dropSession(userID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	if sess, ok := h.sessions[userID]; ok {
		sess.End()
		delete(h.sessions, userID)
	}
}

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError deals with c.Edit() failures: an unmodified message only
// needs the callback acknowledged, anything else falls back to Send.
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "message is not modified") {
		c.Respond()
		return nil
	}
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// edit edits the callback's message when possible, otherwise sends a new one
func (h *Handler) edit(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handled := h.handleEditError(err, c); handled == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// Inline keyboard buttons
var (
	btnDecks = tele.Btn{
		Unique: "decks",
		Text:   "📊 Decks",
	}
	btnReviewAll = tele.Btn{
		Unique: "review_all",
		Text:   "🎓 Review everything",
	}
	btnFlip = tele.Btn{
		Unique: "flip",
		Text:   "🔄 Show answer",
	}
	btnHint = tele.Btn{
		Unique: "hint",
		Text:   "💡 Hint",
	}
	btnEndReview = tele.Btn{
		Unique: "end_review",
		Text:   "🏁 End session",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDecks),
		menu.Row(btnReviewAll),
	)
	return menu
}
