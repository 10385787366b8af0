package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
)

// Update kinds
const (
	KindCallback = "callback"
	KindCommand  = "command"
	KindText     = "text"
	KindIgnored  = "ignored"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		deps:            deps,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Kind classifies an update for routing and metrics
func Kind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return KindCallback
	case update.Message == nil:
		return KindIgnored
	case update.Message.IsCommand():
		return KindCommand
	case update.Message.Text != "":
		return KindText
	default:
		return KindIgnored
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	kind := Kind(update)
	if kind == KindIgnored {
		return nil
	}

	from := update.SentFrom()
	if from == nil {
		return nil
	}

	user, err := h.deps.UserService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Error("Error getting/creating user", "telegram_id", from.ID, "error", err)
		return fmt.Errorf("failed to get/create user: %w", err)
	}

	switch kind {
	case KindCallback:
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	case KindCommand:
		return h.commandHandler.Handle(ctx, update.Message, user)
	default:
		return h.textHandler.Handle(ctx, update.Message, user)
	}
}
