package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	"github.com/vladimiradmaev/cgm-simulator/internal/database"
)

// TextHandler handles text messages
type TextHandler struct {
	*simulator
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		simulator: &simulator{api: api, deps: deps, stateManager: stateManager},
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForSimulationHours:
		return h.handleSimulationHours(ctx, message, user)
	default:
		return h.send(message.Chat.ID, "Используйте меню или /help, чтобы запустить симуляцию.")
	}
}

// handleSimulationHours handles the hours answer after the hours prompt
func (h *TextHandler) handleSimulationHours(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	hours, err := ParseHours(message.Text)
	if err != nil {
		return h.send(message.Chat.ID, "Пожалуйста, введите целое число часов (например: 24)")
	}

	h.stateManager.SetUserState(user.TelegramID, state.None)
	return h.simulate(ctx, message.Chat.ID, user, hours)
}
