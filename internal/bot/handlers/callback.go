package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/keyboards"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/menus"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	"github.com/vladimiradmaev/cgm-simulator/internal/database"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*simulator
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		simulator: &simulator{api: api, deps: deps, stateManager: stateManager},
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}

	chatID := query.Message.Chat.ID
	if hours, ok := keyboards.ParseSimulateHours(query.Data); ok {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return h.simulate(ctx, chatID, user, hours)
	}

	switch query.Data {
	case keyboards.CallbackSimulate:
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForSimulationHours)
		return menus.SendHoursMenu(h.api, chatID, h.deps.SimulationSvc.MaxHours())
	case keyboards.CallbackDemo:
		return h.demo(ctx, chatID, user)
	case keyboards.CallbackReadings:
		return h.sendSummary(ctx, chatID, user)
	case keyboards.CallbackClear:
		msg := tgbotapi.NewMessage(chatID, "Удалить все сохранённые показания?")
		msg.ReplyMarkup = keyboards.ConfirmClearMenu()
		_, err := h.api.Send(msg)
		return err
	case keyboards.CallbackClearConfirm:
		return h.clear(ctx, chatID, user)
	case keyboards.CallbackHelp:
		return h.send(chatID, menus.HelpText(h.deps.SimulationSvc.MaxHours()))
	case keyboards.CallbackMainMenu:
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendMainMenu(h.api, chatID)
	default:
		return h.send(chatID, "Неизвестное действие. Используйте /start для возврата в меню.")
	}
}
