package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/menus"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	"github.com/vladimiradmaev/cgm-simulator/internal/database"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	*simulator
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		simulator: &simulator{api: api, deps: deps, stateManager: stateManager},
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.ID)
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.send(chatID, menus.HelpText(h.deps.SimulationSvc.MaxHours()))
	case "simulate":
		return h.handleSimulate(ctx, message, user)
	case "demo":
		return h.demo(ctx, chatID, user)
	case "readings":
		return h.sendSummary(ctx, chatID, user)
	case "clear":
		return h.clear(ctx, chatID, user)
	default:
		return h.send(chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
	}
}

// handleSimulate runs /simulate <hours>, or asks for hours when none given
func (h *CommandHandler) handleSimulate(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	args := message.CommandArguments()
	if args == "" {
		h.stateManager.SetUserState(user.TelegramID, state.WaitingForSimulationHours)
		return menus.SendHoursMenu(h.api, message.Chat.ID, h.deps.SimulationSvc.MaxHours())
	}

	hours, err := ParseHours(args)
	if err != nil {
		return h.send(message.Chat.ID, "Пожалуйста, укажите целое число часов, например: /simulate 24")
	}
	return h.simulate(ctx, message.Chat.ID, user, hours)
}
