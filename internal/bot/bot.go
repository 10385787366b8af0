package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/handlers"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	apperrors "github.com/vladimiradmaev/cgm-simulator/internal/errors"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
	"github.com/vladimiradmaev/cgm-simulator/internal/observability"
)

type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
	errors        *apperrors.Handler
	metrics       *observability.Metrics
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager, metrics *observability.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps, stateManager),
		errors:        apperrors.NewHandler(logger.GetLogger()),
		metrics:       metrics,
	}, nil
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			kind := handlers.Kind(update)
			if update.Message != nil && update.Message.From != nil {
				logger.Debug("Received message", "telegram_id", update.Message.From.ID, "text", update.Message.Text)
			}

			err := b.updateHandler.Handle(ctx, update)
			b.metrics.ObserveUpdate(kind, err)
			b.errors.Handle(ctx, err)
		}
	}
}
