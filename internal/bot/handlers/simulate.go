package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/menus"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/state"
	"github.com/vladimiradmaev/cgm-simulator/internal/database"
	apperrors "github.com/vladimiradmaev/cgm-simulator/internal/errors"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
	"github.com/vladimiradmaev/cgm-simulator/internal/services"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

// runTimeout bounds a single simulation triggered from chat
const runTimeout = 2 * time.Minute

// summaryWindow is the look-back of the readings summary
const summaryWindow = 24 * time.Hour

// ParseHours parses a positive whole number of hours from user input
func ParseHours(text string) (int, error) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "ч"))
	hours, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if hours <= 0 {
		return 0, fmt.Errorf("hours must be positive: %d", hours)
	}
	return hours, nil
}

// simulator runs simulations on behalf of chat handlers
type simulator struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

func (s *simulator) simulate(ctx context.Context, chatID int64, user *database.User, hours int) error {
	return s.run(ctx, chatID, user, func(ctx context.Context) (*services.RunReport, error) {
		return s.deps.SimulationSvc.SimulateHours(ctx, user.ID, hours, s.deps.now(), simulation.AllToggles())
	})
}

func (s *simulator) demo(ctx context.Context, chatID int64, user *database.User) error {
	return s.run(ctx, chatID, user, func(ctx context.Context) (*services.RunReport, error) {
		return s.deps.SimulationSvc.Demo(ctx, user.ID, s.deps.now())
	})
}

func (s *simulator) run(ctx context.Context, chatID int64, user *database.User, fn func(context.Context) (*services.RunReport, error)) error {
	log := logger.WithFields("user_id", user.ID, "chat_id", chatID)
	if err := s.send(chatID, "⏳ Генерирую показания..."); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	report, err := fn(ctx)
	if err != nil && report == nil {
		log.Error("Simulation failed", "error", err)
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			return s.send(chatID, "Неверные параметры симуляции. Укажите число часов больше нуля.")
		}
		return s.send(chatID, "Произошла ошибка при генерации данных. Пожалуйста, попробуйте еще раз.")
	}

	s.stateManager.SetTempData(user.TelegramID, state.KeyLastRunID, report.RunID)

	text := menus.FormatRunReport(report)
	if err != nil {
		log.Warn("Simulation stopped early", "run_id", report.RunID, "error", err)
		text += "\n\n⚠️ Симуляция прервана досрочно."
	}
	if err := s.send(chatID, text); err != nil {
		return err
	}
	return menus.SendMainMenu(s.api, chatID)
}

func (s *simulator) sendSummary(ctx context.Context, chatID int64, user *database.User) error {
	end := s.deps.now()
	summary, err := s.deps.GlucoseSvc.Summary(ctx, user.ID, end.Add(-summaryWindow), end)
	if err != nil {
		logger.Error("Failed to build summary", "user_id", user.ID, "error", err)
		return s.send(chatID, "Не удалось загрузить показания. Пожалуйста, попробуйте позже.")
	}
	return s.send(chatID, menus.FormatSummary(summary))
}

func (s *simulator) clear(ctx context.Context, chatID int64, user *database.User) error {
	n, err := s.deps.GlucoseSvc.ClearReadings(ctx, user.ID)
	if err != nil {
		logger.Error("Failed to clear readings", "user_id", user.ID, "error", err)
		return s.send(chatID, "Не удалось удалить показания. Пожалуйста, попробуйте позже.")
	}
	s.stateManager.ClearTempData(user.TelegramID)
	return s.send(chatID, fmt.Sprintf("🗑️ Удалено показаний: %d", n))
}

func (s *simulator) send(chatID int64, text string) error {
	if _, err := s.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return apperrors.NewExternalAPIError(err, "telegram").WithContext("chat_id", chatID)
	}
	return nil
}
