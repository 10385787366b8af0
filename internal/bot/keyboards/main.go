package keyboards

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data
const (
	CallbackSimulate     = "simulate"
	CallbackDemo         = "demo"
	CallbackReadings     = "readings"
	CallbackClear        = "clear_readings"
	CallbackClearConfirm = "clear_readings_confirm"
	CallbackMainMenu     = "main_menu"
	CallbackHelp         = "help"

	simulateHoursPrefix = "simulate_hours:"
)

// PresetHours are offered as one-tap simulation windows
var PresetHours = []int{6, 12, 24, 72}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧪 Симуляция CGM", CallbackSimulate),
			tgbotapi.NewInlineKeyboardButtonData("⚡ Демо 24ч", CallbackDemo),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Мои показания", CallbackReadings),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Очистить данные", CallbackClear),
			tgbotapi.NewInlineKeyboardButtonData("❓ Помощь", CallbackHelp),
		),
	)
}

// HoursMenu offers preset windows, capped at maxHours
func HoursMenu(maxHours int) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, h := range PresetHours {
		if h > maxHours {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%dч", h), SimulateHoursData(h)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Главное меню", CallbackMainMenu),
		),
	)
}

// ConfirmClearMenu asks before deleting stored readings
func ConfirmClearMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", CallbackClearConfirm),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Отмена", CallbackMainMenu),
		),
	)
}

// SimulateHoursData encodes a preset window as callback data
func SimulateHoursData(hours int) string {
	return simulateHoursPrefix + strconv.Itoa(hours)
}

// ParseSimulateHours decodes callback data built by SimulateHoursData
func ParseSimulateHours(data string) (int, bool) {
	if !strings.HasPrefix(data, simulateHoursPrefix) {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimPrefix(data, simulateHoursPrefix))
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}
