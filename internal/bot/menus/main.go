package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/keyboards"
	"github.com/vladimiradmaev/cgm-simulator/internal/services"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

var trendArrows = map[simulation.Trend]string{
	simulation.TrendRisingRapidly:  "⇈",
	simulation.TrendRising:         "↑",
	simulation.TrendRisingSlowly:   "↗",
	simulation.TrendStable:         "→",
	simulation.TrendFallingSlowly:  "↘",
	simulation.TrendFalling:        "↓",
	simulation.TrendFallingRapidly: "⇊",
}

var alertMarks = map[simulation.Alert]string{
	simulation.AlertUrgentLow:  "🔴",
	simulation.AlertLow:        "🟠",
	simulation.AlertHigh:       "🟡",
	simulation.AlertUrgentHigh: "🔴",
}

// TrendArrow returns the display arrow for a trend
func TrendArrow(t simulation.Trend) string {
	if arrow, ok := trendArrows[t]; ok {
		return arrow
	}
	return "-"
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🩸 *CGM симулятор* — синтетические данные непрерывного мониторинга глюкозы

Я сгенерирую правдоподобную ленту показаний:
• Подъёмы после еды
• Снижение после нагрузки
• Суточный базальный ритм
• Стрелки тренда и оповещения

⚠️ *Важно:* Данные синтетические и не являются медицинскими!

Выберите действие:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendHoursMenu asks for the simulation window
func SendHoursMenu(api *tgbotapi.BotAPI, chatID int64, maxHours int) error {
	text := fmt.Sprintf("За сколько часов сгенерировать данные?\nВыберите вариант или введите число от 1 до %d.", maxHours)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.HoursMenu(maxHours)
	_, err := api.Send(msg)
	return err
}

// HelpText lists the bot commands
func HelpText(maxHours int) string {
	return fmt.Sprintf(`Доступные команды:
/start - Показать главное меню
/simulate <часы> - Сгенерировать показания за последние N часов (максимум %d)
/demo - Демо: последние 24 часа со всеми эффектами
/readings - Сводка за последние 24 часа
/clear - Удалить все показания
/help - Показать это сообщение`, maxHours)
}

// FormatRunReport renders the outcome of a simulation run
func FormatRunReport(report *services.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ Сгенерировано показаний: %d из %d\n", report.TotalGenerated, report.Attempted)
	fmt.Fprintf(&b, "🕒 %s — %s\n", report.Start.Format("02.01 15:04"), report.End.Format("02.01 15:04"))
	if report.Degraded {
		fmt.Fprintf(&b, "⚠️ Не удалось сохранить: %d\n", report.Failed)
	}

	if len(report.Preview) > 0 {
		fmt.Fprintf(&b, "\nПервые %d:\n", len(report.Preview))
		for _, r := range report.Preview {
			b.WriteString(FormatReading(r))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatReading renders one reading on a single line
func FormatReading(r *simulation.Reading) string {
	line := fmt.Sprintf("%s  %.0f %s (%.1f ммоль/л) %s",
		r.TakenAt.Format("15:04"), r.Value, r.Unit, r.ValueMmolL(), TrendArrow(r.Trend))
	if mark, ok := alertMarks[r.AlertType]; ok {
		line += " " + mark
	}
	if r.Notes != "" {
		line += "  · " + r.Notes
	}
	return line
}

// FormatSummary renders aggregate statistics
func FormatSummary(s *services.GlucoseSummary) string {
	if s.Count == 0 {
		return "Показаний пока нет. Запустите симуляцию через меню или /demo."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 Показаний: %d\n", s.Count)
	fmt.Fprintf(&b, "Среднее: %.0f mg/dL\n", s.Mean)
	fmt.Fprintf(&b, "Мин/макс: %.0f / %.0f mg/dL\n", s.Min, s.Max)
	fmt.Fprintf(&b, "Время в диапазоне 70–180: %.0f%%\n", s.TimeInRange)
	if s.Latest != nil {
		fmt.Fprintf(&b, "\nПоследнее:\n%s", FormatReading(s.Latest))
	}
	return strings.TrimRight(b.String(), "\n")
}
