package menus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/cgm-simulator/internal/services"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

var takenAt = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func TestFormatReading(t *testing.T) {
	r := &simulation.Reading{
		Value:     185,
		Unit:      simulation.UnitMgDL,
		Trend:     simulation.TrendRising,
		AlertType: simulation.AlertHigh,
		Notes:     "breakfast +60m (40g carbs)",
		TakenAt:   takenAt,
	}

	line := FormatReading(r)

	assert.Equal(t, "08:30  185 mg/dL (10.3 ммоль/л) ↑ 🟡  · breakfast +60m (40g carbs)", line)
}

func TestTrendArrow_Unknown(t *testing.T) {
	assert.Equal(t, "-", TrendArrow("sideways"))
	assert.Equal(t, "→", TrendArrow(simulation.TrendStable))
}

func TestFormatRunReport(t *testing.T) {
	report := &services.RunReport{
		Start:          takenAt.Add(-time.Hour),
		End:            takenAt,
		Attempted:      13,
		TotalGenerated: 12,
		Failed:         1,
		Degraded:       true,
		Preview: []*simulation.Reading{
			{Value: 100, Unit: simulation.UnitMgDL, Trend: simulation.TrendStable, AlertType: simulation.AlertNone, TakenAt: takenAt},
		},
	}

	text := FormatRunReport(report)

	assert.Contains(t, text, "12 из 13")
	assert.Contains(t, text, "Не удалось сохранить: 1")
	assert.Contains(t, text, "Первые 1:")
	assert.Contains(t, text, "08:30  100 mg/dL")
}

func TestFormatSummary(t *testing.T) {
	assert.Contains(t, FormatSummary(&services.GlucoseSummary{}), "Показаний пока нет")

	text := FormatSummary(&services.GlucoseSummary{Count: 2, Mean: 110, Min: 100, Max: 120, TimeInRange: 100})
	assert.Contains(t, text, "Показаний: 2")
	assert.Contains(t, text, "Время в диапазоне 70–180: 100%")
}
