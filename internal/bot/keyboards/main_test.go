package keyboards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateHoursData_RoundTrip(t *testing.T) {
	hours, ok := ParseSimulateHours(SimulateHoursData(24))

	assert.True(t, ok)
	assert.Equal(t, 24, hours)
}

func TestParseSimulateHours_Rejects(t *testing.T) {
	for _, data := range []string{"demo", "simulate_hours:", "simulate_hours:abc", "simulate_hours:-3"} {
		_, ok := ParseSimulateHours(data)
		assert.False(t, ok, data)
	}
}

func TestHoursMenu_RespectsMax(t *testing.T) {
	menu := HoursMenu(24)

	assert.Len(t, menu.InlineKeyboard[0], 3)
	assert.Equal(t, "◀️ Главное меню", menu.InlineKeyboard[1][0].Text)
}
