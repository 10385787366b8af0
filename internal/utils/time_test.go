package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeToMinutes("00:00"))
	assert.Equal(t, 7*60, TimeToMinutes("07:00"))
	assert.Equal(t, 17*60+45, TimeToMinutes("17:45"))
}

func TestDayHelpers(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 10, 13, 25, 42, 0, loc)

	assert.Equal(t, 13*60+25, MinuteOfDay(ts))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), StartOfDay(ts))
	assert.Equal(t, time.Date(2024, 3, 10, 18, 30, 0, 0, loc), AtMinute(ts, 18*60+30))
}
