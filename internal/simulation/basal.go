package simulation

import (
	"math/rand"
	"time"
)

const (
	dawnOffset  = 15.0
	nightOffset = 5.0
)

// Basal returns the circadian baseline for t: a fixed dawn-phenomenon
// elevation between 04:00 and 08:59, a value drawn uniformly from the normal
// range during the day (09:00-18:59) and a low fixed offset otherwise.
func Basal(rng *rand.Rand, t time.Time) float64 {
	switch hour := t.Hour(); {
	case hour >= 4 && hour <= 8:
		return NormalRangeMin + dawnOffset
	case hour >= 9 && hour <= 18:
		return uniform(rng, NormalRangeMin, NormalRangeMax)
	default:
		return NormalRangeMin + nightOffset
	}
}

// flatBasal is used when the basal pattern is switched off.
func flatBasal() float64 {
	return (NormalRangeMin + NormalRangeMax) / 2
}
