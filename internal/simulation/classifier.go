package simulation

import (
	"math"
	"time"
)

// Rate thresholds in mg/dL per minute.
const (
	stableRate = 0.5
	steadyRate = 1.0
	rapidRate  = 2.0
)

// ClassifyTrend labels the change from the most recent of the prior values to
// value. With fewer than two prior values the trend is always stable.
func ClassifyTrend(prior []float64, value float64, interval time.Duration) Trend {
	if len(prior) < 2 || interval <= 0 {
		return TrendStable
	}

	rate := (value - prior[len(prior)-1]) / interval.Minutes()

	switch {
	case math.Abs(rate) < stableRate:
		return TrendStable
	case rate >= rapidRate:
		return TrendRisingRapidly
	case rate >= steadyRate:
		return TrendRising
	case rate > 0:
		return TrendRisingSlowly
	case rate <= -rapidRate:
		return TrendFallingRapidly
	case rate <= -steadyRate:
		return TrendFalling
	default:
		return TrendFallingSlowly
	}
}

// ClassifyAlert buckets an absolute value in mg/dL.
func ClassifyAlert(value float64) Alert {
	switch {
	case value < UrgentLowThreshold:
		return AlertUrgentLow
	case value < LowThreshold:
		return AlertLow
	case value > UrgentHighThreshold:
		return AlertUrgentHigh
	case value > HighThreshold:
		return AlertHigh
	default:
		return AlertNone
	}
}

// history keeps the last few synthesized values of one run.
type history struct {
	values []float64
}

func newHistory() *history {
	return &history{values: make([]float64, 0, trendHistoryLength)}
}

func (h *history) push(v float64) {
	if len(h.values) == trendHistoryLength {
		copy(h.values, h.values[1:])
		h.values = h.values[:trendHistoryLength-1]
	}
	h.values = append(h.values, v)
}

func (h *history) recent() []float64 {
	return h.values
}
