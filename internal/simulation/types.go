// Package simulation generates synthetic continuous glucose monitor data.
//
// A run walks a time window at a fixed sampling interval. At every tick the
// synthesizer overlays the nearest meal and exercise effects on a circadian
// basal value, the classifier derives a trend arrow and an alert bucket, and
// the driver hands the finished reading to a storage sink.
package simulation

import (
	"time"
)

// Physiological bounds and alert thresholds in mg/dL. Synthesized values are
// clamped to [ClampMin, ClampMax] before classification, so AlertUrgentLow and
// AlertUrgentHigh only occur for readings that did not come from the
// synthesizer.
const (
	ClampMin = 60.0
	ClampMax = 300.0

	UrgentLowThreshold  = 55.0
	LowThreshold        = 70.0
	HighThreshold       = 180.0
	UrgentHighThreshold = ClampMax

	NormalRangeMin = 80.0
	NormalRangeMax = 120.0
)

// DefaultInterval is the CGM sampling interval.
const DefaultInterval = 5 * time.Minute

// Fixed reading attributes.
const (
	UnitMgDL           = "mg/dL"
	ReadingTypeCGM     = "cgm_continuous"
	SourceCGM          = "cgm"
	DefaultDeviceID    = "sim-cgm-001"
	mgdlPerMmol        = 18.0182
	trendHistoryLength = 3
)

// Trend is a qualitative rate-of-change label, the arrow on a CGM display.
type Trend string

const (
	TrendRisingRapidly  Trend = "rising_rapidly"
	TrendRising         Trend = "rising"
	TrendRisingSlowly   Trend = "rising_slowly"
	TrendStable         Trend = "stable"
	TrendFallingSlowly  Trend = "falling_slowly"
	TrendFalling        Trend = "falling"
	TrendFallingRapidly Trend = "falling_rapidly"
)

// Alert is a clinical severity bucket derived from an absolute value.
type Alert string

const (
	AlertUrgentLow  Alert = "urgent_low"
	AlertLow        Alert = "low"
	AlertNone       Alert = "none"
	AlertHigh       Alert = "high"
	AlertUrgentHigh Alert = "urgent_high"
)

// Toggles switch individual physiological components on or off.
type Toggles struct {
	BasalPattern   bool
	MealSpikes     bool
	ExerciseDrops  bool
	SleepInfluence bool
}

// AllToggles returns toggles with every component enabled.
func AllToggles() Toggles {
	return Toggles{
		BasalPattern:   true,
		MealSpikes:     true,
		ExerciseDrops:  true,
		SleepInfluence: true,
	}
}

// Request describes one simulation run.
type Request struct {
	UserID  uint
	Start   time.Time
	End     time.Time
	Toggles Toggles
}

// Reading is one synthesized CGM sample. It is built once per tick and never
// mutated after it has been persisted.
type Reading struct {
	ID          uint
	UserID      uint
	Value       float64
	Unit        string
	ReadingType string
	Source      string
	DeviceID    string
	Trend       Trend
	AlertType   Alert
	IsLive      bool
	Notes       string
	TakenAt     time.Time
}

// ValueMmolL returns the value converted to mmol/L.
func (r *Reading) ValueMmolL() float64 {
	return r.Value / mgdlPerMmol
}
