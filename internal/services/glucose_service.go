package services

import (
	"context"
	"time"

	apperrors "github.com/vladimiradmaev/cgm-simulator/internal/errors"
	"github.com/vladimiradmaev/cgm-simulator/internal/repository"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

// Target range used for time-in-range, mg/dL
const (
	targetRangeLow  = simulation.LowThreshold
	targetRangeHigh = simulation.HighThreshold
)

// GlucoseSummary aggregates readings over a window
type GlucoseSummary struct {
	Count       int
	Mean        float64
	Min         float64
	Max         float64
	TimeInRange float64 // percent of readings within [70, 180]
	Alerts      map[simulation.Alert]int
	Latest      *simulation.Reading
}

type GlucoseService struct {
	store repository.GlucoseStore
}

func NewGlucoseService(store repository.GlucoseStore) *GlucoseService {
	return &GlucoseService{store: store}
}

func (s *GlucoseService) ListReadings(ctx context.Context, userID uint, start, end time.Time) ([]*simulation.Reading, error) {
	readings, err := s.store.ListByUser(ctx, userID, start, end)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return readings, nil
}

// Summary returns aggregate statistics for the readings in [start, end]
func (s *GlucoseService) Summary(ctx context.Context, userID uint, start, end time.Time) (*GlucoseSummary, error) {
	readings, err := s.ListReadings(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return Summarize(readings), nil
}

func (s *GlucoseService) ClearReadings(ctx context.Context, userID uint) (int64, error) {
	n, err := s.store.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return n, nil
}

// Summarize computes statistics over readings ordered oldest first
func Summarize(readings []*simulation.Reading) *GlucoseSummary {
	summary := &GlucoseSummary{Alerts: make(map[simulation.Alert]int)}
	if len(readings) == 0 {
		return summary
	}

	var sum float64
	var inRange int
	summary.Min, summary.Max = readings[0].Value, readings[0].Value
	for _, r := range readings {
		sum += r.Value
		summary.Min = min(summary.Min, r.Value)
		summary.Max = max(summary.Max, r.Value)
		if r.Value >= targetRangeLow && r.Value <= targetRangeHigh {
			inRange++
		}
		summary.Alerts[r.AlertType]++
	}

	summary.Count = len(readings)
	summary.Mean = sum / float64(len(readings))
	summary.TimeInRange = float64(inRange) / float64(len(readings)) * 100
	summary.Latest = readings[len(readings)-1]
	return summary
}
