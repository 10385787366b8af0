package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/config"
	apperrors "github.com/vladimiradmaev/cgm-simulator/internal/errors"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
	"github.com/vladimiradmaev/cgm-simulator/internal/observability"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

// DemoHours is the window of the demo entry point
const DemoHours = 24

// RunReport is what callers of a simulation see
type RunReport struct {
	RunID          string
	Start          time.Time
	End            time.Time
	Attempted      int
	TotalGenerated int
	Failed         int
	Degraded       bool
	Readings       []*simulation.Reading
	Preview        []*simulation.Reading
}

type SimulationService struct {
	sink    simulation.Sink
	cfg     config.SimulationConfig
	metrics *observability.Metrics
}

func NewSimulationService(sink simulation.Sink, cfg config.SimulationConfig, metrics *observability.Metrics) *SimulationService {
	return &SimulationService{
		sink:    sink,
		cfg:     cfg,
		metrics: metrics,
	}
}

// MaxHours returns the largest window a single run may cover
func (s *SimulationService) MaxHours() int {
	return s.cfg.MaxHours
}

// SimulateHours runs a simulation over the hours ending at end. Requests
// above the configured maximum are capped to it.
func (s *SimulationService) SimulateHours(ctx context.Context, userID uint, hours int, end time.Time, toggles simulation.Toggles) (*RunReport, error) {
	if hours <= 0 {
		return nil, apperrors.NewValidationError("hours must be positive").WithContext("hours", hours)
	}
	if hours > s.cfg.MaxHours {
		logger.Info("Capping simulation window", "user_id", userID, "requested_hours", hours, "max_hours", s.cfg.MaxHours)
		hours = s.cfg.MaxHours
	}

	return s.Run(ctx, simulation.Request{
		UserID:  userID,
		Start:   end.Add(-time.Duration(hours) * time.Hour),
		End:     end,
		Toggles: toggles,
	})
}

// Demo simulates the last 24 hours before now with every component enabled
func (s *SimulationService) Demo(ctx context.Context, userID uint, now time.Time) (*RunReport, error) {
	return s.SimulateHours(ctx, userID, DemoHours, now, simulation.AllToggles())
}

// Run executes req as given. Windows longer than the configured maximum are
// rejected rather than capped.
func (s *SimulationService) Run(ctx context.Context, req simulation.Request) (*RunReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if maxWindow := time.Duration(s.cfg.MaxHours) * time.Hour; req.End.Sub(req.Start) > maxWindow {
		return nil, apperrors.New(apperrors.ErrorTypeValidation, apperrors.CodeWindowTooLarge,
			fmt.Sprintf("simulation window exceeds %d hours", s.cfg.MaxHours))
	}

	driver := simulation.NewDriver(s.sink, rand.New(rand.NewSource(s.seed())), simulation.Options{
		Interval: s.cfg.Interval,
		DeviceID: s.cfg.DeviceID,
		Strict:   s.cfg.Strict,
	})

	started := time.Now()
	result, err := driver.Run(ctx, req)
	s.observe(result, err, time.Since(started))
	if result == nil {
		return nil, err
	}

	return s.report(req, result), err
}

func (s *SimulationService) seed() int64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	return time.Now().UnixNano()
}

func (s *SimulationService) report(req simulation.Request, result *simulation.Result) *RunReport {
	preview := result.Readings
	if len(preview) > s.cfg.PreviewSize {
		preview = preview[:s.cfg.PreviewSize]
	}

	return &RunReport{
		RunID:          result.RunID,
		Start:          req.Start,
		End:            req.End,
		Attempted:      result.Attempted,
		TotalGenerated: result.Persisted(),
		Failed:         len(result.Failures),
		Degraded:       result.Degraded(),
		Readings:       result.Readings,
		Preview:        preview,
	}
}

func (s *SimulationService) observe(result *simulation.Result, err error, elapsed time.Duration) {
	if result == nil {
		return
	}

	status := observability.StatusCompleted
	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeCancelled):
		status = observability.StatusCancelled
	case err != nil:
		status = observability.StatusFailed
	case result.Degraded():
		status = observability.StatusDegraded
	}

	alerts := make(map[string]int)
	for _, r := range result.Readings {
		alerts[string(r.AlertType)]++
	}

	s.metrics.ObserveRun(observability.RunStats{
		Status:    status,
		Duration:  elapsed,
		Attempted: result.Attempted,
		Persisted: result.Persisted(),
		Failed:    len(result.Failures),
		Alerts:    alerts,
	})
}
