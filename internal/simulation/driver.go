package simulation

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vladimiradmaev/cgm-simulator/internal/errors"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
)

// Sink durably stores a single reading and returns the stored record.
type Sink interface {
	SaveReading(ctx context.Context, reading *Reading) (*Reading, error)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, reading *Reading) (*Reading, error)

// SaveReading calls f.
func (f SinkFunc) SaveReading(ctx context.Context, reading *Reading) (*Reading, error) {
	return f(ctx, reading)
}

// State is the lifecycle position of a Driver.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateEmitting   State = "emitting"
	StateDone       State = "done"
)

// Options configure a Driver.
type Options struct {
	// Interval between ticks. Zero means DefaultInterval.
	Interval time.Duration
	// DeviceID stamped on every reading. Empty means DefaultDeviceID.
	DeviceID string
	// Strict aborts the run on the first persistence failure instead of
	// recording it and moving on.
	Strict bool
	Logger *slog.Logger
}

// TickFailure records a reading that could not be persisted.
type TickFailure struct {
	Tick time.Time
	Err  error
}

// Result is the outcome of a run. Readings holds only what the sink accepted,
// so len(Readings) may be smaller than Attempted.
type Result struct {
	RunID     string
	Attempted int
	Readings  []*Reading
	Failures  []TickFailure
	Schedule  Schedule
}

// Persisted returns the number of stored readings.
func (r *Result) Persisted() int {
	return len(r.Readings)
}

// Degraded reports whether any tick failed to persist.
func (r *Result) Degraded() bool {
	return len(r.Failures) > 0
}

// Driver walks a simulation window tick by tick. A Driver owns its random
// source and is not safe for concurrent use; concurrent runs need separate
// drivers.
type Driver struct {
	sink  Sink
	rng   *rand.Rand
	opts  Options
	state State
}

// NewDriver creates a driver persisting into sink.
func NewDriver(sink Sink, rng *rand.Rand, opts Options) *Driver {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.DeviceID == "" {
		opts.DeviceID = DefaultDeviceID
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}
	return &Driver{sink: sink, rng: rng, opts: opts, state: StateIdle}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Validate rejects requests that cannot be simulated.
func (r Request) Validate() error {
	if r.UserID == 0 {
		return apperrors.New(apperrors.ErrorTypeValidation, apperrors.CodeInvalidUser, "user id is required")
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return apperrors.New(apperrors.ErrorTypeValidation, apperrors.CodeInvalidWindow, "simulation window is required")
	}
	if r.End.Before(r.Start) {
		return apperrors.NewInvalidWindowError(r.Start, r.End)
	}
	return nil
}

// TickCount returns the number of ticks a window of [start, end] produces.
func TickCount(start, end time.Time, interval time.Duration) int {
	if end.Before(start) || interval <= 0 {
		return 0
	}
	return int(end.Sub(start)/interval) + 1
}

// Run simulates req. Per-tick persistence failures are collected in the
// result; the run only stops early when ctx is cancelled or, in strict mode,
// on the first failure. In both cases the partial result is returned with
// the error.
func (d *Driver) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	log := d.opts.Logger.With(
		"run_id", result.RunID,
		"user_id", req.UserID,
		"start", req.Start,
		"end", req.End,
	)

	d.state = StateGenerating
	result.Schedule = GenerateSchedule(d.rng, req.Start, req.End)
	log.Debug("Generated event schedule",
		"meals", len(result.Schedule.Meals),
		"exercises", len(result.Schedule.Exercises))

	d.state = StateEmitting
	defer func() { d.state = StateDone }()

	synth := NewSynthesizer(d.rng, req.Toggles)
	recent := newHistory()

	for tick := req.Start; !tick.After(req.End); tick = tick.Add(d.opts.Interval) {
		if err := ctx.Err(); err != nil {
			log.Info("Simulation cancelled", "attempted", result.Attempted)
			return result, apperrors.NewCancelledError(err, "simulation")
		}

		sample := synth.Synthesize(tick, result.Schedule)
		reading := d.newReading(req.UserID, tick, sample, recent.recent())
		recent.push(sample.Value)
		result.Attempted++

		stored, err := d.sink.SaveReading(ctx, reading)
		if err != nil {
			log.Warn("Failed to persist reading", "tick", tick, "error", err)
			result.Failures = append(result.Failures, TickFailure{Tick: tick, Err: err})
			if d.opts.Strict {
				return result, apperrors.NewPersistError(err, tick)
			}
			continue
		}
		if stored == nil {
			stored = reading
		}
		result.Readings = append(result.Readings, stored)
	}

	log.Info("Simulation completed",
		"attempted", result.Attempted,
		"persisted", result.Persisted(),
		"failed", len(result.Failures))
	return result, nil
}

func (d *Driver) newReading(userID uint, tick time.Time, sample Sample, prior []float64) *Reading {
	return &Reading{
		UserID:      userID,
		Value:       sample.Value,
		Unit:        UnitMgDL,
		ReadingType: ReadingTypeCGM,
		Source:      SourceCGM,
		DeviceID:    d.opts.DeviceID,
		Trend:       ClassifyTrend(prior, sample.Value, d.opts.Interval),
		AlertType:   ClassifyAlert(sample.Value),
		IsLive:      true,
		Notes:       sample.Notes(),
		TakenAt:     tick,
	}
}
