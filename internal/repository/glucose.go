package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/database"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
	"gorm.io/gorm"
)

// GlucoseStore persists CGM readings. Every implementation is a valid sink
// for a simulation run.
type GlucoseStore interface {
	simulation.Sink

	// SaveBatch stores readings atomically; one bad reading fails the batch.
	SaveBatch(ctx context.Context, readings []*simulation.Reading) error

	// ListByUser returns readings taken within [start, end], oldest first.
	ListByUser(ctx context.Context, userID uint, start, end time.Time) ([]*simulation.Reading, error)

	// DeleteByUser removes every reading of a user and returns the count.
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

const batchSize = 100

// GlucoseRepository is the PostgreSQL implementation of GlucoseStore
type GlucoseRepository struct {
	db *gorm.DB
}

// NewGlucoseRepository creates a new glucose repository
func NewGlucoseRepository(db *gorm.DB) *GlucoseRepository {
	return &GlucoseRepository{db: db}
}

var _ GlucoseStore = (*GlucoseRepository)(nil)

// SaveReading inserts a single reading and returns it with its assigned ID
func (r *GlucoseRepository) SaveReading(ctx context.Context, reading *simulation.Reading) (*simulation.Reading, error) {
	if err := validateReading(reading); err != nil {
		return nil, err
	}

	record := toRecord(reading)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: user %d at %s", ErrDuplicateReading, reading.UserID, reading.TakenAt)
		}
		return nil, fmt.Errorf("failed to create glucose reading: %w", err)
	}

	return fromRecord(record), nil
}

// SaveBatch inserts readings in chunks inside one transaction
func (r *GlucoseRepository) SaveBatch(ctx context.Context, readings []*simulation.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	records := make([]*database.GlucoseReading, 0, len(readings))
	for _, reading := range readings {
		if err := validateReading(reading); err != nil {
			return err
		}
		records = append(records, toRecord(reading))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(records, batchSize).Error
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateReading
		}
		return fmt.Errorf("failed to create glucose readings: %w", err)
	}

	for i, record := range records {
		readings[i].ID = record.ID
	}
	return nil
}

// ListByUser returns a user's readings within [start, end] ordered by time
func (r *GlucoseRepository) ListByUser(ctx context.Context, userID uint, start, end time.Time) ([]*simulation.Reading, error) {
	var records []database.GlucoseReading
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND taken_at BETWEEN ? AND ?", userID, start, end).
		Order("taken_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get user glucose readings: %w", err)
	}

	readings := make([]*simulation.Reading, 0, len(records))
	for i := range records {
		readings = append(readings, fromRecord(&records[i]))
	}
	return readings, nil
}

// DeleteByUser hard-deletes all readings of a user
func (r *GlucoseRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&database.GlucoseReading{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete glucose readings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func validateReading(reading *simulation.Reading) error {
	if reading == nil || reading.UserID == 0 || reading.TakenAt.IsZero() {
		return ErrInvalidReading
	}
	return nil
}

func toRecord(r *simulation.Reading) *database.GlucoseReading {
	return &database.GlucoseReading{
		UserID:      r.UserID,
		Value:       r.Value,
		Unit:        r.Unit,
		ReadingType: r.ReadingType,
		Source:      r.Source,
		DeviceID:    r.DeviceID,
		Trend:       string(r.Trend),
		AlertType:   string(r.AlertType),
		IsLive:      r.IsLive,
		Notes:       r.Notes,
		TakenAt:     r.TakenAt,
	}
}

func fromRecord(rec *database.GlucoseReading) *simulation.Reading {
	return &simulation.Reading{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Value:       rec.Value,
		Unit:        rec.Unit,
		ReadingType: rec.ReadingType,
		Source:      rec.Source,
		DeviceID:    rec.DeviceID,
		Trend:       simulation.Trend(rec.Trend),
		AlertType:   simulation.Alert(rec.AlertType),
		IsLive:      rec.IsLive,
		Notes:       rec.Notes,
		TakenAt:     rec.TakenAt,
	}
}
