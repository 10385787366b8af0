package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

var base = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func reading(userID uint, offset time.Duration, value float64) *simulation.Reading {
	return &simulation.Reading{
		UserID:      userID,
		Value:       value,
		Unit:        simulation.UnitMgDL,
		ReadingType: simulation.ReadingTypeCGM,
		Source:      simulation.SourceCGM,
		DeviceID:    simulation.DefaultDeviceID,
		Trend:       simulation.TrendStable,
		AlertType:   simulation.ClassifyAlert(value),
		IsLive:      true,
		TakenAt:     base.Add(offset),
	}
}

func TestMemoryGlucoseStore_SaveAndList(t *testing.T) {
	store := NewMemoryGlucoseStore()
	ctx := context.Background()

	for i, v := range []float64{110, 95, 130} {
		stored, err := store.SaveReading(ctx, reading(1, time.Duration(2-i)*5*time.Minute, v))
		require.NoError(t, err)
		assert.NotZero(t, stored.ID)
	}
	_, err := store.SaveReading(ctx, reading(2, 0, 100))
	require.NoError(t, err)

	got, err := store.ListByUser(ctx, 1, base, base.Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 130.0, got[0].Value)
	assert.Equal(t, 95.0, got[1].Value)
	assert.Equal(t, 110.0, got[2].Value)
}

func TestMemoryGlucoseStore_DuplicateReading(t *testing.T) {
	store := NewMemoryGlucoseStore()
	ctx := context.Background()

	_, err := store.SaveReading(ctx, reading(1, 0, 100))
	require.NoError(t, err)

	_, err = store.SaveReading(ctx, reading(1, 0, 120))

	assert.ErrorIs(t, err, ErrDuplicateReading)
}

func TestMemoryGlucoseStore_InvalidReading(t *testing.T) {
	store := NewMemoryGlucoseStore()

	_, err := store.SaveReading(context.Background(), reading(0, 0, 100))

	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestMemoryGlucoseStore_SaveBatchAtomic(t *testing.T) {
	store := NewMemoryGlucoseStore()
	ctx := context.Background()

	batch := []*simulation.Reading{
		reading(1, 0, 100),
		reading(1, 5*time.Minute, 105),
		reading(1, 0, 110),
	}

	err := store.SaveBatch(ctx, batch)

	assert.ErrorIs(t, err, ErrDuplicateReading)
	assert.Zero(t, store.Len())

	require.NoError(t, store.SaveBatch(ctx, batch[:2]))
	assert.Equal(t, 2, store.Len())
	assert.NotZero(t, batch[0].ID)
}

func TestMemoryGlucoseStore_DeleteByUser(t *testing.T) {
	store := NewMemoryGlucoseStore()
	ctx := context.Background()

	require.NoError(t, store.SaveBatch(ctx, []*simulation.Reading{
		reading(1, 0, 100),
		reading(1, 5*time.Minute, 100),
		reading(2, 0, 100),
	}))

	n, err := store.DeleteByUser(ctx, 1)

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryGlucoseStore_AsSimulationSink(t *testing.T) {
	store := NewMemoryGlucoseStore()
	driver := simulation.NewDriver(store, newRand(), simulation.Options{})

	result, err := driver.Run(context.Background(), simulation.Request{
		UserID:  3,
		Start:   base,
		End:     base.Add(time.Hour),
		Toggles: simulation.AllToggles(),
	})

	require.NoError(t, err)
	assert.Equal(t, 13, result.Persisted())
	assert.Equal(t, 13, store.Len())
}
