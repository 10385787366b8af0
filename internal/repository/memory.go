package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

type readingKey struct {
	userID  uint
	source  string
	takenAt int64
}

// MemoryGlucoseStore is an in-memory GlucoseStore for dry runs and tests
type MemoryGlucoseStore struct {
	mu     sync.RWMutex
	nextID uint
	data   map[readingKey]*simulation.Reading
}

// NewMemoryGlucoseStore creates an empty in-memory store
func NewMemoryGlucoseStore() *MemoryGlucoseStore {
	return &MemoryGlucoseStore{
		data: make(map[readingKey]*simulation.Reading),
	}
}

var _ GlucoseStore = (*MemoryGlucoseStore)(nil)

func keyOf(r *simulation.Reading) readingKey {
	return readingKey{userID: r.UserID, source: r.Source, takenAt: r.TakenAt.UnixNano()}
}

// SaveReading stores a copy of reading
func (s *MemoryGlucoseStore) SaveReading(_ context.Context, reading *simulation.Reading) (*simulation.Reading, error) {
	if err := validateReading(reading); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(reading)
	if _, exists := s.data[key]; exists {
		return nil, ErrDuplicateReading
	}

	s.nextID++
	stored := *reading
	stored.ID = s.nextID
	s.data[key] = &stored

	out := stored
	return &out, nil
}

// SaveBatch stores all readings or none of them
func (s *MemoryGlucoseStore) SaveBatch(_ context.Context, readings []*simulation.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[readingKey]struct{}, len(readings))
	for _, r := range readings {
		if err := validateReading(r); err != nil {
			return err
		}
		key := keyOf(r)
		if _, exists := s.data[key]; exists {
			return ErrDuplicateReading
		}
		if _, exists := batchKeys[key]; exists {
			return ErrDuplicateReading
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range readings {
		s.nextID++
		r.ID = s.nextID
		stored := *r
		s.data[keyOf(r)] = &stored
	}
	return nil
}

// ListByUser returns copies of a user's readings within [start, end]
func (s *MemoryGlucoseStore) ListByUser(_ context.Context, userID uint, start, end time.Time) ([]*simulation.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*simulation.Reading
	for _, r := range s.data {
		if r.UserID != userID || r.TakenAt.Before(start) || r.TakenAt.After(end) {
			continue
		}
		out := *r
		result = append(result, &out)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TakenAt.Before(result[j].TakenAt)
	})
	return result, nil
}

// DeleteByUser removes all readings of a user
func (s *MemoryGlucoseStore) DeleteByUser(_ context.Context, userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key := range s.data {
		if key.userID == userID {
			delete(s.data, key)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored readings
func (s *MemoryGlucoseStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
