package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/database"
	"github.com/vladimiradmaev/cgm-simulator/internal/services"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
}

// GlucoseServiceInterface defines the contract for stored reading queries
type GlucoseServiceInterface interface {
	ListReadings(ctx context.Context, userID uint, start, end time.Time) ([]*simulation.Reading, error)
	Summary(ctx context.Context, userID uint, start, end time.Time) (*services.GlucoseSummary, error)
	ClearReadings(ctx context.Context, userID uint) (int64, error)
}

// SimulationServiceInterface defines the contract for synthetic CGM runs
type SimulationServiceInterface interface {
	SimulateHours(ctx context.Context, userID uint, hours int, end time.Time, toggles simulation.Toggles) (*services.RunReport, error)
	Demo(ctx context.Context, userID uint, now time.Time) (*services.RunReport, error)
	MaxHours() int
}

var (
	_ UserServiceInterface       = (*services.UserService)(nil)
	_ GlucoseServiceInterface    = (*services.GlucoseService)(nil)
	_ SimulationServiceInterface = (*services.SimulationService)(nil)
)
