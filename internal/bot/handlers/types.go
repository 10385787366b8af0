package handlers

import (
	"time"

	"github.com/vladimiradmaev/cgm-simulator/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService   interfaces.UserServiceInterface
	GlucoseSvc    interfaces.GlucoseServiceInterface
	SimulationSvc interfaces.SimulationServiceInterface
	Now           func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
