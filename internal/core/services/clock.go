package services

import (
	"time"

	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// systemClock is the production Clock backed by time.Now.
type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
