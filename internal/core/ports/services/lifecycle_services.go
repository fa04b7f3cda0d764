package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
)

// LifecycleSvcFacade exposes the campaign completion sweep. The operation is
// idempotent and safe under overlapping invocations; a failed run is simply
// retried on the next tick.
type LifecycleSvcFacade interface {
	// RunLifecycleSweep completes every ACTIVE campaign whose goal is met or
	// whose deadline has passed.
	RunLifecycleSweep(ctx context.Context) (*domain.SweepResult, error)
}
