package services

import (
	"context"
	"log/slog"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// lifecycleService runs the campaign completion sweep. Both scans are
// conditional set-based updates, so the sweep needs no lock and overlapping
// runs (scheduled tick plus a manual trigger) are harmless: the second run
// finds nothing left to transition.
type lifecycleService struct {
	BaseService
	campaignRepo portsrepo.CampaignSweeper
	notifier     portssvc.Notifier
	clock        portssvc.Clock
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(campaignRepo portsrepo.CampaignSweeper, notifier portssvc.Notifier, clock portssvc.Clock) portssvc.LifecycleSvcFacade {
	return &lifecycleService{campaignRepo: campaignRepo, notifier: notifier, clock: clock}
}

var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// RunLifecycleSweep completes every ACTIVE campaign whose goal is met or whose
// deadline has passed. The goal scan runs first so a campaign that qualifies
// both ways is reported under goal_reached. A partial failure leaves the
// remaining campaigns ACTIVE for the next tick; no in-progress marker is
// needed because the operation is naturally retriable.
func (s *lifecycleService) RunLifecycleSweep(ctx context.Context) (*domain.SweepResult, error) {
	now := s.clock.Now()

	goalReached, err := s.campaignRepo.CompleteWhereGoalReached(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Lifecycle sweep: goal-reached scan failed")
		return nil, err
	}
	for _, id := range goalReached {
		s.notifier.CampaignCompleted(ctx, id, domain.ReasonGoalReached)
	}

	expired, err := s.campaignRepo.CompleteWhereExpired(ctx, now)
	if err != nil {
		// Goal-reached transitions already landed; report the partial result
		// alongside the error so callers can see what happened.
		s.LogError(ctx, err, "Lifecycle sweep: expiry scan failed",
			slog.Int("goal_reached", len(goalReached)),
		)
		return nil, err
	}
	for _, id := range expired {
		s.notifier.CampaignCompleted(ctx, id, domain.ReasonDeadlinePassed)
	}

	result := &domain.SweepResult{GoalReached: goalReached, Expired: expired}
	if result.Transitioned() > 0 {
		s.LogInfo(ctx, "Lifecycle sweep transitioned campaigns",
			slog.Int("goal_reached", len(goalReached)),
			slog.Int("expired", len(expired)),
		)
	} else {
		s.LogDebug(ctx, "Lifecycle sweep found nothing to transition")
	}
	return result, nil
}
