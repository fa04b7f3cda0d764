package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
)

// ReconciliationSvcFacade exposes the drift-repair operations. All of them
// recompute from source rows and overwrite; none trusts the stored aggregate.
// Running any of them twice with no intervening writes yields the same result.
type ReconciliationSvcFacade interface {
	// RecomputeCurrentAmount rebuilds current_amount for one campaign.
	RecomputeCurrentAmount(ctx context.Context, campaignID string) (*domain.RecomputeResult, error)

	// RecomputeTotalRaised rebuilds total_raised for one campaign.
	RecomputeTotalRaised(ctx context.Context, campaignID string) (*domain.RecomputeResult, error)

	// RecomputeAll applies both recomputations to every campaign. Safe to run
	// concurrently with live traffic; per-campaign failures are recorded in
	// the result rather than aborting the run.
	RecomputeAll(ctx context.Context) ([]domain.CampaignRecomputeResult, error)
}
