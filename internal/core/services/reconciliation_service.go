package services

import (
	"context"
	"log/slog"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// reconciliationService rebuilds campaign aggregates from source rows. It
// never trusts the stored value; running it twice with no intervening writes
// yields the same result both times.
type reconciliationService struct {
	BaseService
	campaignRepo portsrepo.CampaignRepositoryFacade
	clock        portssvc.Clock
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(campaignRepo portsrepo.CampaignRepositoryFacade, clock portssvc.Clock) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{campaignRepo: campaignRepo, clock: clock}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// RecomputeCurrentAmount rebuilds current_amount for one campaign.
func (s *reconciliationService) RecomputeCurrentAmount(ctx context.Context, campaignID string) (*domain.RecomputeResult, error) {
	result, err := s.campaignRepo.RecomputeCurrentAmount(ctx, campaignID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.logResult(ctx, result)
	return result, nil
}

// RecomputeTotalRaised rebuilds total_raised for one campaign.
func (s *reconciliationService) RecomputeTotalRaised(ctx context.Context, campaignID string) (*domain.RecomputeResult, error) {
	result, err := s.campaignRepo.RecomputeTotalRaised(ctx, campaignID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.logResult(ctx, result)
	return result, nil
}

// RecomputeAll applies both recomputations to every campaign. A per-campaign
// failure is recorded in the result and the run continues; an incident repair
// should fix as much as it can in one pass.
func (s *reconciliationService) RecomputeAll(ctx context.Context) ([]domain.CampaignRecomputeResult, error) {
	ids, err := s.campaignRepo.ListCampaignIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.CampaignRecomputeResult, 0, len(ids))
	for _, id := range ids {
		entry := domain.CampaignRecomputeResult{CampaignID: id}

		current, err := s.RecomputeCurrentAmount(ctx, id)
		if err != nil {
			s.LogError(ctx, err, "Bulk recompute: current_amount failed", slog.String("campaign_id", id))
			entry.Err = err.Error()
			results = append(results, entry)
			continue
		}
		entry.CurrentAmount = current

		total, err := s.RecomputeTotalRaised(ctx, id)
		if err != nil {
			s.LogError(ctx, err, "Bulk recompute: total_raised failed", slog.String("campaign_id", id))
			entry.Err = err.Error()
			results = append(results, entry)
			continue
		}
		entry.TotalRaised = total

		results = append(results, entry)
	}

	s.LogInfo(ctx, "Bulk recompute finished", slog.Int("campaigns", len(results)))
	return results, nil
}

func (s *reconciliationService) logResult(ctx context.Context, result *domain.RecomputeResult) {
	if result.Delta.IsZero() {
		s.LogDebug(ctx, "Recompute found no drift",
			slog.String("campaign_id", result.CampaignID),
			slog.String("field", string(result.Field)),
		)
		return
	}
	// Non-zero delta means the aggregate had drifted from its source rows.
	s.LogWarn(ctx, "Recompute corrected drifted aggregate",
		slog.String("campaign_id", result.CampaignID),
		slog.String("field", string(result.Field)),
		slog.String("previous", result.Previous.String()),
		slog.String("new", result.New.String()),
		slog.String("delta", result.Delta.String()),
	)
}
