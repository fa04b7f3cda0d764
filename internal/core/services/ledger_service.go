package services

import (
	"context"
	"log/slog"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ledgerService is the aggregate mutator: the only write path to a campaign's
// current_amount and total_raised fields. It delegates to the repository's
// atomic in-place increment and carries no business knowledge of why a delta
// is applied.
type ledgerService struct {
	BaseService
	campaignRepo portsrepo.CampaignAggregateMutator
	clock        portssvc.Clock
}

// NewLedgerService creates the aggregate mutator service.
func NewLedgerService(campaignRepo portsrepo.CampaignAggregateMutator, clock portssvc.Clock) portssvc.AggregateMutatorSvc {
	return &ledgerService{campaignRepo: campaignRepo, clock: clock}
}

var _ portssvc.AggregateMutatorSvc = (*ledgerService)(nil)

// ApplyDelta atomically adds delta to the named aggregate field.
func (s *ledgerService) ApplyDelta(ctx context.Context, campaignID string, field domain.AggregateField, delta decimal.Decimal) (decimal.Decimal, error) {
	newValue, err := s.campaignRepo.ApplyAggregateDelta(ctx, campaignID, field, delta, s.clock.Now())
	if err != nil {
		return decimal.Zero, err
	}
	s.LogDebug(ctx, "Applied aggregate delta",
		slog.String("campaign_id", campaignID),
		slog.String("field", string(field)),
		slog.String("delta", delta.String()),
		slog.String("new_value", newValue.String()),
	)
	return newValue, nil
}

// ApplyWithdrawalApproval atomically moves amount from current_amount to
// total_raised in a single store operation.
func (s *ledgerService) ApplyWithdrawalApproval(ctx context.Context, campaignID string, amount decimal.Decimal) error {
	if err := s.campaignRepo.ApplyWithdrawalApproval(ctx, campaignID, amount, s.clock.Now()); err != nil {
		return err
	}
	s.LogDebug(ctx, "Applied withdrawal approval to aggregates",
		slog.String("campaign_id", campaignID),
		slog.String("amount", amount.String()),
	)
	return nil
}
