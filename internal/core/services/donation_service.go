package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/dto"
)

// donationService implements the donation state machine. Every effective move
// into or out of COMPLETED carries exactly one aggregate mutation; re-applying
// the current status is a no-op.
type donationService struct {
	BaseService
	donationRepo portsrepo.DonationRepositoryFacade
	campaignRepo portsrepo.CampaignReader
	mutator      portssvc.AggregateMutatorSvc
	notifier     portssvc.Notifier
	clock        portssvc.Clock
}

// NewDonationService creates a new DonationService.
func NewDonationService(
	donationRepo portsrepo.DonationRepositoryFacade,
	campaignRepo portsrepo.CampaignReader,
	mutator portssvc.AggregateMutatorSvc,
	notifier portssvc.Notifier,
	clock portssvc.Clock,
) portssvc.DonationSvcFacade {
	return &donationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		mutator:      mutator,
		notifier:     notifier,
		clock:        clock,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// CreateDonation persists a new PENDING donation against a campaign.
func (s *donationService) CreateDonation(ctx context.Context, campaignID string, req dto.CreateDonationRequest, donorID string) (*domain.Donation, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: donation amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.campaignRepo.FindCampaignByID(ctx, campaignID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	donation := domain.Donation{
		DonationID: uuid.NewString(),
		CampaignID: campaignID,
		DonorID:    donorID,
		Amount:     req.Amount,
		Status:     domain.DonationPending,
		Message:    req.Message,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     donorID,
			LastUpdatedAt: now,
			LastUpdatedBy: donorID,
		},
	}

	if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
		s.LogError(ctx, err, "Failed to save donation",
			slog.String("donation_id", donation.DonationID),
			slog.String("campaign_id", campaignID),
		)
		return nil, err
	}

	s.LogInfo(ctx, "Donation created",
		slog.String("donation_id", donation.DonationID),
		slog.String("campaign_id", campaignID),
		slog.String("amount", donation.Amount.String()),
	)
	return &donation, nil
}

// GetDonationByID retrieves a donation.
func (s *donationService) GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	return s.donationRepo.FindDonationByID(ctx, donationID)
}

// TransitionDonation applies a status transition. The status write lands
// first, then the aggregate mutation; a mutator failure after a successful
// status write leaves a drifted aggregate that reconciliation repairs, and is
// logged loudly rather than rolled back.
func (s *donationService) TransitionDonation(ctx context.Context, donationID string, target domain.DonationStatus, userID string) (*domain.Donation, error) {
	if !domain.ValidDonationTarget(target) {
		return nil, fmt.Errorf("%w: %q is not a valid target status", apperrors.ErrValidation, target)
	}

	donation, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	// The campaign need not be ACTIVE (gateway callbacks can arrive after it
	// closes), but it must still exist.
	if _, err := s.campaignRepo.FindCampaignByID(ctx, donation.CampaignID); err != nil {
		return nil, err
	}

	from := donation.Status
	if from == target {
		// Idempotent: the transition already happened.
		return donation, nil
	}

	now := s.clock.Now()
	if err := s.donationRepo.UpdateDonationStatus(ctx, donationID, from, target, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyProcessed) {
			// A concurrent caller moved the donation first. If it landed on
			// the same target this call is an idempotent success; the winner
			// already applied the aggregate effect.
			current, rerr := s.donationRepo.FindDonationByID(ctx, donationID)
			if rerr == nil && current.Status == target {
				return current, nil
			}
		}
		return nil, err
	}

	donation.Status = target
	donation.LastUpdatedAt = now
	donation.LastUpdatedBy = userID

	delta := domain.DonationAggregateDelta(from, target, donation.Amount)
	if !delta.IsZero() {
		if _, err := s.mutator.ApplyDelta(ctx, donation.CampaignID, domain.FieldCurrentAmount, delta); err != nil {
			// Drift event: the status row says one thing, the aggregate
			// another. Surface it; recomputeCurrentAmount will repair.
			s.LogError(ctx, err, "Aggregate mutation failed after donation status write; campaign aggregate has drifted",
				slog.String("donation_id", donationID),
				slog.String("campaign_id", donation.CampaignID),
				slog.String("unapplied_delta", delta.String()),
			)
			return nil, err
		}
	}

	s.LogInfo(ctx, "Donation transitioned",
		slog.String("donation_id", donationID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)

	// Fire-and-forget notifications; adapters swallow their own failures.
	switch {
	case target == domain.DonationCompleted:
		s.notifier.DonationCompleted(ctx, *donation)
	case from == domain.DonationCompleted && target == domain.DonationFailed:
		s.notifier.DonationReversed(ctx, *donation)
	}

	return donation, nil
}

// PendingDonationsTotal sums a campaign's PENDING donations, for display only.
func (s *donationService) PendingDonationsTotal(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	if _, err := s.campaignRepo.FindCampaignByID(ctx, campaignID); err != nil {
		return decimal.Zero, err
	}
	return s.donationRepo.SumDonationAmounts(ctx, campaignID, domain.DonationPending)
}
