package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// DonationSvcFacade exposes the donation state machine.
type DonationSvcFacade interface {
	// CreateDonation persists a new PENDING donation against a campaign.
	CreateDonation(ctx context.Context, campaignID string, req dto.CreateDonationRequest, donorID string) (*domain.Donation, error)

	// GetDonationByID retrieves a donation.
	GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// TransitionDonation validates and applies a status transition, invoking
	// the aggregate mutator exactly once per effective transition. Reapplying
	// the current status is an idempotent no-op.
	TransitionDonation(ctx context.Context, donationID string, target domain.DonationStatus, userID string) (*domain.Donation, error)

	// PendingDonationsTotal sums a campaign's PENDING donations. Display
	// only; never part of the ledger invariant.
	PendingDonationsTotal(ctx context.Context, campaignID string) (decimal.Decimal, error)
}
