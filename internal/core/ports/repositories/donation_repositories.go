package repositories

import (
	"context"
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DonationReader defines read operations for donation data
type DonationReader interface {
	// FindDonationByID retrieves a specific donation by its unique identifier.
	FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// ListDonationsByCampaign retrieves a paginated list of a campaign's donations.
	ListDonationsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.Donation, error)

	// SumDonationAmounts sums the amounts of a campaign's donations in the
	// given status. Returns zero when there are none.
	SumDonationAmounts(ctx context.Context, campaignID string, status domain.DonationStatus) (decimal.Decimal, error)
}

// DonationWriter defines write operations for donation data
type DonationWriter interface {
	// SaveDonation persists a new donation.
	SaveDonation(ctx context.Context, donation domain.Donation) error

	// UpdateDonationStatus moves a donation from one status to another with a
	// conditional update (WHERE status = from). Returns
	// apperrors.ErrNotFound if the donation does not exist and
	// apperrors.ErrAlreadyProcessed if it exists but a concurrent caller won
	// the transition.
	UpdateDonationStatus(ctx context.Context, donationID string, from, to domain.DonationStatus, userID string, now time.Time) error
}

// DonationRepositoryFacade combines all donation-related repository interfaces
type DonationRepositoryFacade interface {
	DonationReader
	DonationWriter
}
