package repositories

import (
	"context"
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CampaignReader defines read operations for campaign data
type CampaignReader interface {
	// FindCampaignByID retrieves a specific campaign by its unique identifier.
	FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaigns retrieves a paginated list of campaigns.
	ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error)

	// ListCampaignIDs retrieves the IDs of all campaigns, for bulk repair runs.
	ListCampaignIDs(ctx context.Context) ([]string, error)
}

// CampaignWriter defines write operations for campaign data
type CampaignWriter interface {
	// SaveCampaign persists a new campaign.
	SaveCampaign(ctx context.Context, campaign domain.Campaign) error
}

// CampaignAggregateMutator applies atomic in-place deltas to a campaign's
// aggregate fields. Implementations must perform a single atomic
// read-modify-write at the store (e.g. UPDATE ... SET x = x + delta), never
// two round trips, so concurrent completions for the same campaign cannot
// lose updates.
type CampaignAggregateMutator interface {
	// ApplyAggregateDelta atomically adds delta to one aggregate field and
	// returns the new value. Returns apperrors.ErrNotFound if the campaign
	// does not exist.
	ApplyAggregateDelta(ctx context.Context, campaignID string, field domain.AggregateField, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)

	// ApplyWithdrawalApproval atomically applies the paired effect of an
	// approved withdrawal: current_amount -= amount, total_raised += amount,
	// in one statement so both land or neither does.
	ApplyWithdrawalApproval(ctx context.Context, campaignID string, amount decimal.Decimal, now time.Time) error
}

// CampaignReconciler rebuilds aggregate fields from source rows.
type CampaignReconciler interface {
	// RecomputeCurrentAmount overwrites current_amount with the sum of
	// completed donations minus approved withdrawals, computed from source
	// rows inside one transaction, and reports previous/new/delta.
	RecomputeCurrentAmount(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error)

	// RecomputeTotalRaised overwrites total_raised with current_amount plus
	// the sum of approved withdrawals.
	RecomputeTotalRaised(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error)
}

// CampaignSweeper performs the set-based lifecycle transitions. Both scans are
// conditional updates guarded by status = ACTIVE, so overlapping sweep runs
// cannot double-transition a campaign.
type CampaignSweeper interface {
	// CompleteWhereGoalReached transitions every ACTIVE campaign whose
	// current_amount has met its target and returns the affected IDs.
	CompleteWhereGoalReached(ctx context.Context, now time.Time) ([]string, error)

	// CompleteWhereExpired transitions every ACTIVE campaign whose deadline
	// lies before now and returns the affected IDs.
	CompleteWhereExpired(ctx context.Context, now time.Time) ([]string, error)
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
	CampaignAggregateMutator
	CampaignReconciler
	CampaignSweeper
}
