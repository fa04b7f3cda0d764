package repositories

import (
	"context"
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalReader defines read operations for withdrawal request data
type WithdrawalReader interface {
	// FindWithdrawalByID retrieves a specific withdrawal request by its ID.
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)

	// ListWithdrawalsByCampaign retrieves a paginated list of a campaign's requests.
	ListWithdrawalsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.WithdrawalRequest, error)

	// SumApprovedWithdrawals sums the amounts of a campaign's APPROVED
	// withdrawal requests. Returns zero when there are none.
	SumApprovedWithdrawals(ctx context.Context, campaignID string) (decimal.Decimal, error)
}

// WithdrawalWriter defines write operations for withdrawal request data
type WithdrawalWriter interface {
	// SaveWithdrawal persists a new request in PENDING status.
	SaveWithdrawal(ctx context.Context, withdrawal domain.WithdrawalRequest) error

	// UpdateWithdrawalDecision records an operator decision with a conditional
	// update (WHERE status = PENDING). Returns apperrors.ErrNotFound if the
	// request does not exist and apperrors.ErrAlreadyProcessed if it has
	// already left PENDING.
	UpdateWithdrawalDecision(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, decidedBy string, now time.Time) error
}

// WithdrawalRepositoryFacade combines all withdrawal-related repository interfaces
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
}
