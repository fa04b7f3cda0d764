package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregateMutatorSvc is the single write path for a campaign's aggregate
// fields. It has no business knowledge of why a delta is applied; that belongs
// to the calling state machine.
type AggregateMutatorSvc interface {
	// ApplyDelta atomically adds delta to the named aggregate field and
	// returns the new value.
	ApplyDelta(ctx context.Context, campaignID string, field domain.AggregateField, delta decimal.Decimal) (decimal.Decimal, error)

	// ApplyWithdrawalApproval atomically moves amount from current_amount to
	// total_raised in one store operation.
	ApplyWithdrawalApproval(ctx context.Context, campaignID string, amount decimal.Decimal) error
}
