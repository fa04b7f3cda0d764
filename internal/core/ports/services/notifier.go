package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
)

// Notifier delivers ledger events to external collaborators (email, push,
// analytics). Calls are fire-and-forget: implementations own their retry
// policy, swallow their own failures, and must never block or fail the ledger
// operation that emitted the event.
type Notifier interface {
	DonationCompleted(ctx context.Context, donation domain.Donation)
	DonationReversed(ctx context.Context, donation domain.Donation)
	WithdrawalApproved(ctx context.Context, withdrawal domain.WithdrawalRequest)
	WithdrawalRejected(ctx context.Context, withdrawal domain.WithdrawalRequest)
	CampaignCompleted(ctx context.Context, campaignID string, reason domain.CompletionReason)
}
