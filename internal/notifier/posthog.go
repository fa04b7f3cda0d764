package notifier

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// PosthogNotifier captures ledger events as analytics events. The posthog
// client batches and retries internally; Enqueue never blocks the caller.
type PosthogNotifier struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogNotifier creates a posthog-backed notifier. Returns nil if the
// API key is empty, so callers can skip wiring it.
func NewPosthogNotifier(apiKey string, logger *slog.Logger) *PosthogNotifier {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics notifier disabled")
		return nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return nil
	}
	return &PosthogNotifier{client: client, logger: logger}
}

var _ portssvc.Notifier = (*PosthogNotifier)(nil)

// Close flushes pending captures.
func (n *PosthogNotifier) Close() {
	if n.client != nil {
		n.client.Close()
	}
}

func (n *PosthogNotifier) capture(e event) {
	err := n.client.Enqueue(posthog.Capture{
		DistinctId: e.CampaignID,
		Event:      e.Name,
		Properties: map[string]any{
			"campaign_id": e.CampaignID,
			"subject_id":  e.SubjectID,
			"amount":      e.Amount,
			"reason":      e.Reason,
			"occurred_at": e.OccurredAt,
		},
	})
	if err != nil {
		// Fire-and-forget: record and move on.
		n.logger.Warn("Failed to enqueue posthog event", slog.String("event", e.Name), slog.String("error", err.Error()))
	}
}

func (n *PosthogNotifier) DonationCompleted(_ context.Context, d domain.Donation) {
	n.capture(donationEvent(EventDonationCompleted, d))
}

func (n *PosthogNotifier) DonationReversed(_ context.Context, d domain.Donation) {
	n.capture(donationEvent(EventDonationReversed, d))
}

func (n *PosthogNotifier) WithdrawalApproved(_ context.Context, w domain.WithdrawalRequest) {
	n.capture(withdrawalEvent(EventWithdrawalApproved, w))
}

func (n *PosthogNotifier) WithdrawalRejected(_ context.Context, w domain.WithdrawalRequest) {
	n.capture(withdrawalEvent(EventWithdrawalRejected, w))
}

func (n *PosthogNotifier) CampaignCompleted(_ context.Context, campaignID string, reason domain.CompletionReason) {
	n.capture(campaignEvent(campaignID, reason))
}
