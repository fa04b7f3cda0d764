package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// WebhookNotifier POSTs ledger events to the notification collaborator
// (email/push dispatcher). Delivery happens on a background goroutine with
// exponential backoff; from the ledger's perspective each event is
// at-most-once and a final failure is only logged.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	maxElapsed time.Duration
}

// NewWebhookNotifier creates a webhook-backed notifier. Returns nil if the
// URL is empty, so callers can skip wiring it.
func NewWebhookNotifier(url string, logger *slog.Logger) *WebhookNotifier {
	if url == "" {
		return nil
	}
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		maxElapsed: 30 * time.Second,
	}
}

var _ portssvc.Notifier = (*WebhookNotifier)(nil)

func (n *WebhookNotifier) deliver(e event) {
	body, err := json.Marshal(e)
	if err != nil {
		n.logger.Error("Failed to marshal ledger event", slog.String("event", e.Name), slog.String("error", err.Error()))
		return
	}

	operation := func() (struct{}, error) {
		resp, err := n.httpClient.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return struct{}{}, fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			// Client errors will not improve with retries.
			return struct{}{}, backoff.Permanent(fmt.Errorf("webhook rejected event with status %d", resp.StatusCode))
		}
		return struct{}{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.maxElapsed)
	defer cancel()

	_, err = backoff.Retry(ctx, operation, backoff.WithBackOff(backoff.NewExponentialBackOff()))
	if err != nil {
		n.logger.Warn("Webhook delivery failed; dropping event",
			slog.String("event", e.Name),
			slog.String("campaign_id", e.CampaignID),
			slog.String("error", err.Error()),
		)
	}
}

// dispatch hands the event to a background goroutine so the ledger caller
// never waits on the collaborator.
func (n *WebhookNotifier) dispatch(e event) {
	go n.deliver(e)
}

func (n *WebhookNotifier) DonationCompleted(_ context.Context, d domain.Donation) {
	n.dispatch(donationEvent(EventDonationCompleted, d))
}

func (n *WebhookNotifier) DonationReversed(_ context.Context, d domain.Donation) {
	n.dispatch(donationEvent(EventDonationReversed, d))
}

func (n *WebhookNotifier) WithdrawalApproved(_ context.Context, w domain.WithdrawalRequest) {
	n.dispatch(withdrawalEvent(EventWithdrawalApproved, w))
}

func (n *WebhookNotifier) WithdrawalRejected(_ context.Context, w domain.WithdrawalRequest) {
	n.dispatch(withdrawalEvent(EventWithdrawalRejected, w))
}

func (n *WebhookNotifier) CampaignCompleted(_ context.Context, campaignID string, reason domain.CompletionReason) {
	n.dispatch(campaignEvent(campaignID, reason))
}
