// Package notifier provides fire-and-forget dispatchers for ledger events.
// Every adapter owns its own failure handling; none of them ever returns an
// error to the emitting ledger operation.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/middleware"
)

// Event names shared by all adapters.
const (
	EventDonationCompleted  = "donation_completed"
	EventDonationReversed   = "donation_reversed"
	EventWithdrawalApproved = "withdrawal_approved"
	EventWithdrawalRejected = "withdrawal_rejected"
	EventCampaignCompleted  = "campaign_completed"
)

// event is the wire shape delivered to downstream collaborators.
type event struct {
	Name       string    `json:"name"`
	CampaignID string    `json:"campaignID"`
	SubjectID  string    `json:"subjectID,omitempty"` // donation or withdrawal ID
	Amount     string    `json:"amount,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func donationEvent(name string, d domain.Donation) event {
	return event{
		Name:       name,
		CampaignID: d.CampaignID,
		SubjectID:  d.DonationID,
		Amount:     d.Amount.String(),
		OccurredAt: time.Now().UTC(),
	}
}

func withdrawalEvent(name string, w domain.WithdrawalRequest) event {
	return event{
		Name:       name,
		CampaignID: w.CampaignID,
		SubjectID:  w.WithdrawalID,
		Amount:     w.Amount.String(),
		OccurredAt: time.Now().UTC(),
	}
}

func campaignEvent(campaignID string, reason domain.CompletionReason) event {
	return event{
		Name:       EventCampaignCompleted,
		CampaignID: campaignID,
		Reason:     string(reason),
		OccurredAt: time.Now().UTC(),
	}
}

// LogNotifier records ledger events to the request-scoped logger. It is the
// always-on fallback when no external collaborator is configured.
type LogNotifier struct{}

// NewLogNotifier creates a logging-only notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) log(ctx context.Context, e event) {
	middleware.GetLoggerFromCtx(ctx).Info("Ledger event",
		slog.String("event", e.Name),
		slog.String("campaign_id", e.CampaignID),
		slog.String("subject_id", e.SubjectID),
		slog.String("amount", e.Amount),
		slog.String("reason", e.Reason),
	)
}

func (n *LogNotifier) DonationCompleted(ctx context.Context, d domain.Donation) {
	n.log(ctx, donationEvent(EventDonationCompleted, d))
}

func (n *LogNotifier) DonationReversed(ctx context.Context, d domain.Donation) {
	n.log(ctx, donationEvent(EventDonationReversed, d))
}

func (n *LogNotifier) WithdrawalApproved(ctx context.Context, w domain.WithdrawalRequest) {
	n.log(ctx, withdrawalEvent(EventWithdrawalApproved, w))
}

func (n *LogNotifier) WithdrawalRejected(ctx context.Context, w domain.WithdrawalRequest) {
	n.log(ctx, withdrawalEvent(EventWithdrawalRejected, w))
}

func (n *LogNotifier) CampaignCompleted(ctx context.Context, campaignID string, reason domain.CompletionReason) {
	n.log(ctx, campaignEvent(campaignID, reason))
}

// MultiNotifier fans every event out to all configured adapters.
type MultiNotifier struct {
	notifiers []portssvc.Notifier
}

// NewMultiNotifier combines several notifiers into one.
func NewMultiNotifier(notifiers ...portssvc.Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

var _ portssvc.Notifier = (*MultiNotifier)(nil)

func (m *MultiNotifier) DonationCompleted(ctx context.Context, d domain.Donation) {
	for _, n := range m.notifiers {
		n.DonationCompleted(ctx, d)
	}
}

func (m *MultiNotifier) DonationReversed(ctx context.Context, d domain.Donation) {
	for _, n := range m.notifiers {
		n.DonationReversed(ctx, d)
	}
}

func (m *MultiNotifier) WithdrawalApproved(ctx context.Context, w domain.WithdrawalRequest) {
	for _, n := range m.notifiers {
		n.WithdrawalApproved(ctx, w)
	}
}

func (m *MultiNotifier) WithdrawalRejected(ctx context.Context, w domain.WithdrawalRequest) {
	for _, n := range m.notifiers {
		n.WithdrawalRejected(ctx, w)
	}
}

func (m *MultiNotifier) CampaignCompleted(ctx context.Context, campaignID string, reason domain.CompletionReason) {
	for _, n := range m.notifiers {
		n.CampaignCompleted(ctx, campaignID, reason)
	}
}
