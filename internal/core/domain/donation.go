package domain

import "github.com/shopspring/decimal"

// DonationStatus indicates the state of a donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
)

// Donation represents a single pledge against a campaign. Amount is immutable
// after creation; only Status changes, and every effective move into or out of
// COMPLETED carries exactly one aggregate mutation on the campaign.
type Donation struct {
	DonationID string          `json:"donationID"` // Primary Key (UUID)
	CampaignID string          `json:"campaignID"` // FK -> campaigns.campaign_id (Not Null)
	DonorID    string          `json:"donorID"`
	Amount     decimal.Decimal `json:"amount"` // Positive, immutable
	Status     DonationStatus  `json:"status"`
	Message    string          `json:"message"` // Optional donor message
	AuditFields
}

// ValidDonationTarget reports whether a donation may be transitioned to the
// given status post-creation. PENDING is a creation-only state.
func ValidDonationTarget(target DonationStatus) bool {
	return target == DonationCompleted || target == DonationFailed
}

// DonationAggregateDelta returns the signed amount the campaign's
// currentAmount must change by when a donation moves from one status to
// another. A move into COMPLETED adds the amount, a move out of COMPLETED
// removes it, and everything else has no aggregate effect.
func DonationAggregateDelta(from, to DonationStatus, amount decimal.Decimal) decimal.Decimal {
	switch {
	case from == to:
		return decimal.Zero
	case to == DonationCompleted:
		return amount
	case from == DonationCompleted:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}
