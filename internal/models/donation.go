package models

import "github.com/shopspring/decimal"

// DonationStatus mirrors domain.DonationStatus at the storage layer.
type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
)

// Donation is the DB representation of a donation row.
type Donation struct {
	DonationID string          `db:"donation_id"`
	CampaignID string          `db:"campaign_id"`
	DonorID    string          `db:"donor_id"`
	Amount     decimal.Decimal `db:"amount"`
	Status     DonationStatus  `db:"status"`
	Message    string          `db:"message"` // Nullable
	AuditFields
}
