package dto

import (
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest defines the data needed to create a new donation.
// New donations always start PENDING; payment confirmation arrives later as a
// status transition.
type CreateDonationRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Message string          `json:"message"`
}

// TransitionDonationRequest carries the target status for a donation.
type TransitionDonationRequest struct {
	Status domain.DonationStatus `json:"status" binding:"required,oneof=COMPLETED FAILED"`
}

// DonationResponse defines the data returned for a donation.
type DonationResponse struct {
	DonationID string                `json:"donationID"`
	CampaignID string                `json:"campaignID"`
	DonorID    string                `json:"donorID"`
	Amount     decimal.Decimal       `json:"amount"`
	Status     domain.DonationStatus `json:"status"`
	Message    string                `json:"message,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ToDonationResponse converts a domain.Donation to DonationResponse DTO
func ToDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		DonationID: d.DonationID,
		CampaignID: d.CampaignID,
		DonorID:    d.DonorID,
		Amount:     d.Amount,
		Status:     d.Status,
		Message:    d.Message,
		CreatedAt:  d.CreatedAt,
	}
}

// PendingDonationsResponse reports the informational pending total for a
// campaign. Display only; never part of the ledger invariant.
type PendingDonationsResponse struct {
	CampaignID   string          `json:"campaignID"`
	PendingTotal decimal.Decimal `json:"pendingTotal"`
}
