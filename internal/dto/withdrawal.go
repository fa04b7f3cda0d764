package dto

import (
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest defines the data needed to request a payout.
type CreateWithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Destination string          `json:"destination" binding:"required"`
}

// DecideWithdrawalRequest carries an operator's verdict on a pending request.
type DecideWithdrawalRequest struct {
	Decision domain.WithdrawalDecision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Note     string                    `json:"note"`
}

// WithdrawalResponse defines the data returned for a withdrawal request.
type WithdrawalResponse struct {
	WithdrawalID string                  `json:"withdrawalID"`
	CampaignID   string                  `json:"campaignID"`
	Destination  string                  `json:"destination"`
	Amount       decimal.Decimal         `json:"amount"`
	Status       domain.WithdrawalStatus `json:"status"`
	DecisionNote string                  `json:"decisionNote,omitempty"`
	DecidedAt    *time.Time              `json:"decidedAt,omitempty"`
	DecidedBy    string                  `json:"decidedBy,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// ToWithdrawalResponse converts a domain.WithdrawalRequest to its DTO
func ToWithdrawalResponse(w *domain.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID: w.WithdrawalID,
		CampaignID:   w.CampaignID,
		Destination:  w.Destination,
		Amount:       w.Amount,
		Status:       w.Status,
		DecisionNote: w.DecisionNote,
		DecidedAt:    w.DecidedAt,
		DecidedBy:    w.DecidedBy,
		CreatedAt:    w.CreatedAt,
	}
}
