package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus indicates the state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// WithdrawalDecision is an operator's verdict on a pending request.
type WithdrawalDecision string

const (
	DecisionApprove WithdrawalDecision = "APPROVE"
	DecisionReject  WithdrawalDecision = "REJECT"
)

// WithdrawalRequest represents a request to pay out part of a campaign's
// collected balance. APPROVED and REJECTED are terminal; only a PENDING
// request can be decided, and approval is the only transition with an
// aggregate effect (currentAmount -= amount, totalRaised += amount).
type WithdrawalRequest struct {
	WithdrawalID string           `json:"withdrawalID"` // Primary Key (UUID)
	CampaignID   string           `json:"campaignID"`   // FK -> campaigns.campaign_id (Not Null)
	Destination  string           `json:"destination"`  // Payout destination reference
	Amount       decimal.Decimal  `json:"amount"`       // Positive, immutable
	Status       WithdrawalStatus `json:"status"`
	DecisionNote string           `json:"decisionNote"`
	DecidedAt    *time.Time       `json:"decidedAt"`
	DecidedBy    string           `json:"decidedBy"`
	AuditFields
}

// IsTerminal reports whether the request has already been decided.
func (w WithdrawalRequest) IsTerminal() bool {
	return w.Status != WithdrawalPending
}
