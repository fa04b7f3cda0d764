package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus mirrors domain.WithdrawalStatus at the storage layer.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// WithdrawalRequest is the DB representation of a withdrawal request row.
type WithdrawalRequest struct {
	WithdrawalID string           `db:"withdrawal_id"`
	CampaignID   string           `db:"campaign_id"`
	Destination  string           `db:"destination"`
	Amount       decimal.Decimal  `db:"amount"`
	Status       WithdrawalStatus `db:"status"`
	DecisionNote string           `db:"decision_note"` // Nullable
	DecidedAt    *time.Time       `db:"decided_at"`    // Nullable
	DecidedBy    string           `db:"decided_by"`    // Nullable
	AuditFields
}
