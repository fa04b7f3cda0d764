package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus mirrors domain.CampaignStatus at the storage layer.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// Campaign is the DB representation of a crowdfunding campaign.
// current_amount and total_raised are only ever changed via atomic in-place
// increments or a reconciliation overwrite, never via read-modify-write.
type Campaign struct {
	CampaignID    string          `db:"campaign_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	CreatorID     string          `db:"creator_id"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TotalRaised   decimal.Decimal `db:"total_raised"`
	Status        CampaignStatus  `db:"status"`
	Deadline      time.Time       `db:"deadline"`
	AuditFields
}
