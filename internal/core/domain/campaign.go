package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus indicates the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// AggregateField names one of the maintained aggregate columns on a campaign.
// The aggregate mutator only ever touches these two fields.
type AggregateField string

const (
	FieldCurrentAmount AggregateField = "current_amount"
	FieldTotalRaised   AggregateField = "total_raised"
)

// Campaign represents a crowdfunding campaign within the core domain.
//
// CurrentAmount and TotalRaised are maintained aggregates over the campaign's
// donation and withdrawal rows; the source rows remain authoritative and the
// reconciliation operations can rebuild both fields from them at any time.
type Campaign struct {
	CampaignID    string          `json:"campaignID"` // Primary Key (UUID)
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	CreatorID     string          `json:"creatorID"`     // Owning user, informational only
	TargetAmount  decimal.Decimal `json:"targetAmount"`  // Fixed at creation, immutable
	CurrentAmount decimal.Decimal `json:"currentAmount"` // Σ completed donations − Σ approved withdrawals
	TotalRaised   decimal.Decimal `json:"totalRaised"`   // All-time gross: CurrentAmount + Σ approved withdrawals
	Status        CampaignStatus  `json:"status"`
	Deadline      time.Time       `json:"deadline"` // Fixed at creation, immutable
	AuditFields
}

// GoalReached reports whether the campaign has collected at least its target.
func (c Campaign) GoalReached() bool {
	return c.CurrentAmount.GreaterThanOrEqual(c.TargetAmount)
}

// Expired reports whether the campaign's deadline has passed at the given time.
func (c Campaign) Expired(now time.Time) bool {
	return c.Deadline.Before(now)
}

// CompletionReason records which sweep condition transitioned a campaign.
type CompletionReason string

const (
	ReasonGoalReached    CompletionReason = "goal_reached"
	ReasonDeadlinePassed CompletionReason = "deadline_passed"
)
