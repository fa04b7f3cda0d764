package domain

import "github.com/shopspring/decimal"

// RecomputeResult reports the outcome of overwriting one aggregate field from
// source records. Delta is New minus Previous; a non-zero delta means the
// stored aggregate had drifted.
type RecomputeResult struct {
	CampaignID string          `json:"campaignID"`
	Field      AggregateField  `json:"field"`
	Previous   decimal.Decimal `json:"previous"`
	New        decimal.Decimal `json:"new"`
	Delta      decimal.Decimal `json:"delta"`
}

// CampaignRecomputeResult bundles both aggregate recomputations for a single
// campaign, as produced by a bulk repair run.
type CampaignRecomputeResult struct {
	CampaignID    string           `json:"campaignID"`
	CurrentAmount *RecomputeResult `json:"currentAmount,omitempty"`
	TotalRaised   *RecomputeResult `json:"totalRaised,omitempty"`
	Err           string           `json:"error,omitempty"`
}

// SweepResult reports one lifecycle sweep run.
type SweepResult struct {
	GoalReached []string `json:"goalReached"` // Campaign IDs completed because target was met
	Expired     []string `json:"expired"`     // Campaign IDs completed because the deadline passed
}

// Transitioned returns the total number of campaigns the sweep completed.
func (r SweepResult) Transitioned() int {
	return len(r.GoalReached) + len(r.Expired)
}
