package dto

import "github.com/fundnest/crowdfund_backend/internal/core/domain"

// ReconcileCampaignResponse reports both aggregate recomputations for one
// campaign.
type ReconcileCampaignResponse struct {
	CampaignID    string                  `json:"campaignID"`
	CurrentAmount *domain.RecomputeResult `json:"currentAmount,omitempty"`
	TotalRaised   *domain.RecomputeResult `json:"totalRaised,omitempty"`
}

// ReconcileAllResponse wraps a bulk repair run.
type ReconcileAllResponse struct {
	Campaigns []domain.CampaignRecomputeResult `json:"campaigns"`
}

// SweepResponse reports a lifecycle sweep run.
type SweepResponse struct {
	Transitioned int      `json:"transitioned"`
	GoalReached  []string `json:"goalReached"`
	Expired      []string `json:"expired"`
}
