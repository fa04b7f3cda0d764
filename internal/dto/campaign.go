package dto

import (
	"time"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest defines the data needed to create a new campaign.
// Campaigns are always created ACTIVE with zero aggregates.
type CreateCampaignRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Deadline     time.Time       `json:"deadline" binding:"required"`
}

// CampaignResponse defines the data returned for a campaign.
type CampaignResponse struct {
	CampaignID    string                `json:"campaignID"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	CreatorID     string                `json:"creatorID"`
	TargetAmount  decimal.Decimal       `json:"targetAmount"`
	CurrentAmount decimal.Decimal       `json:"currentAmount"`
	TotalRaised   decimal.Decimal       `json:"totalRaised"`
	Status        domain.CampaignStatus `json:"status"`
	Deadline      time.Time             `json:"deadline"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// ToCampaignResponse converts a domain.Campaign to CampaignResponse DTO
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		CampaignID:    c.CampaignID,
		Title:         c.Title,
		Description:   c.Description,
		CreatorID:     c.CreatorID,
		TargetAmount:  c.TargetAmount,
		CurrentAmount: c.CurrentAmount,
		TotalRaised:   c.TotalRaised,
		Status:        c.Status,
		Deadline:      c.Deadline,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
	}
}

// ToListCampaignResponse converts a slice of domain.Campaign to response DTOs
func ToListCampaignResponse(campaigns []domain.Campaign) []CampaignResponse {
	res := make([]CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		res[i] = ToCampaignResponse(&c)
	}
	return res
}

// ListCampaignsParams defines query parameters for listing campaigns.
type ListCampaignsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCampaignsResponse wraps the list of campaigns.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
}
