package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/dto"
)

// CampaignSvcFacade exposes the supporting campaign CRUD around the ledger.
type CampaignSvcFacade interface {
	// CreateCampaign persists a new ACTIVE campaign with zero aggregates.
	CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorID string) (*domain.Campaign, error)

	// GetCampaignByID retrieves a campaign.
	GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaigns retrieves a paginated list of campaigns.
	ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error)
}
