package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/dto"
)

// campaignService provides the supporting campaign CRUD around the ledger.
type campaignService struct {
	BaseService
	campaignRepo portsrepo.CampaignRepositoryFacade
	clock        portssvc.Clock
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade, clock portssvc.Clock) portssvc.CampaignSvcFacade {
	return &campaignService{campaignRepo: campaignRepo, clock: clock}
}

var _ portssvc.CampaignSvcFacade = (*campaignService)(nil)

// CreateCampaign persists a new ACTIVE campaign with zero aggregates.
func (s *campaignService) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorID string) (*domain.Campaign, error) {
	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}
	now := s.clock.Now()
	if !req.Deadline.After(now) {
		return nil, fmt.Errorf("%w: deadline must be in the future", apperrors.ErrValidation)
	}

	campaign := domain.Campaign{
		CampaignID:    uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		CreatorID:     creatorID,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		TotalRaised:   decimal.Zero,
		Status:        domain.CampaignActive,
		Deadline:      req.Deadline,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.campaignRepo.SaveCampaign(ctx, campaign); err != nil {
		s.LogError(ctx, err, "Failed to save campaign", slog.String("campaign_id", campaign.CampaignID))
		return nil, err
	}

	s.LogInfo(ctx, "Campaign created",
		slog.String("campaign_id", campaign.CampaignID),
		slog.String("target_amount", campaign.TargetAmount.String()),
	)
	return &campaign, nil
}

// GetCampaignByID retrieves a campaign.
func (s *campaignService) GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return s.campaignRepo.FindCampaignByID(ctx, campaignID)
}

// ListCampaigns retrieves a paginated list of campaigns.
func (s *campaignService) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.campaignRepo.ListCampaigns(ctx, limit, offset)
}
