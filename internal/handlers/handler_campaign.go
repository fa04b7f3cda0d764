package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/dto"
	"github.com/fundnest/crowdfund_backend/internal/middleware"
)

// campaignHandler handles HTTP requests related to campaigns.
type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
}

// registerCampaignRoutes registers routes related to campaigns.
func registerCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := &campaignHandler{campaignService: campaignService}

	campaigns := rg.Group("/campaigns")
	{
		campaigns.POST("", h.createCampaign)
		campaigns.GET("", h.listCampaigns)
		campaigns.GET("/:campaignID", h.getCampaign)
	}
}

func (h *campaignHandler) createCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCampaign", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		creatorID = middleware.SystemUserID
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create campaign", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCampaignResponse(campaign))
}

func (h *campaignHandler) getCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("campaignID")

	campaign, err := h.campaignService.GetCampaignByID(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			logger.Error("Failed to get campaign", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve campaign"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

func (h *campaignHandler) listCampaigns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCampaignsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	campaigns, err := h.campaignService.ListCampaigns(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list campaigns", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCampaignsResponse{Campaigns: dto.ToListCampaignResponse(campaigns)})
}
