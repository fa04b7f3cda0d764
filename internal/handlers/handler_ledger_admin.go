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

// ledgerAdminHandler exposes the operator-facing repair and sweep operations.
type ledgerAdminHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	lifecycleService      portssvc.LifecycleSvcFacade
}

// registerLedgerAdminRoutes registers reconciliation and sweep routes.
func registerLedgerAdminRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade, lifecycleService portssvc.LifecycleSvcFacade) {
	h := &ledgerAdminHandler{
		reconciliationService: reconciliationService,
		lifecycleService:      lifecycleService,
	}

	rg.POST("/campaigns/:campaignID/reconcile", h.reconcileCampaign)
	rg.POST("/reconcile", h.reconcileAll)
	rg.POST("/sweep", h.runSweep)
}

// reconcileCampaign rebuilds both aggregates for one campaign from its source
// rows.
func (h *ledgerAdminHandler) reconcileCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("campaignID")

	current, err := h.reconciliationService.RecomputeCurrentAmount(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			logger.Error("Failed to recompute current amount", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile campaign"})
		}
		return
	}

	total, err := h.reconciliationService.RecomputeTotalRaised(c.Request.Context(), campaignID)
	if err != nil {
		logger.Error("Failed to recompute total raised", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile campaign"})
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileCampaignResponse{
		CampaignID:    campaignID,
		CurrentAmount: current,
		TotalRaised:   total,
	})
}

// reconcileAll rebuilds both aggregates for every campaign.
func (h *ledgerAdminHandler) reconcileAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	results, err := h.reconciliationService.RecomputeAll(c.Request.Context())
	if err != nil {
		logger.Error("Bulk reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Bulk reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileAllResponse{Campaigns: results})
}

// runSweep manually triggers the lifecycle sweep. Safe to call while the
// scheduled sweep is mid-flight.
func (h *ledgerAdminHandler) runSweep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.lifecycleService.RunLifecycleSweep(c.Request.Context())
	if err != nil {
		logger.Error("Manual lifecycle sweep failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lifecycle sweep failed"})
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{
		Transitioned: result.Transitioned(),
		GoalReached:  result.GoalReached,
		Expired:      result.Expired,
	})
}
