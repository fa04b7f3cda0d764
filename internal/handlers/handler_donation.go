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

// donationHandler handles HTTP requests related to donations.
type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// registerDonationRoutes registers routes related to donations.
func registerDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := &donationHandler{donationService: donationService}

	campaigns := rg.Group("/campaigns/:campaignID")
	{
		campaigns.POST("/donations", h.createDonation)
		campaigns.GET("/donations/pending-total", h.getPendingTotal)
	}

	donations := rg.Group("/donations")
	{
		donations.GET("/:donationID", h.getDonation)
		donations.POST("/:donationID/transition", h.transitionDonation)
	}
}

func (h *donationHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("campaignID")

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDonation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	donorID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		donorID = middleware.SystemUserID
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), campaignID, req, donorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		default:
			logger.Error("Failed to create donation", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDonationResponse(donation))
}

func (h *donationHandler) getDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donationID := c.Param("donationID")

	donation, err := h.donationService.GetDonationByID(c.Request.Context(), donationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			logger.Error("Failed to get donation", slog.String("donation_id", donationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

// transitionDonation applies a payment-gateway style status change
// (COMPLETED or FAILED) to a donation.
func (h *donationHandler) transitionDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donationID := c.Param("donationID")

	var req dto.TransitionDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionDonation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		userID = middleware.SystemUserID
	}

	donation, err := h.donationService.TransitionDonation(c.Request.Context(), donationID, req.Status, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation or campaign not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to transition donation", slog.String("donation_id", donationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transition donation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

func (h *donationHandler) getPendingTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("campaignID")

	total, err := h.donationService.PendingDonationsTotal(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			logger.Error("Failed to sum pending donations", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum pending donations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PendingDonationsResponse{CampaignID: campaignID, PendingTotal: total})
}
