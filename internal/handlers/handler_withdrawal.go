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

// withdrawalHandler handles HTTP requests related to withdrawal requests.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

// registerWithdrawalRoutes registers routes related to withdrawal requests.
func registerWithdrawalRoutes(rg *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}

	rg.POST("/campaigns/:campaignID/withdrawals", h.createWithdrawal)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.GET("/:withdrawalID", h.getWithdrawal)
		withdrawals.POST("/:withdrawalID/decision", h.decideWithdrawal)
	}
}

func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("campaignID")

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		userID = middleware.SystemUserID
	}

	withdrawal, err := h.withdrawalService.CreateWithdrawal(c.Request.Context(), campaignID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			// A normal business outcome, reported with its reason.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create withdrawal", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(withdrawal))
}

func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	withdrawalID := c.Param("withdrawalID")

	withdrawal, err := h.withdrawalService.GetWithdrawalByID(c.Request.Context(), withdrawalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		} else {
			logger.Error("Failed to get withdrawal", slog.String("withdrawal_id", withdrawalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve withdrawal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}

// decideWithdrawal records an operator approval or rejection.
func (h *withdrawalHandler) decideWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	withdrawalID := c.Param("withdrawalID")

	var req dto.DecideWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deciderID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		deciderID = middleware.SystemUserID
	}

	withdrawal, err := h.withdrawalService.DecideWithdrawal(c.Request.Context(), withdrawalID, req, deciderID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			// The request stays PENDING; the operator can retry or reject.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to decide withdrawal", slog.String("withdrawal_id", withdrawalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide withdrawal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}
