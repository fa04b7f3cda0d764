package services

import (
	"context"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/dto"
)

// WithdrawalSvcFacade exposes the withdrawal state machine.
type WithdrawalSvcFacade interface {
	// CreateWithdrawal persists a new PENDING request after a best-effort
	// balance check. Returns apperrors.ErrInsufficientFunds if the amount
	// exceeds the campaign's current balance at check time.
	CreateWithdrawal(ctx context.Context, campaignID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error)

	// GetWithdrawalByID retrieves a withdrawal request.
	GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)

	// DecideWithdrawal applies an operator decision to a PENDING request.
	// Approval re-validates the balance at decision time; on
	// ErrInsufficientFunds the request stays PENDING for operator retry.
	DecideWithdrawal(ctx context.Context, withdrawalID string, req dto.DecideWithdrawalRequest, deciderID string) (*domain.WithdrawalRequest, error)
}
