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

// withdrawalService implements the withdrawal state machine. The balance check
// at creation is best effort; approval re-validates against the balance at
// decision time, because other approvals or donation reversals may have shrunk
// it in between.
type withdrawalService struct {
	BaseService
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	campaignRepo   portsrepo.CampaignReader
	mutator        portssvc.AggregateMutatorSvc
	notifier       portssvc.Notifier
	clock          portssvc.Clock
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	campaignRepo portsrepo.CampaignReader,
	mutator portssvc.AggregateMutatorSvc,
	notifier portssvc.Notifier,
	clock portssvc.Clock,
) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		campaignRepo:   campaignRepo,
		mutator:        mutator,
		notifier:       notifier,
		clock:          clock,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// CreateWithdrawal persists a new PENDING request after a best-effort balance
// check.
func (s *withdrawalService) CreateWithdrawal(ctx context.Context, campaignID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(campaign.CurrentAmount) {
		return nil, fmt.Errorf("%w: requested %s exceeds available balance %s",
			apperrors.ErrInsufficientFunds, req.Amount.String(), campaign.CurrentAmount.String())
	}

	now := s.clock.Now()
	withdrawal := domain.WithdrawalRequest{
		WithdrawalID: uuid.NewString(),
		CampaignID:   campaignID,
		Destination:  req.Destination,
		Amount:       req.Amount,
		Status:       domain.WithdrawalPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.withdrawalRepo.SaveWithdrawal(ctx, withdrawal); err != nil {
		s.LogError(ctx, err, "Failed to save withdrawal request",
			slog.String("withdrawal_id", withdrawal.WithdrawalID),
			slog.String("campaign_id", campaignID),
		)
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal request created",
		slog.String("withdrawal_id", withdrawal.WithdrawalID),
		slog.String("campaign_id", campaignID),
		slog.String("amount", withdrawal.Amount.String()),
	)
	return &withdrawal, nil
}

// GetWithdrawalByID retrieves a withdrawal request.
func (s *withdrawalService) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	return s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
}

// DecideWithdrawal applies an operator decision to a PENDING request.
func (s *withdrawalService) DecideWithdrawal(ctx context.Context, withdrawalID string, req dto.DecideWithdrawalRequest, deciderID string) (*domain.WithdrawalRequest, error) {
	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal.IsTerminal() {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", apperrors.ErrAlreadyProcessed, withdrawalID, withdrawal.Status)
	}

	switch req.Decision {
	case domain.DecisionApprove:
		return s.approve(ctx, withdrawal, req.Note, deciderID)
	case domain.DecisionReject:
		return s.reject(ctx, withdrawal, req.Note, deciderID)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, req.Decision)
	}
}

func (s *withdrawalService) approve(ctx context.Context, withdrawal *domain.WithdrawalRequest, note string, deciderID string) (*domain.WithdrawalRequest, error) {
	// Re-validate against the balance at decision time. On failure the
	// request stays PENDING so the operator can retry or reject.
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, withdrawal.CampaignID)
	if err != nil {
		return nil, err
	}
	if withdrawal.Amount.GreaterThan(campaign.CurrentAmount) {
		s.LogWarn(ctx, "Withdrawal approval blocked: balance shrank since creation",
			slog.String("withdrawal_id", withdrawal.WithdrawalID),
			slog.String("amount", withdrawal.Amount.String()),
			slog.String("current_amount", campaign.CurrentAmount.String()),
		)
		return nil, fmt.Errorf("%w: %s exceeds available balance %s",
			apperrors.ErrInsufficientFunds, withdrawal.Amount.String(), campaign.CurrentAmount.String())
	}

	now := s.clock.Now()
	if err := s.withdrawalRepo.UpdateWithdrawalDecision(ctx, withdrawal.WithdrawalID, domain.WithdrawalApproved, note, deciderID, now); err != nil {
		return nil, err
	}

	withdrawal.Status = domain.WithdrawalApproved
	withdrawal.DecisionNote = note
	withdrawal.DecidedAt = &now
	withdrawal.DecidedBy = deciderID
	withdrawal.LastUpdatedAt = now
	withdrawal.LastUpdatedBy = deciderID

	if err := s.mutator.ApplyWithdrawalApproval(ctx, withdrawal.CampaignID, withdrawal.Amount); err != nil {
		// Drift event: the request is APPROVED but the aggregates were not
		// moved. Surface it; reconciliation will repair both fields.
		s.LogError(ctx, err, "Aggregate mutation failed after withdrawal approval; campaign aggregates have drifted",
			slog.String("withdrawal_id", withdrawal.WithdrawalID),
			slog.String("campaign_id", withdrawal.CampaignID),
			slog.String("unapplied_amount", withdrawal.Amount.String()),
		)
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal approved",
		slog.String("withdrawal_id", withdrawal.WithdrawalID),
		slog.String("campaign_id", withdrawal.CampaignID),
		slog.String("amount", withdrawal.Amount.String()),
	)
	s.notifier.WithdrawalApproved(ctx, *withdrawal)
	return withdrawal, nil
}

func (s *withdrawalService) reject(ctx context.Context, withdrawal *domain.WithdrawalRequest, note string, deciderID string) (*domain.WithdrawalRequest, error) {
	now := s.clock.Now()
	if err := s.withdrawalRepo.UpdateWithdrawalDecision(ctx, withdrawal.WithdrawalID, domain.WithdrawalRejected, note, deciderID, now); err != nil {
		return nil, err
	}

	withdrawal.Status = domain.WithdrawalRejected
	withdrawal.DecisionNote = note
	withdrawal.DecidedAt = &now
	withdrawal.DecidedBy = deciderID
	withdrawal.LastUpdatedAt = now
	withdrawal.LastUpdatedBy = deciderID

	s.LogInfo(ctx, "Withdrawal rejected",
		slog.String("withdrawal_id", withdrawal.WithdrawalID),
		slog.String("campaign_id", withdrawal.CampaignID),
	)
	s.notifier.WithdrawalRejected(ctx, *withdrawal)
	return withdrawal, nil
}
