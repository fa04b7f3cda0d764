package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/core/services"
	"github.com/fundnest/crowdfund_backend/internal/dto"
)

// --- Test Suite Setup ---

type WithdrawalServiceTestSuite struct {
	suite.Suite
	mockWithdrawalRepo *MockWithdrawalRepository
	mockCampaignRepo   *MockCampaignRepository
	mockNotifier       *MockNotifier
	now                time.Time
	service            portssvc.WithdrawalSvcFacade
	campaign           domain.Campaign
	deciderID          string
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.mockWithdrawalRepo = new(MockWithdrawalRepository)
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := fixedClock{now: suite.now}

	mutator := services.NewLedgerService(suite.mockCampaignRepo, clock)
	suite.service = services.NewWithdrawalService(suite.mockWithdrawalRepo, suite.mockCampaignRepo, mutator, suite.mockNotifier, clock)

	suite.deciderID = uuid.NewString()
	suite.campaign = domain.Campaign{
		CampaignID:    uuid.NewString(),
		Title:         "Community Garden",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(500),
		TotalRaised:   decimal.NewFromInt(500),
		Status:        domain.CampaignActive,
		Deadline:      suite.now.Add(30 * 24 * time.Hour),
	}
}

func (suite *WithdrawalServiceTestSuite) pendingWithdrawal(amount int64) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		WithdrawalID: uuid.NewString(),
		CampaignID:   suite.campaign.CampaignID,
		Destination:  "bank-account-42",
		Amount:       decimal.NewFromInt(amount),
		Status:       domain.WithdrawalPending,
	}
}

// --- CreateWithdrawal ---

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_Success() {
	ctx := context.Background()
	req := dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(200), Destination: "bank-account-42"}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(&suite.campaign, nil).Once()
	suite.mockWithdrawalRepo.On("SaveWithdrawal", ctx, mock.AnythingOfType("domain.WithdrawalRequest")).Return(nil).Once()

	withdrawal, err := suite.service.CreateWithdrawal(ctx, suite.campaign.CampaignID, req, suite.deciderID)

	suite.Require().NoError(err)
	suite.Require().NotNil(withdrawal)
	suite.NotEmpty(withdrawal.WithdrawalID)
	suite.Equal(domain.WithdrawalPending, withdrawal.Status)
	suite.Nil(withdrawal.DecidedAt)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(-5), Destination: "bank-account-42"}

	_, err := suite.service.CreateWithdrawal(ctx, suite.campaign.CampaignID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "SaveWithdrawal", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestCreateWithdrawal_ExceedsBalance() {
	ctx := context.Background()
	req := dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(600), Destination: "bank-account-42"}

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(&suite.campaign, nil).Once()

	_, err := suite.service.CreateWithdrawal(ctx, suite.campaign.CampaignID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "SaveWithdrawal", mock.Anything, mock.Anything)
}

// --- DecideWithdrawal ---

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_Approve_Success() {
	ctx := context.Background()
	withdrawal := suite.pendingWithdrawal(200)
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionApprove, Note: "looks good"}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(&suite.campaign, nil).Once()
	suite.mockWithdrawalRepo.On("UpdateWithdrawalDecision", ctx, withdrawal.WithdrawalID, domain.WithdrawalApproved, "looks good", suite.deciderID, suite.now).Return(nil).Once()
	suite.mockCampaignRepo.On("ApplyWithdrawalApproval", ctx, suite.campaign.CampaignID, decimal.NewFromInt(200), suite.now).Return(nil).Once()
	suite.mockNotifier.On("WithdrawalApproved", ctx, mock.AnythingOfType("domain.WithdrawalRequest")).Return().Once()

	decided, err := suite.service.DecideWithdrawal(ctx, withdrawal.WithdrawalID, req, suite.deciderID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalApproved, decided.Status)
	suite.Equal("looks good", decided.DecisionNote)
	suite.Require().NotNil(decided.DecidedAt)
	suite.Equal(suite.now, *decided.DecidedAt)
	suite.Equal(suite.deciderID, decided.DecidedBy)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
	suite.mockCampaignRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_Approve_BalanceShrank_StaysPending() {
	ctx := context.Background()
	withdrawal := suite.pendingWithdrawal(200)
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionApprove}

	// Donation reversals drained the balance below the requested amount
	// after the request was created.
	drained := suite.campaign
	drained.CurrentAmount = decimal.NewFromInt(150)

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(&drained, nil).Once()

	_, err := suite.service.DecideWithdrawal(ctx, withdrawal.WithdrawalID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	// The request must remain PENDING for operator retry or rejection.
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "UpdateWithdrawalDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "ApplyWithdrawalApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_Reject_NoAggregateEffect() {
	ctx := context.Background()
	withdrawal := suite.pendingWithdrawal(200)
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionReject, Note: "unverified destination"}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()
	suite.mockWithdrawalRepo.On("UpdateWithdrawalDecision", ctx, withdrawal.WithdrawalID, domain.WithdrawalRejected, "unverified destination", suite.deciderID, suite.now).Return(nil).Once()
	suite.mockNotifier.On("WithdrawalRejected", ctx, mock.AnythingOfType("domain.WithdrawalRequest")).Return().Once()

	decided, err := suite.service.DecideWithdrawal(ctx, withdrawal.WithdrawalID, req, suite.deciderID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalRejected, decided.Status)
	// Rejection never re-checks the balance and never touches the aggregates.
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "FindCampaignByID", mock.Anything, mock.Anything)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "ApplyWithdrawalApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_AlreadyDecided() {
	ctx := context.Background()
	withdrawal := suite.pendingWithdrawal(200)
	withdrawal.Status = domain.WithdrawalApproved
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionReject}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()

	_, err := suite.service.DecideWithdrawal(ctx, withdrawal.WithdrawalID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	suite.mockWithdrawalRepo.AssertNotCalled(suite.T(), "UpdateWithdrawalDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_LostDecisionRace() {
	ctx := context.Background()
	withdrawal := suite.pendingWithdrawal(200)
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionApprove}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(&suite.campaign, nil).Once()
	// Another operator decided between our read and the conditional update.
	suite.mockWithdrawalRepo.On("UpdateWithdrawalDecision", ctx, withdrawal.WithdrawalID, domain.WithdrawalApproved, "", suite.deciderID, suite.now).Return(apperrors.ErrAlreadyProcessed).Once()

	_, err := suite.service.DecideWithdrawal(ctx, withdrawal.WithdrawalID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	// The loser must not apply the aggregate effect.
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "ApplyWithdrawalApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestDecideWithdrawal_NotFound() {
	ctx := context.Background()
	withdrawalID := uuid.NewString()
	req := dto.DecideWithdrawalRequest{Decision: domain.DecisionApprove}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.DecideWithdrawal(ctx, withdrawalID, req, suite.deciderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestWithdrawalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
