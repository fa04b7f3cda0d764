package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/dto"
	"github.com/fundnest/crowdfund_backend/internal/handlers"
	"github.com/fundnest/crowdfund_backend/internal/platform/config"
)

// --- Mock CampaignService ---

type MockCampaignService struct {
	mock.Mock
}

var _ portssvc.CampaignSvcFacade = (*MockCampaignService)(nil)

func (m *MockCampaignService) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorID string) (*domain.Campaign, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignService) GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignService) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

// --- Mock DonationService ---

type MockDonationService struct {
	mock.Mock
}

var _ portssvc.DonationSvcFacade = (*MockDonationService)(nil)

func (m *MockDonationService) CreateDonation(ctx context.Context, campaignID string, req dto.CreateDonationRequest, donorID string) (*domain.Donation, error) {
	args := m.Called(ctx, campaignID, req, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) TransitionDonation(ctx context.Context, donationID string, target domain.DonationStatus, userID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID, target, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) PendingDonationsTotal(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock WithdrawalService ---

type MockWithdrawalService struct {
	mock.Mock
}

var _ portssvc.WithdrawalSvcFacade = (*MockWithdrawalService)(nil)

func (m *MockWithdrawalService) CreateWithdrawal(ctx context.Context, campaignID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, campaignID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalService) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalService) DecideWithdrawal(ctx context.Context, withdrawalID string, req dto.DecideWithdrawalRequest, deciderID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, withdrawalID, req, deciderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

// --- Mock ReconciliationService ---

type MockReconciliationService struct {
	mock.Mock
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

func (m *MockReconciliationService) RecomputeCurrentAmount(ctx context.Context, campaignID string) (*domain.RecomputeResult, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeResult), args.Error(1)
}

func (m *MockReconciliationService) RecomputeTotalRaised(ctx context.Context, campaignID string) (*domain.RecomputeResult, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeResult), args.Error(1)
}

func (m *MockReconciliationService) RecomputeAll(ctx context.Context) ([]domain.CampaignRecomputeResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CampaignRecomputeResult), args.Error(1)
}

// --- Mock LifecycleService ---

type MockLifecycleService struct {
	mock.Mock
}

var _ portssvc.LifecycleSvcFacade = (*MockLifecycleService)(nil)

func (m *MockLifecycleService) RunLifecycleSweep(ctx context.Context) (*domain.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

// --- Test Suite Setup ---

type DonationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockDonationService   *MockDonationService
	mockLifecycleService  *MockLifecycleService
	mockReconcilerService *MockReconciliationService
	userID                string
}

func (suite *DonationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockDonationService = new(MockDonationService)
	suite.mockLifecycleService = new(MockLifecycleService)
	suite.mockReconcilerService = new(MockReconciliationService)
	suite.userID = uuid.NewString()

	container := &portssvc.ServiceContainer{
		Campaign:       new(MockCampaignService),
		Donation:       suite.mockDonationService,
		Withdrawal:     new(MockWithdrawalService),
		Reconciliation: suite.mockReconcilerService,
		Lifecycle:      suite.mockLifecycleService,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, container, nil)
}

func (suite *DonationHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", suite.userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *DonationHandlerTestSuite) TestTransitionDonation_Success() {
	donationID := uuid.NewString()
	donation := &domain.Donation{
		DonationID: donationID,
		CampaignID: uuid.NewString(),
		Amount:     decimal.NewFromInt(50),
		Status:     domain.DonationCompleted,
	}

	suite.mockDonationService.On("TransitionDonation", mock.Anything, donationID, domain.DonationCompleted, suite.userID).Return(donation, nil).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/donations/%s/transition", donationID), gin.H{"status": "COMPLETED"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DonationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(donationID, resp.DonationID)
	suite.Equal(domain.DonationCompleted, resp.Status)
	suite.mockDonationService.AssertExpectations(suite.T())
}

func (suite *DonationHandlerTestSuite) TestTransitionDonation_InvalidStatusRejectedByBinding() {
	// PENDING is not an allowed target; binding rejects it before the service.
	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/donations/%s/transition", uuid.NewString()), gin.H{"status": "PENDING"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDonationService.AssertNotCalled(suite.T(), "TransitionDonation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DonationHandlerTestSuite) TestTransitionDonation_NotFound() {
	donationID := uuid.NewString()

	suite.mockDonationService.On("TransitionDonation", mock.Anything, donationID, domain.DonationFailed, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/donations/%s/transition", donationID), gin.H{"status": "FAILED"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DonationHandlerTestSuite) TestTransitionDonation_Conflict() {
	donationID := uuid.NewString()

	suite.mockDonationService.On("TransitionDonation", mock.Anything, donationID, domain.DonationCompleted, suite.userID).Return(nil, apperrors.ErrAlreadyProcessed).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/donations/%s/transition", donationID), gin.H{"status": "COMPLETED"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *DonationHandlerTestSuite) TestRunSweep_Success() {
	result := &domain.SweepResult{
		GoalReached: []string{uuid.NewString()},
		Expired:     []string{uuid.NewString(), uuid.NewString()},
	}

	suite.mockLifecycleService.On("RunLifecycleSweep", mock.Anything).Return(result, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/sweep", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SweepResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Transitioned)
	suite.Len(resp.GoalReached, 1)
	suite.Len(resp.Expired, 2)
}

func (suite *DonationHandlerTestSuite) TestReconcileCampaign_NotFound() {
	campaignID := uuid.NewString()

	suite.mockReconcilerService.On("RecomputeCurrentAmount", mock.Anything, campaignID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%s/reconcile", campaignID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockReconcilerService.AssertNotCalled(suite.T(), "RecomputeTotalRaised", mock.Anything, mock.Anything)
}

func TestDonationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerTestSuite))
}
