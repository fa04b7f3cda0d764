package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// --- Mock CampaignRepository ---

type MockCampaignRepository struct {
	mock.Mock
}

// Ensure MockCampaignRepository implements portsrepo.CampaignRepositoryFacade
var _ portsrepo.CampaignRepositoryFacade = (*MockCampaignRepository)(nil)

func (m *MockCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListCampaignIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) ApplyAggregateDelta(ctx context.Context, campaignID string, field domain.AggregateField, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, campaignID, field, delta, now)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCampaignRepository) ApplyWithdrawalApproval(ctx context.Context, campaignID string, amount decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, campaignID, amount, now)
	return args.Error(0)
}

func (m *MockCampaignRepository) RecomputeCurrentAmount(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error) {
	args := m.Called(ctx, campaignID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeResult), args.Error(1)
}

func (m *MockCampaignRepository) RecomputeTotalRaised(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error) {
	args := m.Called(ctx, campaignID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeResult), args.Error(1)
}

func (m *MockCampaignRepository) CompleteWhereGoalReached(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCampaignRepository) CompleteWhereExpired(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock DonationRepository ---

type MockDonationRepository struct {
	mock.Mock
}

var _ portsrepo.DonationRepositoryFacade = (*MockDonationRepository)(nil)

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonationsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.Donation, error) {
	args := m.Called(ctx, campaignID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) SumDonationAmounts(ctx context.Context, campaignID string, status domain.DonationStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, campaignID, status)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) UpdateDonationStatus(ctx context.Context, donationID string, from, to domain.DonationStatus, userID string, now time.Time) error {
	args := m.Called(ctx, donationID, from, to, userID, now)
	return args.Error(0)
}

// --- Mock WithdrawalRepository ---

type MockWithdrawalRepository struct {
	mock.Mock
}

var _ portsrepo.WithdrawalRepositoryFacade = (*MockWithdrawalRepository)(nil)

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) ListWithdrawalsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.WithdrawalRequest, error) {
	args := m.Called(ctx, campaignID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) SumApprovedWithdrawals(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWithdrawalRepository) SaveWithdrawal(ctx context.Context, withdrawal domain.WithdrawalRequest) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalDecision(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, decidedBy string, now time.Time) error {
	args := m.Called(ctx, withdrawalID, status, note, decidedBy, now)
	return args.Error(0)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) DonationCompleted(ctx context.Context, donation domain.Donation) {
	m.Called(ctx, donation)
}

func (m *MockNotifier) DonationReversed(ctx context.Context, donation domain.Donation) {
	m.Called(ctx, donation)
}

func (m *MockNotifier) WithdrawalApproved(ctx context.Context, withdrawal domain.WithdrawalRequest) {
	m.Called(ctx, withdrawal)
}

func (m *MockNotifier) WithdrawalRejected(ctx context.Context, withdrawal domain.WithdrawalRequest) {
	m.Called(ctx, withdrawal)
}

func (m *MockNotifier) CampaignCompleted(ctx context.Context, campaignID string, reason domain.CompletionReason) {
	m.Called(ctx, campaignID, reason)
}

// quietNotifier accepts every event without recording expectations, for tests
// that don't care about notifications.
type quietNotifier struct{}

var _ portssvc.Notifier = (*quietNotifier)(nil)

func (quietNotifier) DonationCompleted(context.Context, domain.Donation)                {}
func (quietNotifier) DonationReversed(context.Context, domain.Donation)                 {}
func (quietNotifier) WithdrawalApproved(context.Context, domain.WithdrawalRequest)      {}
func (quietNotifier) WithdrawalRejected(context.Context, domain.WithdrawalRequest)      {}
func (quietNotifier) CampaignCompleted(context.Context, string, domain.CompletionReason) {}

// fixedClock pins Now() for deterministic deadline and audit assertions.
type fixedClock struct {
	now time.Time
}

var _ portssvc.Clock = (*fixedClock)(nil)

func (c fixedClock) Now() time.Time {
	return c.now
}
