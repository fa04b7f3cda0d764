package services

import (
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. All four ledger write paths share the single
// aggregate mutator.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.Notifier, clock portssvc.Clock) *portssvc.ServiceContainer {
	mutator := NewLedgerService(repos.CampaignRepo, clock)

	return &portssvc.ServiceContainer{
		Campaign:       NewCampaignService(repos.CampaignRepo, clock),
		Donation:       NewDonationService(repos.DonationRepo, repos.CampaignRepo, mutator, notifier, clock),
		Withdrawal:     NewWithdrawalService(repos.WithdrawalRepo, repos.CampaignRepo, mutator, notifier, clock),
		Reconciliation: NewReconciliationService(repos.CampaignRepo, clock),
		Lifecycle:      NewLifecycleService(repos.CampaignRepo, notifier, clock),
	}
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.CampaignSvcFacade       = (*campaignService)(nil)
	_ portssvc.DonationSvcFacade       = (*donationService)(nil)
	_ portssvc.WithdrawalSvcFacade     = (*withdrawalService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.LifecycleSvcFacade      = (*lifecycleService)(nil)
)
