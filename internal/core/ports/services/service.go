package services

// ServiceContainer holds every service facade the handlers and the scheduler
// depend on.
type ServiceContainer struct {
	Campaign       CampaignSvcFacade
	Donation       DonationSvcFacade
	Withdrawal     WithdrawalSvcFacade
	Reconciliation ReconciliationSvcFacade
	Lifecycle      LifecycleSvcFacade
}
