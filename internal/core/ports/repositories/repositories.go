package repositories

// RepositoryProvider bundles every repository implementation the service
// container needs.
type RepositoryProvider struct {
	CampaignRepo   CampaignRepositoryFacade
	DonationRepo   DonationRepositoryFacade
	WithdrawalRepo WithdrawalRepositoryFacade
}
