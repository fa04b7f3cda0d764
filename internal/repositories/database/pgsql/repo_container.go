package pgsql

import (
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CampaignRepo:   newPgxCampaignRepository(dbPool),
		DonationRepo:   newPgxDonationRepository(dbPool),
		WithdrawalRepo: newPgxWithdrawalRepository(dbPool),
	}
}
