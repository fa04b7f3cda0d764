package mapping

import (
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/models"
)

// ToModelWithdrawal converts a domain WithdrawalRequest to its model form
func ToModelWithdrawal(d domain.WithdrawalRequest) models.WithdrawalRequest {
	return models.WithdrawalRequest{
		WithdrawalID: d.WithdrawalID,
		CampaignID:   d.CampaignID,
		Destination:  d.Destination,
		Amount:       d.Amount,
		Status:       models.WithdrawalStatus(d.Status),
		DecisionNote: d.DecisionNote,
		DecidedAt:    d.DecidedAt,
		DecidedBy:    d.DecidedBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawal converts a model WithdrawalRequest to its domain form
func ToDomainWithdrawal(m models.WithdrawalRequest) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		WithdrawalID: m.WithdrawalID,
		CampaignID:   m.CampaignID,
		Destination:  m.Destination,
		Amount:       m.Amount,
		Status:       domain.WithdrawalStatus(m.Status),
		DecisionNote: m.DecisionNote,
		DecidedAt:    m.DecidedAt,
		DecidedBy:    m.DecidedBy,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
