package mapping

import (
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/models"
)

// ToModelDonation converts a domain Donation to a model Donation
func ToModelDonation(d domain.Donation) models.Donation {
	return models.Donation{
		DonationID:  d.DonationID,
		CampaignID:  d.CampaignID,
		DonorID:     d.DonorID,
		Amount:      d.Amount,
		Status:      models.DonationStatus(d.Status),
		Message:     d.Message,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDonation converts a model Donation to a domain Donation
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		DonationID:  m.DonationID,
		CampaignID:  m.CampaignID,
		DonorID:     m.DonorID,
		Amount:      m.Amount,
		Status:      domain.DonationStatus(m.Status),
		Message:     m.Message,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
