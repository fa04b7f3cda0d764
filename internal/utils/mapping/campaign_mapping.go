package mapping

import (
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	"github.com/fundnest/crowdfund_backend/internal/models"
)

// ToModelCampaign converts a domain Campaign to a model Campaign
func ToModelCampaign(d domain.Campaign) models.Campaign {
	return models.Campaign{
		CampaignID:    d.CampaignID,
		Title:         d.Title,
		Description:   d.Description,
		CreatorID:     d.CreatorID,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		TotalRaised:   d.TotalRaised,
		Status:        models.CampaignStatus(d.Status),
		Deadline:      d.Deadline,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		CampaignID:    m.CampaignID,
		Title:         m.Title,
		Description:   m.Description,
		CreatorID:     m.CreatorID,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TotalRaised:   m.TotalRaised,
		Status:        domain.CampaignStatus(m.Status),
		Deadline:      m.Deadline,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
