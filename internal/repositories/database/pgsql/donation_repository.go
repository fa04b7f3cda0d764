package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fundnest/crowdfund_backend/internal/apperrors"
	"github.com/fundnest/crowdfund_backend/internal/core/domain"
	portsrepo "github.com/fundnest/crowdfund_backend/internal/core/ports/repositories"
	"github.com/fundnest/crowdfund_backend/internal/models"
	"github.com/fundnest/crowdfund_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDonationRepository struct {
	BaseRepository
}

// newPgxDonationRepository creates a new repository for donation data.
func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryFacade {
	return &PgxDonationRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxDonationRepository implements portsrepo.DonationRepositoryFacade
var _ portsrepo.DonationRepositoryFacade = (*PgxDonationRepository)(nil)

const donationColumns = `donation_id, campaign_id, donor_id, amount, status, message, created_at, created_by, last_updated_at, last_updated_by`

func scanDonation(row pgx.Row) (*models.Donation, error) {
	var m models.Donation
	var message sql.NullString
	err := row.Scan(
		&m.DonationID,
		&m.CampaignID,
		&m.DonorID,
		&m.Amount,
		&m.Status,
		&message,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if message.Valid {
		m.Message = message.String
	}
	return &m, nil
}

// SaveDonation inserts a new donation row.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)

	var message sql.NullString
	if m.Message != "" {
		message = sql.NullString{String: m.Message, Valid: true}
	}

	query := `
		INSERT INTO donations (donation_id, campaign_id, donor_id, amount, status, message, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DonationID,
		m.CampaignID,
		m.DonorID,
		m.Amount,
		m.Status,
		message,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation
				return fmt.Errorf("%w: donation with ID %s already exists", apperrors.ErrDuplicate, m.DonationID)
			case "23503": // Foreign key violation: campaign is gone
				return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, m.CampaignID)
			}
		}
		return fmt.Errorf("failed to save donation %s: %w", m.DonationID, err)
	}
	return nil
}

// FindDonationByID retrieves a donation by its ID.
func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE donation_id = $1;`

	m, err := scanDonation(r.Pool.QueryRow(ctx, query, donationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find donation %s: %w", donationID, err)
	}
	d := mapping.ToDomainDonation(*m)
	return &d, nil
}

// ListDonationsByCampaign retrieves a page of a campaign's donations, newest first.
func (r *PgxDonationRepository) ListDonationsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE campaign_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, campaignID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations for campaign %s: %w", campaignID, err)
	}
	defer rows.Close()

	donations := make([]domain.Donation, 0)
	for rows.Next() {
		m, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation row: %w", err)
		}
		donations = append(donations, mapping.ToDomainDonation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donation rows: %w", err)
	}
	return donations, nil
}

// SumDonationAmounts sums a campaign's donation amounts in the given status.
func (r *PgxDonationRepository) SumDonationAmounts(ctx context.Context, campaignID string, status domain.DonationStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1 AND status = $2;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, campaignID, status).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s donations for campaign %s: %w", status, campaignID, err)
	}
	return sum, nil
}

// UpdateDonationStatus moves a donation from one status to another. The
// current-status guard plus row-level atomicity ensures two callers cannot
// both win the same transition.
func (r *PgxDonationRepository) UpdateDonationStatus(ctx context.Context, donationID string, from, to domain.DonationStatus, userID string, now time.Time) error {
	query := `
		UPDATE donations
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE donation_id = $1 AND status = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, donationID, from, to, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of donation %s: %w", donationID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the donation is gone or a concurrent caller moved it
	// out of the expected status first.
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE donation_id = $1);`, donationID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of donation %s: %w", donationID, err)
	}
	if !exists {
		return fmt.Errorf("%w: donation %s", apperrors.ErrNotFound, donationID)
	}
	return fmt.Errorf("%w: donation %s is no longer %s", apperrors.ErrAlreadyProcessed, donationID, from)
}
