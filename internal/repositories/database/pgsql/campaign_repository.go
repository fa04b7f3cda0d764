package pgsql

import (
	"context"
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

type PgxCampaignRepository struct {
	BaseRepository
}

// newPgxCampaignRepository creates a new repository for campaign data.
func newPgxCampaignRepository(pool *pgxpool.Pool) portsrepo.CampaignRepositoryFacade {
	return &PgxCampaignRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCampaignRepository implements portsrepo.CampaignRepositoryFacade
var _ portsrepo.CampaignRepositoryFacade = (*PgxCampaignRepository)(nil)

const campaignColumns = `campaign_id, title, description, creator_id, target_amount, current_amount, total_raised, status, deadline, created_at, created_by, last_updated_at, last_updated_by`

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var m models.Campaign
	err := row.Scan(
		&m.CampaignID,
		&m.Title,
		&m.Description,
		&m.CreatorID,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.TotalRaised,
		&m.Status,
		&m.Deadline,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCampaign inserts a new campaign.
func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)

	query := `
		INSERT INTO campaigns (campaign_id, title, description, creator_id, target_amount, current_amount, total_raised, status, deadline, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CampaignID,
		m.Title,
		m.Description,
		m.CreatorID,
		m.TargetAmount,
		m.CurrentAmount,
		m.TotalRaised,
		m.Status,
		m.Deadline,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: campaign with ID %s already exists", apperrors.ErrDuplicate, m.CampaignID)
		}
		return fmt.Errorf("failed to save campaign %s: %w", m.CampaignID, err)
	}
	return nil
}

// FindCampaignByID retrieves a campaign by its ID.
func (r *PgxCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = $1;`

	m, err := scanCampaign(r.Pool.QueryRow(ctx, query, campaignID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign %s: %w", campaignID, err)
	}
	d := mapping.ToDomainCampaign(*m)
	return &d, nil
}

// ListCampaigns retrieves a page of campaigns, newest first.
func (r *PgxCampaignRepository) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, mapping.ToDomainCampaign(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}
	return campaigns, nil
}

// ListCampaignIDs retrieves the IDs of all campaigns.
func (r *PgxCampaignRepository) ListCampaignIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT campaign_id FROM campaigns ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign IDs: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan campaign ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign ID rows: %w", err)
	}
	return ids, nil
}

// aggregateColumn maps an aggregate field to its column name. The field is a
// closed enum; anything else is a programming error.
func aggregateColumn(field domain.AggregateField) (string, error) {
	switch field {
	case domain.FieldCurrentAmount:
		return "current_amount", nil
	case domain.FieldTotalRaised:
		return "total_raised", nil
	default:
		return "", fmt.Errorf("%w: unknown aggregate field %q", apperrors.ErrValidation, field)
	}
}

// ApplyAggregateDelta atomically adds delta to one aggregate column in a
// single statement. The increment happens in the store, never in application
// memory, so concurrent donation completions for the same campaign cannot
// lose updates.
func (r *PgxCampaignRepository) ApplyAggregateDelta(ctx context.Context, campaignID string, field domain.AggregateField, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	col, err := aggregateColumn(field)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`
		UPDATE campaigns
		SET %s = COALESCE(%s, 0) + $2, last_updated_at = $3
		WHERE campaign_id = $1
		RETURNING %s;
	`, col, col, col)

	var newValue decimal.Decimal
	err = r.Pool.QueryRow(ctx, query, campaignID, delta, now).Scan(&newValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, campaignID)
		}
		return decimal.Zero, fmt.Errorf("failed to apply %s delta for campaign %s: %w", col, campaignID, err)
	}
	return newValue, nil
}

// ApplyWithdrawalApproval applies the paired aggregate effect of an approved
// withdrawal in one statement so both fields land together.
func (r *PgxCampaignRepository) ApplyWithdrawalApproval(ctx context.Context, campaignID string, amount decimal.Decimal, now time.Time) error {
	query := `
		UPDATE campaigns
		SET current_amount = COALESCE(current_amount, 0) - $2,
		    total_raised   = COALESCE(total_raised, 0) + $2,
		    last_updated_at = $3
		WHERE campaign_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, campaignID, amount, now)
	if err != nil {
		return fmt.Errorf("failed to apply withdrawal approval for campaign %s: %w", campaignID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, campaignID)
	}
	return nil
}

// RecomputeCurrentAmount overwrites current_amount from source rows inside one
// transaction. The campaign row is locked first so the previous value read and
// the overwrite are consistent with each other; the sums come from scalar
// subqueries in the UPDATE itself, so the result is consistent with some
// serializable ordering of concurrent donation/withdrawal writes.
func (r *PgxCampaignRepository) RecomputeCurrentAmount(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error) {
	return r.recomputeField(ctx, campaignID, domain.FieldCurrentAmount, now, `
		UPDATE campaigns
		SET current_amount = (
			SELECT COALESCE(SUM(amount), 0) FROM donations
			WHERE campaign_id = $1 AND status = 'COMPLETED'
		) - (
			SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests
			WHERE campaign_id = $1 AND status = 'APPROVED'
		), last_updated_at = $2
		WHERE campaign_id = $1
		RETURNING current_amount;
	`)
}

// RecomputeTotalRaised overwrites total_raised with current_amount plus the
// sum of approved withdrawals.
func (r *PgxCampaignRepository) RecomputeTotalRaised(ctx context.Context, campaignID string, now time.Time) (*domain.RecomputeResult, error) {
	return r.recomputeField(ctx, campaignID, domain.FieldTotalRaised, now, `
		UPDATE campaigns
		SET total_raised = COALESCE(current_amount, 0) + (
			SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests
			WHERE campaign_id = $1 AND status = 'APPROVED'
		), last_updated_at = $2
		WHERE campaign_id = $1
		RETURNING total_raised;
	`)
}

func (r *PgxCampaignRepository) recomputeField(ctx context.Context, campaignID string, field domain.AggregateField, now time.Time, updateQuery string) (*domain.RecomputeResult, error) {
	col, err := aggregateColumn(field)
	if err != nil {
		return nil, err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	// Lock the row and capture the pre-overwrite value.
	var previous decimal.Decimal
	lockQuery := fmt.Sprintf(`SELECT COALESCE(%s, 0) FROM campaigns WHERE campaign_id = $1 FOR UPDATE;`, col)
	if err := tx.QueryRow(ctx, lockQuery, campaignID).Scan(&previous); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, campaignID)
		}
		return nil, fmt.Errorf("failed to lock campaign %s for recompute: %w", campaignID, err)
	}

	var newValue decimal.Decimal
	if err := tx.QueryRow(ctx, updateQuery, campaignID, now).Scan(&newValue); err != nil {
		return nil, fmt.Errorf("failed to recompute %s for campaign %s: %w", col, campaignID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.RecomputeResult{
		CampaignID: campaignID,
		Field:      field,
		Previous:   previous,
		New:        newValue,
		Delta:      newValue.Sub(previous),
	}, nil
}

// CompleteWhereGoalReached transitions every ACTIVE campaign that has met its
// target. The status guard makes overlapping sweep runs harmless.
func (r *PgxCampaignRepository) CompleteWhereGoalReached(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE campaigns
		SET status = 'COMPLETED', last_updated_at = $1
		WHERE status = 'ACTIVE' AND current_amount >= target_amount
		RETURNING campaign_id;
	`
	return r.completeCampaigns(ctx, query, now)
}

// CompleteWhereExpired transitions every ACTIVE campaign whose deadline has
// passed.
func (r *PgxCampaignRepository) CompleteWhereExpired(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE campaigns
		SET status = 'COMPLETED', last_updated_at = $1
		WHERE status = 'ACTIVE' AND deadline < $1
		RETURNING campaign_id;
	`
	return r.completeCampaigns(ctx, query, now)
}

func (r *PgxCampaignRepository) completeCampaigns(ctx context.Context, query string, now time.Time) ([]string, error) {
	rows, err := r.Pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to run campaign completion scan: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan completed campaign ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completed campaign rows: %w", err)
	}
	return ids, nil
}
