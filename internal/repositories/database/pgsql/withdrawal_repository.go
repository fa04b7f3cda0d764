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

type PgxWithdrawalRepository struct {
	BaseRepository
}

// newPgxWithdrawalRepository creates a new repository for withdrawal request data.
func newPgxWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxWithdrawalRepository implements portsrepo.WithdrawalRepositoryFacade
var _ portsrepo.WithdrawalRepositoryFacade = (*PgxWithdrawalRepository)(nil)

const withdrawalColumns = `withdrawal_id, campaign_id, destination, amount, status, decision_note, decided_at, decided_by, created_at, created_by, last_updated_at, last_updated_by`

func scanWithdrawal(row pgx.Row) (*models.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	var note, decidedBy sql.NullString
	var decidedAt sql.NullTime
	err := row.Scan(
		&m.WithdrawalID,
		&m.CampaignID,
		&m.Destination,
		&m.Amount,
		&m.Status,
		&note,
		&decidedAt,
		&decidedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		m.DecisionNote = note.String
	}
	if decidedBy.Valid {
		m.DecidedBy = decidedBy.String
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		m.DecidedAt = &t
	}
	return &m, nil
}

// SaveWithdrawal inserts a new withdrawal request row.
func (r *PgxWithdrawalRepository) SaveWithdrawal(ctx context.Context, withdrawal domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawal(withdrawal)

	query := `
		INSERT INTO withdrawal_requests (withdrawal_id, campaign_id, destination, amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WithdrawalID,
		m.CampaignID,
		m.Destination,
		m.Amount,
		m.Status,
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
				return fmt.Errorf("%w: withdrawal with ID %s already exists", apperrors.ErrDuplicate, m.WithdrawalID)
			case "23503": // Foreign key violation: campaign is gone
				return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, m.CampaignID)
			}
		}
		return fmt.Errorf("failed to save withdrawal %s: %w", m.WithdrawalID, err)
	}
	return nil
}

// FindWithdrawalByID retrieves a withdrawal request by its ID.
func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE withdrawal_id = $1;`

	m, err := scanWithdrawal(r.Pool.QueryRow(ctx, query, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	d := mapping.ToDomainWithdrawal(*m)
	return &d, nil
}

// ListWithdrawalsByCampaign retrieves a page of a campaign's withdrawal
// requests, newest first.
func (r *PgxWithdrawalRepository) ListWithdrawalsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE campaign_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, campaignID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals for campaign %s: %w", campaignID, err)
	}
	defer rows.Close()

	withdrawals := make([]domain.WithdrawalRequest, 0)
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		withdrawals = append(withdrawals, mapping.ToDomainWithdrawal(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating withdrawal rows: %w", err)
	}
	return withdrawals, nil
}

// SumApprovedWithdrawals sums a campaign's APPROVED withdrawal amounts.
func (r *PgxWithdrawalRepository) SumApprovedWithdrawals(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM withdrawal_requests WHERE campaign_id = $1 AND status = 'APPROVED';`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, campaignID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved withdrawals for campaign %s: %w", campaignID, err)
	}
	return sum, nil
}

// UpdateWithdrawalDecision records an operator decision. The PENDING guard
// makes approval/rejection single-shot: once a request leaves PENDING no
// further transition can land.
func (r *PgxWithdrawalRepository) UpdateWithdrawalDecision(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, decidedBy string, now time.Time) error {
	var noteVal sql.NullString
	if note != "" {
		noteVal = sql.NullString{String: note, Valid: true}
	}

	query := `
		UPDATE withdrawal_requests
		SET status = $2, decision_note = $3, decided_at = $4, decided_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE withdrawal_id = $1 AND status = 'PENDING';
	`
	ct, err := r.Pool.Exec(ctx, query, withdrawalID, status, noteVal, now, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to record decision on withdrawal %s: %w", withdrawalID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM withdrawal_requests WHERE withdrawal_id = $1);`, withdrawalID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of withdrawal %s: %w", withdrawalID, err)
	}
	if !exists {
		return fmt.Errorf("%w: withdrawal %s", apperrors.ErrNotFound, withdrawalID)
	}
	return fmt.Errorf("%w: withdrawal %s has already been decided", apperrors.ErrAlreadyProcessed, withdrawalID)
}
