package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranraj/fundsphere/internal/app/models"
)

// ContributionRepository handles database operations for the payment ledger
type ContributionRepository struct {
	db *pgxpool.Pool
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{
		db: db,
	}
}

// Create appends a ledger row. The amount is the raw payment, never a total.
func (r *ContributionRepository) Create(ctx context.Context, q Querier, contribution *models.Contribution) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO contributions (amount, student_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, contribution.Amount, contribution.StudentID).
		Scan(&contribution.ID, &contribution.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating contribution: %w", err)
	}

	return nil
}

// DailyTotal is the summed contribution amount for one UTC calendar day
type DailyTotal struct {
	Day   time.Time
	Total int64
}

// DailyTotals sums contributions per UTC day from the given instant onward.
// Days without contributions produce no row; callers zero-fill.
func (r *ContributionRepository) DailyTotals(ctx context.Context, since time.Time) ([]DailyTotal, error) {
	query := `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
		       SUM(amount) AS total
		FROM contributions
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var dt DailyTotal
		if err := rows.Scan(&dt.Day, &dt.Total); err != nil {
			return nil, err
		}
		totals = append(totals, dt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// DeleteByStudentIDs removes ledger rows for the given students inside the
// caller's transaction
func (r *ContributionRepository) DeleteByStudentIDs(ctx context.Context, tx pgx.Tx, ids []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM contributions WHERE student_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("error deleting contributions: %w", err)
	}
	return nil
}

// DeleteAll removes every ledger row inside the caller's transaction
func (r *ContributionRepository) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM contributions`); err != nil {
		return fmt.Errorf("error deleting contributions: %w", err)
	}
	return nil
}
