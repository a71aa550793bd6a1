package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/kiranraj/fundsphere/internal/pkg/dberrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, department.Name).Scan(&department.ID, &department.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_name_key") {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, created_at
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.CreatedAt,
	)

	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// Exists checks whether a department exists, optionally inside a transaction
func (r *DepartmentRepository) Exists(ctx context.Context, q Querier, id int64) (bool, error) {
	if q == nil {
		q = r.db
	}

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}

	return exists, nil
}

// DeleteCascade removes a department together with its students and their
// contributions. Must run inside the caller's transaction: children first,
// then the department row.
func (r *DepartmentRepository) DeleteCascade(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM contributions
		WHERE student_id IN (SELECT id FROM students WHERE department_id = $1)`, id); err != nil {
		return fmt.Errorf("error deleting department contributions: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM students WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting department students: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// DepartmentAggregate is one row of the per-department progress query
type DepartmentAggregate struct {
	ID             int64
	Name           string
	StudentCount   int64
	TotalCollected int64
}

// Aggregate sums each department's student count and collected total.
// Departments without students report zeros.
func (r *DepartmentRepository) Aggregate(ctx context.Context) ([]DepartmentAggregate, error) {
	query := `
		SELECT d.id, d.name,
		       COUNT(s.id) AS student_count,
		       COALESCE(SUM(s.amount_paid), 0) AS total_collected
		FROM departments d
		LEFT JOIN students s ON s.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []DepartmentAggregate
	for rows.Next() {
		var agg DepartmentAggregate
		if err := rows.Scan(
			&agg.ID,
			&agg.Name,
			&agg.StudentCount,
			&agg.TotalCollected,
		); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return aggregates, nil
}
