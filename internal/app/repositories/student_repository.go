package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/kiranraj/fundsphere/internal/pkg/dberrors"
	"github.com/kiranraj/fundsphere/internal/pkg/helpers"
)

const studentColumns = `id, name, admission_number, department_id, amount_paid, target, status, created_at, updated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.AdmissionNumber,
		&student.DepartmentID,
		&student.AmountPaid,
		&student.Target,
		&student.Status,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByIDForUpdate retrieves a student by ID with a row lock, for
// read-modify-write sequences inside a transaction
func (r *StudentRepository) GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 FOR UPDATE`

	student, err := scanStudent(q.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByAdmissionNumber finds the student holding an admission number.
// Returns (nil, nil) when no student holds it.
func (r *StudentRepository) GetByAdmissionNumber(ctx context.Context, q Querier, admissionNumber string) (*models.Student, error) {
	if q == nil {
		q = r.db
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE admission_number = $1`

	student, err := scanStudent(q.QueryRow(ctx, query, admissionNumber))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by admission number: %w", err)
	}

	return student, nil
}

// FindByNormalizedName finds a student in a department whose trimmed,
// case-folded name equals the given normalized name. Returns (nil, nil)
// when there is no such student; the oldest row wins when several match.
func (r *StudentRepository) FindByNormalizedName(ctx context.Context, q Querier, departmentID int64, normalizedName string) (*models.Student, error) {
	if q == nil {
		q = r.db
	}

	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE department_id = $1 AND lower(btrim(name)) = $2
		ORDER BY id
		LIMIT 1
	`

	student, err := scanStudent(q.QueryRow(ctx, query, departmentID, normalizedName))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching students by name: %w", err)
	}

	return student, nil
}

// Create inserts a new student row
func (r *StudentRepository) Create(ctx context.Context, q Querier, student *models.Student) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO students (name, admission_number, department_id, amount_paid, target, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		student.Name,
		helpers.GetNullString(student.AdmissionNumber),
		student.DepartmentID,
		student.AmountPaid,
		student.Target,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_admission_number_key") {
			return apperrors.ErrAdmissionNumberTaken
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// ApplyPayment sets the student's new running total and status, backfilling
// the admission number only when the row does not already have one.
// Returns the updated student.
func (r *StudentRepository) ApplyPayment(ctx context.Context, q Querier, id, newAmount int64, status models.Status, admissionNumber *string) (*models.Student, error) {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE students
		SET amount_paid = $1,
		    status = $2,
		    admission_number = COALESCE(admission_number, $3),
		    updated_at = now()
		WHERE id = $4
		RETURNING ` + studentColumns

	student, err := scanStudent(q.QueryRow(ctx, query,
		newAmount, status, helpers.GetNullString(admissionNumber), id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "students_admission_number_key") {
			return nil, apperrors.ErrAdmissionNumberTaken
		}
		return nil, fmt.Errorf("error updating student amount: %w", err)
	}

	return student, nil
}

// UpdateDetails edits a student's identity fields. Empty values leave the
// current column untouched.
func (r *StudentRepository) UpdateDetails(ctx context.Context, id int64, name, admissionNumber string, departmentID int64) (*models.Student, error) {
	query := `
		UPDATE students
		SET name = COALESCE(NULLIF($1, ''), name),
		    admission_number = COALESCE(NULLIF($2, ''), admission_number),
		    department_id = CASE WHEN $3::bigint > 0 THEN $3::bigint ELSE department_id END,
		    updated_at = now()
		WHERE id = $4
		RETURNING ` + studentColumns

	student, err := scanStudent(r.db.QueryRow(ctx, query, name, admissionNumber, departmentID, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "students_admission_number_key") {
			return nil, apperrors.ErrAdmissionNumberTaken
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// GetByDepartmentID retrieves a department's students ordered by amount paid
func (r *StudentRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE department_id = $1
		ORDER BY amount_paid DESC, id
	`

	return r.queryStudents(ctx, query, departmentID)
}

// GetRecent retrieves the most recently updated students with their department
func (r *StudentRepository) GetRecent(ctx context.Context, limit int) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.name, s.admission_number, s.department_id, s.amount_paid,
		       s.target, s.status, s.created_at, s.updated_at,
		       d.id, d.name, d.created_at
		FROM students s
		JOIN departments d ON d.id = s.department_id
		ORDER BY s.updated_at DESC, s.id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var (
			student    models.Student
			department models.Department
		)
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.AdmissionNumber,
			&student.DepartmentID,
			&student.AmountPaid,
			&student.Target,
			&student.Status,
			&student.CreatedAt,
			&student.UpdatedAt,
			&department.ID,
			&department.Name,
			&department.CreatedAt,
		); err != nil {
			return nil, err
		}
		student.Department = &department
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// TopContributorRow is one leaderboard aggregate: same-named students within
// a department are folded together.
type TopContributorRow struct {
	Name           string
	DepartmentID   int64
	DepartmentName string
	Total          int64
}

// TopContributors ranks (name, department) groups by summed amount paid
func (r *StudentRepository) TopContributors(ctx context.Context, limit int) ([]TopContributorRow, error) {
	query := `
		SELECT s.name, s.department_id, d.name, SUM(s.amount_paid) AS total
		FROM students s
		JOIN departments d ON d.id = s.department_id
		GROUP BY s.name, s.department_id, d.name
		ORDER BY total DESC, s.name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopContributorRow
	for rows.Next() {
		var row TopContributorRow
		if err := rows.Scan(&row.Name, &row.DepartmentID, &row.DepartmentName, &row.Total); err != nil {
			return nil, err
		}
		top = append(top, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return top, nil
}

// TotalCollected sums every student's running total
func (r *StudentRepository) TotalCollected(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_paid), 0) FROM students`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing collected amounts: %w", err)
	}
	return total, nil
}

// DeleteByIDs removes the given students inside the caller's transaction.
// Contributions must already be gone.
func (r *StudentRepository) DeleteByIDs(ctx context.Context, tx pgx.Tx, ids []int64) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error deleting students: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteAll removes every student inside the caller's transaction
func (r *StudentRepository) DeleteAll(ctx context.Context, tx pgx.Tx) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM students`)
	if err != nil {
		return 0, fmt.Errorf("error deleting students: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
