package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/kiranraj/fundsphere/internal/db"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// StudentService handles administrative student operations: identity edits
// and bulk deletion. Amounts are out of reach here; the running total only
// moves through the reconciliation paths so the ledger stays consistent.
type StudentService interface {
	UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudents(ctx context.Context, req dto.DeleteStudentsRequest) (int64, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	database         *db.PostgresDB
	studentRepo      *repositories.StudentRepository
	contributionRepo *repositories.ContributionRepository
	departmentRepo   *repositories.DepartmentRepository
	logger           zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	database *db.PostgresDB,
	studentRepo *repositories.StudentRepository,
	contributionRepo *repositories.ContributionRepository,
	departmentRepo *repositories.DepartmentRepository,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		database:         database,
		studentRepo:      studentRepo,
		contributionRepo: contributionRepo,
		departmentRepo:   departmentRepo,
		logger:           logger,
	}
}

// UpdateStudent edits a student's identity fields. Empty fields are left
// unchanged; a new admission number must not belong to another student.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Student ID is required")
	}
	if req.AmountPaid != nil || req.Target != nil {
		return nil, apperrors.ErrAmountChangeForbidden
	}

	name := strings.TrimSpace(req.Name)
	admissionNumber := strings.TrimSpace(req.AdmissionNumber)

	if admissionNumber != "" {
		holder, err := s.studentRepo.GetByAdmissionNumber(ctx, nil, admissionNumber)
		if err != nil {
			return nil, err
		}
		if holder != nil && holder.ID != id {
			return nil, apperrors.NewCustomError(apperrors.ErrAdmissionNumberTaken,
				"Admission number "+admissionNumber+" is already in use by another student.")
		}
	}

	if req.DepartmentID > 0 {
		exists, err := s.departmentRepo.Exists(ctx, nil, req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrDepartmentNotFound
		}
	}

	student, err := s.studentRepo.UpdateDetails(ctx, id, name, admissionNumber, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", id).Msg("Student details updated")
	return student, nil
}

// DeleteStudents removes students by id, or every student when DeleteAll is
// set. Ledger rows go first, students second, in one transaction.
func (s *studentServiceImpl) DeleteStudents(ctx context.Context, req dto.DeleteStudentsRequest) (int64, error) {
	if !req.DeleteAll && len(req.IDs) == 0 {
		return 0, apperrors.NewValidationError("Invalid request. Provide 'ids' array or 'deleteAll': true")
	}

	var deleted int64
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if req.DeleteAll {
			if err := s.contributionRepo.DeleteAll(ctx, tx); err != nil {
				return err
			}
			n, err := s.studentRepo.DeleteAll(ctx, tx)
			if err != nil {
				return err
			}
			deleted = n
			return nil
		}

		if err := s.contributionRepo.DeleteByStudentIDs(ctx, tx, req.IDs); err != nil {
			return err
		}
		n, err := s.studentRepo.DeleteByIDs(ctx, tx, req.IDs)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("count", deleted).Bool("deleteAll", req.DeleteAll).Msg("Students deleted")
	return deleted, nil
}
