package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/kiranraj/fundsphere/internal/db"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DepartmentService defines the interface for department-related operations.
// Reads with derived progress live on AggregationService; this service only
// owns the mutations.
type DepartmentService interface {
	CreateDepartment(ctx context.Context, name string) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

// departmentServiceImpl implements the DepartmentService interface
type departmentServiceImpl struct {
	database       *db.PostgresDB
	departmentRepo *repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(database *db.PostgresDB, departmentRepo *repositories.DepartmentRepository, logger zerolog.Logger) DepartmentService {
	return &departmentServiceImpl{
		database:       database,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateDepartment creates a new department with a trimmed, unique name
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Department name is required")
	}

	department := &models.Department{Name: name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("departmentId", department.ID).Str("name", name).Msg("Department created")
	return department, nil
}

// DeleteDepartment removes a department and everything it owns. The cascade
// (contributions, then students, then the department) runs in one transaction
// so a failure leaves nothing half-deleted.
func (s *departmentServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("Department ID must be a positive number")
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.departmentRepo.DeleteCascade(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("departmentId", id).Msg("Department deleted with its students and contributions")
	return nil
}
