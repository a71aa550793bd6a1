package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/kiranraj/fundsphere/internal/app/models"
	appRepos "github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// defaultDepartments are created on a fresh database so the submission form
// has something to point at before an admin sets up the real list.
var defaultDepartments = []string{
	"Computer Science",
	"Mechanical Engineering",
	"Civil Engineering",
	"Electronics",
	"Business Administration",
}

// CreateDefaultData creates the default departments if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default departments...")
	var finalErr error

	for _, name := range defaultDepartments {
		department := &appModels.Department{Name: name}
		err := departmentRepo.Create(ctx, department)
		if err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
