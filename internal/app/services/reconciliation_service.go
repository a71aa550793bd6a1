package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/kiranraj/fundsphere/internal/db"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MatchType records how a submission was matched to an existing student
type MatchType string

const (
	MatchNone MatchType = ""
	MatchID   MatchType = "ID"
	MatchName MatchType = "NAME"
)

// submissionOutcome is the resolution of a submission against a match
type submissionOutcome int

const (
	outcomeCreate   submissionOutcome = iota // insert a new student
	outcomeUpdate                            // apply payment to the matched student
	outcomeConfirm                           // pause, caller must confirm
	outcomeConflict                          // admission number already taken
)

// resolveSubmission decides what a submission does given how it matched.
// Matching by admission number blocks an explicit create; a name match does
// not, so deliberate same-name duplicates stay possible. Without an explicit
// action or force, any match pauses for confirmation.
func resolveSubmission(matchType MatchType, action string, force bool) submissionOutcome {
	if matchType == MatchNone {
		return outcomeCreate
	}

	if action == dto.ActionCreate {
		if matchType == MatchID {
			return outcomeConflict
		}
		return outcomeCreate
	}

	if action == dto.ActionUpdate || force {
		return outcomeUpdate
	}

	return outcomeConfirm
}

// normalizeName trims and case-folds a name for fuzzy matching
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SubmissionResult is the outcome of a contribution submission. Either
// RequiresConfirmation is set and nothing was written, or Student holds the
// created/updated row.
type SubmissionResult struct {
	Student              *models.Student
	Created              bool
	RequiresConfirmation bool
	Message              string
	ExistingStudent      *models.Student
}

// PaymentResult reports a direct ledger append against a known student
type PaymentResult struct {
	PreviousAmount int64
	AddedAmount    int64
	NewTotal       int64
	Status         models.Status
}

// ReconciliationService matches incoming contributions to students and keeps
// the ledger consistent with each student's running total
type ReconciliationService interface {
	SubmitContribution(ctx context.Context, req dto.SubmitContributionRequest) (*SubmissionResult, error)
	RecordPayment(ctx context.Context, studentID, amount int64) (*PaymentResult, error)
}

// reconciliationServiceImpl implements the ReconciliationService interface
type reconciliationServiceImpl struct {
	database         *db.PostgresDB
	studentRepo      *repositories.StudentRepository
	contributionRepo *repositories.ContributionRepository
	departmentRepo   *repositories.DepartmentRepository
	studentTarget    int64
	logger           zerolog.Logger
}

// NewReconciliationService creates a new reconciliation service instance
func NewReconciliationService(
	database *db.PostgresDB,
	studentRepo *repositories.StudentRepository,
	contributionRepo *repositories.ContributionRepository,
	departmentRepo *repositories.DepartmentRepository,
	studentTarget int64,
	logger zerolog.Logger,
) ReconciliationService {
	if studentTarget <= 0 {
		studentTarget = models.DefaultStudentTarget
	}
	return &reconciliationServiceImpl{
		database:         database,
		studentRepo:      studentRepo,
		contributionRepo: contributionRepo,
		departmentRepo:   departmentRepo,
		studentTarget:    studentTarget,
		logger:           logger,
	}
}

// SubmitContribution classifies a submission as create/update/conflict and
// applies it. The whole read-decide-write sequence runs in one transaction;
// an advisory lock keyed on (department, normalized name) serializes
// concurrent submissions for the same prospective student so at most one row
// is created, without forbidding deliberate duplicates.
func (s *reconciliationServiceImpl) SubmitContribution(ctx context.Context, req dto.SubmitContributionRequest) (*SubmissionResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Missing required fields: name, departmentId, or amountPaid")
	}
	if req.DepartmentID <= 0 {
		return nil, apperrors.NewValidationError("Missing required fields: name, departmentId, or amountPaid")
	}
	if req.AmountPaid < 0 {
		return nil, apperrors.NewValidationError("amountPaid cannot be negative")
	}
	if req.Action != "" && req.Action != dto.ActionCreate && req.Action != dto.ActionUpdate {
		return nil, apperrors.NewValidationError("action must be 'create' or 'update'")
	}

	admissionNumber := strings.TrimSpace(req.AdmissionNumber)
	normalized := normalizeName(name)

	var result *SubmissionResult
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lockKey := fmt.Sprintf("%d:%s", req.DepartmentID, normalized)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return fmt.Errorf("error acquiring submission lock: %w", err)
		}

		exists, err := s.departmentRepo.Exists(ctx, tx, req.DepartmentID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrDepartmentNotFound
		}

		existing, matchType, err := s.findMatch(ctx, tx, req.DepartmentID, admissionNumber, normalized)
		if err != nil {
			return err
		}

		switch resolveSubmission(matchType, req.Action, req.Force) {
		case outcomeConflict:
			return apperrors.NewCustomError(apperrors.ErrAdmissionNumberTaken,
				fmt.Sprintf("Student with admission number %q already exists.", admissionNumber))

		case outcomeConfirm:
			result = &SubmissionResult{
				RequiresConfirmation: true,
				Message:              fmt.Sprintf("Student %q already exists in this department.", existing.Name),
				ExistingStudent:      existing,
			}
			return nil

		case outcomeUpdate:
			updated, err := s.applyPayment(ctx, tx, existing, req.AmountPaid, admissionNumber)
			if err != nil {
				return err
			}
			result = &SubmissionResult{Student: updated}
			return nil

		default: // outcomeCreate
			created, err := s.createStudent(ctx, tx, name, admissionNumber, req.DepartmentID, req.AmountPaid)
			if err != nil {
				return err
			}
			result = &SubmissionResult{Student: created, Created: true}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	if result.RequiresConfirmation {
		s.logger.Debug().Str("name", name).Int64("departmentId", req.DepartmentID).
			Msg("Submission paused for confirmation")
	} else {
		s.logger.Info().Int64("studentId", result.Student.ID).Bool("created", result.Created).
			Int64("amount", req.AmountPaid).Msg("Contribution recorded")
	}

	return result, nil
}

// findMatch applies the matching precedence: exact admission number first,
// then trimmed/case-folded name equality inside the department.
func (s *reconciliationServiceImpl) findMatch(ctx context.Context, q repositories.Querier, departmentID int64, admissionNumber, normalizedName string) (*models.Student, MatchType, error) {
	if admissionNumber != "" {
		student, err := s.studentRepo.GetByAdmissionNumber(ctx, q, admissionNumber)
		if err != nil {
			return nil, MatchNone, err
		}
		if student != nil {
			return student, MatchID, nil
		}
	}

	student, err := s.studentRepo.FindByNormalizedName(ctx, q, departmentID, normalizedName)
	if err != nil {
		return nil, MatchNone, err
	}
	if student != nil {
		return student, MatchName, nil
	}

	return nil, MatchNone, nil
}

// applyPayment adds the submitted amount to the matched student's running
// total and appends the raw amount to the ledger. The admission number is
// backfilled only when the existing row lacks one.
func (s *reconciliationServiceImpl) applyPayment(ctx context.Context, tx pgx.Tx, existing *models.Student, amount int64, admissionNumber string) (*models.Student, error) {
	newAmount := existing.AmountPaid + amount
	status := models.DeriveStatus(newAmount, existing.Target)

	var backfill *string
	if admissionNumber != "" {
		backfill = &admissionNumber
	}

	updated, err := s.studentRepo.ApplyPayment(ctx, tx, existing.ID, newAmount, status, backfill)
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		contribution := &models.Contribution{Amount: amount, StudentID: updated.ID}
		if err := s.contributionRepo.Create(ctx, tx, contribution); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

func (s *reconciliationServiceImpl) createStudent(ctx context.Context, tx pgx.Tx, name, admissionNumber string, departmentID, amountPaid int64) (*models.Student, error) {
	student := &models.Student{
		Name:         name,
		DepartmentID: departmentID,
		AmountPaid:   amountPaid,
		Target:       s.studentTarget,
		Status:       models.DeriveStatus(amountPaid, s.studentTarget),
	}
	if admissionNumber != "" {
		student.AdmissionNumber = &admissionNumber
	}

	if err := s.studentRepo.Create(ctx, tx, student); err != nil {
		if errors.Is(err, apperrors.ErrAdmissionNumberTaken) {
			return nil, apperrors.NewCustomError(apperrors.ErrAdmissionNumberTaken,
				fmt.Sprintf("Admission number %q is already in use.", admissionNumber))
		}
		return nil, err
	}

	if amountPaid > 0 {
		contribution := &models.Contribution{Amount: amountPaid, StudentID: student.ID}
		if err := s.contributionRepo.Create(ctx, tx, contribution); err != nil {
			return nil, err
		}
	}

	return student, nil
}

// RecordPayment appends an amount to a known student's ledger and moves the
// running total, in one transaction. Amounts are strictly positive here;
// corrections are not a thing this system does.
func (s *reconciliationServiceImpl) RecordPayment(ctx context.Context, studentID, amount int64) (*PaymentResult, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("Student ID is required")
	}
	if amount <= 0 {
		return nil, apperrors.ErrAmountNotPositive
	}

	var result *PaymentResult
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		student, err := s.studentRepo.GetByIDForUpdate(ctx, tx, studentID)
		if err != nil {
			return err
		}

		newTotal := student.AmountPaid + amount
		status := models.DeriveStatus(newTotal, student.Target)

		updated, err := s.studentRepo.ApplyPayment(ctx, tx, student.ID, newTotal, status, nil)
		if err != nil {
			return err
		}

		contribution := &models.Contribution{Amount: amount, StudentID: student.ID}
		if err := s.contributionRepo.Create(ctx, tx, contribution); err != nil {
			return err
		}

		result = &PaymentResult{
			PreviousAmount: student.AmountPaid,
			AddedAmount:    amount,
			NewTotal:       updated.AmountPaid,
			Status:         updated.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Int64("amount", amount).
		Int64("newTotal", result.NewTotal).Msg("Payment recorded")

	return result, nil
}
