package dto

import "github.com/kiranraj/fundsphere/internal/app/models"

// Explicit submission actions. An empty action means "check first": a match
// pauses for confirmation instead of writing.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// SubmitContributionRequest is the body of POST /contributions
type SubmitContributionRequest struct {
	Name            string `json:"name" binding:"required"`
	AdmissionNumber string `json:"admissionNumber"`
	DepartmentID    int64  `json:"departmentId" binding:"required,gt=0"`
	AmountPaid      int64  `json:"amountPaid" binding:"min=0"`
	Force           bool   `json:"force"`
	Action          string `json:"action" binding:"omitempty,oneof=create update"`
}

// SubmissionResponse is returned for a successful create/update submission
type SubmissionResponse struct {
	Student *models.Student `json:"student"`
	Created bool            `json:"created"`
}

// ConfirmationResponse signals that a matching student already exists and the
// caller must resubmit with force or an explicit action. Not an error.
type ConfirmationResponse struct {
	RequiresConfirmation bool            `json:"requiresConfirmation"`
	Message              string          `json:"message"`
	ExistingStudent      *models.Student `json:"existingStudent"`
}

// UpdatePaymentRequest is the body of POST /admin/payments
type UpdatePaymentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0"`
	Amount    int64 `json:"amount" binding:"required,gt=0"`
}

// UpdatePaymentResponse reports the ledger append against a student
type UpdatePaymentResponse struct {
	Success        bool          `json:"success"`
	Message        string        `json:"message"`
	PreviousAmount int64         `json:"previousAmount"`
	AddedAmount    int64         `json:"addedAmount"`
	NewTotal       int64         `json:"newTotal"`
	Status         models.Status `json:"status"`
}
