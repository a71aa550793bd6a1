package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/middleware"
	"github.com/kiranraj/fundsphere/internal/pkg/helpers"
)

// ContributionController handles contribution submission and direct payments
type ContributionController struct {
	reconciliationService services.ReconciliationService
}

// NewContributionController creates a new ContributionController
func NewContributionController(reconciliationService services.ReconciliationService) *ContributionController {
	return &ContributionController{
		reconciliationService: reconciliationService,
	}
}

// SubmitContribution handles a contribution submission
// @Summary Submit a contribution
// @Description Records a contribution, matching it to an existing student by admission number or name. A match without force or an explicit action pauses for confirmation instead of writing.
// @Tags contributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitContributionRequest true "Contribution data"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Contribution recorded"
// @Success 200 {object} dto.APIResponse{data=dto.ConfirmationResponse} "Confirmation required, nothing written"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing session"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Admission number already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contributions [post]
func (c *ContributionController) SubmitContribution(ctx *gin.Context) {
	var req dto.SubmitContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.BindingErrorDetail(err, "Missing required fields: name, departmentId, or amountPaid")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.reconciliationService.SubmitContribution(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if result.RequiresConfirmation {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data: dto.ConfirmationResponse{
				RequiresConfirmation: true,
				Message:              result.Message,
				ExistingStudent:      result.ExistingStudent,
			},
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SubmissionResponse{
			Student: result.Student,
			Created: result.Created,
		},
		Timestamp: time.Now(),
	})
}

// RecordPayment appends a payment to a known student's ledger
// @Summary Record a payment for a student
// @Description Adds an amount to a student's running total and appends it to the contribution ledger
// @Tags contributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePaymentRequest true "Payment data"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatePaymentResponse} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing session"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/payments [post]
func (c *ContributionController) RecordPayment(ctx *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.BindingErrorDetail(err, "studentId and a positive amount are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.reconciliationService.RecordPayment(ctx, req.StudentID, req.Amount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.UpdatePaymentResponse{
			Success:        true,
			Message:        "Recorded " + helpers.FormatINR(result.AddedAmount) + " payment",
			PreviousAmount: result.PreviousAmount,
			AddedAmount:    result.AddedAmount,
			NewTotal:       result.NewTotal,
			Status:         result.Status,
		},
		Timestamp: time.Now(),
	})
}
