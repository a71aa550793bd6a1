package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
)

type stubReconciliationService struct {
	submitReq     dto.SubmitContributionRequest
	submitResult  *services.SubmissionResult
	submitErr     error
	paymentResult *services.PaymentResult
	paymentErr    error
}

func (s *stubReconciliationService) SubmitContribution(_ context.Context, req dto.SubmitContributionRequest) (*services.SubmissionResult, error) {
	s.submitReq = req
	return s.submitResult, s.submitErr
}

func (s *stubReconciliationService) RecordPayment(_ context.Context, _, _ int64) (*services.PaymentResult, error) {
	return s.paymentResult, s.paymentErr
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestSubmitContribution(t *testing.T) {
	t.Run("created student", func(t *testing.T) {
		stub := &stubReconciliationService{
			submitResult: &services.SubmissionResult{
				Student: &models.Student{ID: 7, Name: "Priya Sharma", DepartmentID: 2, AmountPaid: 1500},
				Created: true,
			},
		}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.SubmitContribution, "/contributions", dto.SubmitContributionRequest{
			Name:         "Priya Sharma",
			DepartmentID: 2,
			AmountPaid:   1500,
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(2), stub.submitReq.DepartmentID)

		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, true, data["created"])
		assert.Equal(t, "Priya Sharma", data["student"].(map[string]any)["name"])
	})

	t.Run("match pauses for confirmation", func(t *testing.T) {
		stub := &stubReconciliationService{
			submitResult: &services.SubmissionResult{
				RequiresConfirmation: true,
				Message:              `Student "Priya Sharma" already exists in this department.`,
				ExistingStudent:      &models.Student{ID: 7, Name: "Priya Sharma"},
			},
		}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.SubmitContribution, "/contributions", dto.SubmitContributionRequest{
			Name:         "Priya Sharma",
			DepartmentID: 2,
			AmountPaid:   500,
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, true, data["requiresConfirmation"])
		assert.NotNil(t, data["existingStudent"])
	})

	t.Run("missing fields rejected before the service runs", func(t *testing.T) {
		stub := &stubReconciliationService{}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.SubmitContribution, "/contributions", map[string]any{
			"amountPaid": 100,
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, string(dto.ErrorCodeValidationFailed), envelope["error"].(map[string]any)["code"])
		assert.Empty(t, stub.submitReq.Name)
	})

	t.Run("admission number conflict maps to 409", func(t *testing.T) {
		stub := &stubReconciliationService{
			submitErr: apperrors.NewCustomError(apperrors.ErrAdmissionNumberTaken, "taken"),
		}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.SubmitContribution, "/contributions", dto.SubmitContributionRequest{
			Name:            "Priya Sharma",
			AdmissionNumber: "ADM-42",
			DepartmentID:    2,
			Action:          dto.ActionCreate,
		})

		require.Equal(t, http.StatusConflict, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, string(dto.ErrorCodeResourceAlreadyExists), envelope["error"].(map[string]any)["code"])
	})

	t.Run("unknown department maps to 404", func(t *testing.T) {
		stub := &stubReconciliationService{submitErr: apperrors.ErrDepartmentNotFound}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.SubmitContribution, "/contributions", dto.SubmitContributionRequest{
			Name:         "Priya Sharma",
			DepartmentID: 99,
		})

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("reports the new total", func(t *testing.T) {
		stub := &stubReconciliationService{
			paymentResult: &services.PaymentResult{
				PreviousAmount: 2000,
				AddedAmount:    1500,
				NewTotal:       3500,
				Status:         models.StatusPartial,
			},
		}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.RecordPayment, "/admin/payments", dto.UpdatePaymentRequest{
			StudentID: 7,
			Amount:    1500,
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, float64(3500), data["newTotal"])
		assert.Equal(t, string(models.StatusPartial), data["status"])
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		stub := &stubReconciliationService{}
		controller := NewContributionController(stub)

		recorder := postJSON(t, controller.RecordPayment, "/admin/payments", map[string]any{
			"studentId": 7,
			"amount":    0,
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
