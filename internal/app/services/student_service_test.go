package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
)

func TestUpdateStudentRejectsAmountEdits(t *testing.T) {
	svc := NewStudentService(nil, nil, nil, nil, zerolog.Nop())

	amount := int64(9999)
	target := int64(10000)

	tests := []struct {
		name string
		req  dto.UpdateStudentRequest
	}{
		{"amountPaid in body", dto.UpdateStudentRequest{Name: "Asha Rao", AmountPaid: &amount}},
		{"target in body", dto.UpdateStudentRequest{Name: "Asha Rao", Target: &target}},
		{"both in body", dto.UpdateStudentRequest{AmountPaid: &amount, Target: &target}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateStudent(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrAmountChangeForbidden)
		})
	}
}

func TestUpdateStudentRequiresID(t *testing.T) {
	svc := NewStudentService(nil, nil, nil, nil, zerolog.Nop())

	_, err := svc.UpdateStudent(context.Background(), 0, dto.UpdateStudentRequest{Name: "Asha Rao"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
