package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraj/fundsphere/internal/app/models/dto"
)

func TestBindingErrorDetail(t *testing.T) {
	validate := validator.New()

	type form struct {
		Name   string `validate:"required"`
		Amount int64  `validate:"gt=0"`
	}

	t.Run("single field failure names the field", func(t *testing.T) {
		err := validate.Struct(form{Name: "ok", Amount: 0})
		require.Error(t, err)

		detail := BindingErrorDetail(err, "invalid request")

		assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
		assert.Equal(t, "Amount", detail.Field)
		assert.Equal(t, []string{"Amount must be greater than 0"}, detail.Details)
	})

	t.Run("multiple failures list every message", func(t *testing.T) {
		err := validate.Struct(form{})
		require.Error(t, err)

		detail := BindingErrorDetail(err, "invalid request")

		assert.Empty(t, detail.Field)
		assert.Equal(t, []string{
			"Name is required",
			"Amount must be greater than 0",
		}, detail.Details)
	})

	t.Run("non-validator errors keep the raw message", func(t *testing.T) {
		detail := BindingErrorDetail(errors.New("unexpected EOF"), "invalid request")

		assert.Empty(t, detail.Field)
		assert.Equal(t, "unexpected EOF", detail.Details)
	})
}
