package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{5, "₹5"},
		{500, "₹500"},
		{5000, "₹5,000"},
		{50000, "₹50,000"},
		{500000, "₹5,00,000"},
		{1000000, "₹10,00,000"},
		{12345678, "₹1,23,45,678"},
		{-2500, "-₹2,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.amount), "amount %d", tt.amount)
	}
}
