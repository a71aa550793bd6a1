package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid int64
		target     int64
		want       Status
	}{
		{"nothing paid", 0, 5000, StatusPending},
		{"single rupee", 1, 5000, StatusPartial},
		{"halfway", 2500, 5000, StatusPartial},
		{"one short of target", 4999, 5000, StatusPartial},
		{"exactly on target", 5000, 5000, StatusCompleted},
		{"over target", 7500, 5000, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.amountPaid, tt.target))
		})
	}
}
