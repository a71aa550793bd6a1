package models

import "time"

// DefaultStudentTarget is the per-student fundraising goal in rupees.
const DefaultStudentTarget int64 = 5000

// Student is a tracked contributor with a running total and a derived status.
// AmountPaid must always equal the sum of the student's contribution amounts.
type Student struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	AdmissionNumber *string   `json:"admissionNumber,omitempty"` // globally unique when present
	DepartmentID    int64     `json:"departmentId"`
	AmountPaid      int64     `json:"amountPaid"`
	Target          int64     `json:"target"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
