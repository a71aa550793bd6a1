package models

// Status describes how far a student is toward their target.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPartial   Status = "PARTIAL"
	StatusCompleted Status = "COMPLETED"
)

// DeriveStatus computes a student's status from their running total.
// It is the single source of truth; the stored status column is only a
// cached projection of this function.
func DeriveStatus(amountPaid, target int64) Status {
	switch {
	case amountPaid >= target:
		return StatusCompleted
	case amountPaid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
