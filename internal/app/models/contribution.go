package models

import "time"

// Contribution is one timestamped payment event in a student's ledger.
// Rows are append-only; they are removed only when their student is deleted.
type Contribution struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"` // always > 0
	StudentID int64     `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}
