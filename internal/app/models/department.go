package models

import "time"

// Department groups students under a shared fundraising target.
// The department target is not stored; it is derived as 5000 per student.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations (populated when needed)
	Students []*Student `json:"students,omitempty"`
}
