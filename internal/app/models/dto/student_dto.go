package dto

// UpdateStudentRequest edits a student's identity fields. The amount fields
// are bound only so a request carrying them can be rejected outright: the
// running total moves through ledger appends, never direct edits.
type UpdateStudentRequest struct {
	Name            string `json:"name"`
	AdmissionNumber string `json:"admissionNumber"`
	DepartmentID    int64  `json:"departmentId" binding:"omitempty,gt=0"`
	AmountPaid      *int64 `json:"amountPaid"`
	Target          *int64 `json:"target"`
}

// DeleteStudentsRequest deletes students by id, or all of them
type DeleteStudentsRequest struct {
	IDs       []int64 `json:"ids"`
	DeleteAll bool    `json:"deleteAll"`
}
