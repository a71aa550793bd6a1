package services

// Services defined in this package:
// - ReconciliationService: matches submissions to students and writes the ledger
// - AggregationService: read-only dashboard/statistics queries
// - DepartmentService: department admin operations
// - StudentService: student identity edits and bulk deletion
// - AuthService: panel sessions (admin/developer)
