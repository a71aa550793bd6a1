package dto

import "github.com/kiranraj/fundsphere/internal/app/models"

// TopStudent is one leaderboard entry. Same-named students within a
// department are folded into a single entry with their amounts summed.
type TopStudent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	Department string `json:"department"`
}

// DailyStat is one calendar-day bucket of contribution totals
type DailyStat struct {
	Day    string `json:"day"`  // weekday label, Sun..Sat
	Date   string `json:"date"` // ISO date, useful for unique keys
	Amount int64  `json:"amount"`
}

// StatsResponse is the payload of GET /dashboard/stats
type StatsResponse struct {
	TotalCollected int64        `json:"totalCollected"`
	Goal           int64        `json:"goal"`
	TopStudents    []TopStudent `json:"topStudents"`
	DailyStats     []DailyStat  `json:"dailyStats"`
}

// DepartmentProgress summarizes one department's fundraising standing
type DepartmentProgress struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	TotalCollected int64   `json:"totalCollected"`
	Target         int64   `json:"target"`
	Percentage     float64 `json:"percentage"`
	StudentCount   int     `json:"studentCount"`
}

// DashboardResponse is the payload of GET /dashboard
type DashboardResponse struct {
	Stats       StatsResponse        `json:"stats"`
	Departments []DepartmentProgress `json:"departments"`
	Students    []*models.Student    `json:"students"` // most recently updated
}

// ClubTier is the cosmetic milestone classification of a funding percentage
type ClubTier struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DepartmentDetailResponse is the payload of GET /departments/:id
type DepartmentDetailResponse struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Students          []*models.Student `json:"students"`
	TotalCollected    int64             `json:"totalCollected"`
	Target            int64             `json:"target"`
	Remaining         int64             `json:"remaining"`
	Percentage        float64           `json:"percentage"`
	ParticipationRate float64           `json:"participationRate"`
	Club              ClubTier          `json:"club"`
}
