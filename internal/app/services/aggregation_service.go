package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kiranraj/fundsphere/internal/app/models"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/kiranraj/fundsphere/internal/pkg/helpers"
)

const (
	topStudentsLimit    = 5
	recentStudentsLimit = 10
	dailySeriesDays     = 7
)

// AggregationService folds the ledger and student totals into dashboard
// views. Every method is read-only and total over an empty database.
type AggregationService interface {
	TotalCollected(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	DepartmentProgress(ctx context.Context) ([]dto.DepartmentProgress, error)
	DepartmentDetail(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error)
}

// aggregationServiceImpl implements the AggregationService interface
type aggregationServiceImpl struct {
	departmentRepo   *repositories.DepartmentRepository
	studentRepo      *repositories.StudentRepository
	contributionRepo *repositories.ContributionRepository
	globalGoal       int64
	studentTarget    int64
	now              func() time.Time
}

// NewAggregationService creates a new aggregation service instance
func NewAggregationService(
	departmentRepo *repositories.DepartmentRepository,
	studentRepo *repositories.StudentRepository,
	contributionRepo *repositories.ContributionRepository,
	globalGoal int64,
	studentTarget int64,
) AggregationService {
	if studentTarget <= 0 {
		studentTarget = models.DefaultStudentTarget
	}
	return &aggregationServiceImpl{
		departmentRepo:   departmentRepo,
		studentRepo:      studentRepo,
		contributionRepo: contributionRepo,
		globalGoal:       globalGoal,
		studentTarget:    studentTarget,
		now:              time.Now,
	}
}

// TotalCollected sums every student's running total
func (s *aggregationServiceImpl) TotalCollected(ctx context.Context) (int64, error) {
	return s.studentRepo.TotalCollected(ctx)
}

// Stats builds the hero payload: grand total, fixed campaign goal, top
// contributors and the trailing daily series
func (s *aggregationServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	total, err := s.studentRepo.TotalCollected(ctx)
	if err != nil {
		return nil, fmt.Errorf("error aggregating totals: %w", err)
	}

	top, err := s.topContributors(ctx, topStudentsLimit)
	if err != nil {
		return nil, err
	}

	daily, err := s.dailySeries(ctx, dailySeriesDays)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalCollected: total,
		Goal:           s.globalGoal,
		TopStudents:    top,
		DailyStats:     daily,
	}, nil
}

// Dashboard combines stats with department progress and recent activity
func (s *aggregationServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	departments, err := s.DepartmentProgress(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.studentRepo.GetRecent(ctx, recentStudentsLimit)
	if err != nil {
		return nil, fmt.Errorf("error loading recent students: %w", err)
	}
	if recent == nil {
		recent = []*models.Student{}
	}

	return &dto.DashboardResponse{
		Stats:       *stats,
		Departments: departments,
		Students:    recent,
	}, nil
}

// DepartmentProgress reports each department's collected total against its
// derived target (per-student target times head count)
func (s *aggregationServiceImpl) DepartmentProgress(ctx context.Context) ([]dto.DepartmentProgress, error) {
	aggregates, err := s.departmentRepo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("error aggregating departments: %w", err)
	}

	progress := make([]dto.DepartmentProgress, 0, len(aggregates))
	for _, agg := range aggregates {
		target, percentage := progressFor(agg.StudentCount, agg.TotalCollected, s.studentTarget)
		progress = append(progress, dto.DepartmentProgress{
			ID:             agg.ID,
			Name:           agg.Name,
			TotalCollected: agg.TotalCollected,
			Target:         target,
			Percentage:     percentage,
			StudentCount:   int(agg.StudentCount),
		})
	}

	return progress, nil
}

// DepartmentDetail loads one department with its students and derived
// standing: percentage, participation rate, remaining amount and club tier
func (s *aggregationServiceImpl) DepartmentDetail(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.GetByDepartmentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading department students: %w", err)
	}
	if students == nil {
		students = []*models.Student{}
	}

	var collected int64
	participating := 0
	for _, student := range students {
		collected += student.AmountPaid
		if student.AmountPaid > 0 {
			participating++
		}
	}

	target, percentage := progressFor(int64(len(students)), collected, s.studentTarget)

	participationRate := 0.0
	if len(students) > 0 {
		participationRate = float64(participating) / float64(len(students)) * 100
	}

	remaining := target - collected
	if remaining < 0 {
		remaining = 0
	}

	return &dto.DepartmentDetailResponse{
		ID:                department.ID,
		Name:              department.Name,
		Students:          students,
		TotalCollected:    collected,
		Target:            target,
		Remaining:         remaining,
		Percentage:        percentage,
		ParticipationRate: participationRate,
		Club:              ClubTierFor(percentage),
	}, nil
}

func (s *aggregationServiceImpl) topContributors(ctx context.Context, limit int) ([]dto.TopStudent, error) {
	rows, err := s.studentRepo.TopContributors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error ranking contributors: %w", err)
	}

	top := make([]dto.TopStudent, 0, len(rows))
	for i, row := range rows {
		top = append(top, dto.TopStudent{
			ID:         fmt.Sprintf("%s-%d-%d", row.Name, row.DepartmentID, i),
			Name:       row.Name,
			Amount:     row.Total,
			Department: row.DepartmentName,
		})
	}

	return top, nil
}

func (s *aggregationServiceImpl) dailySeries(ctx context.Context, days int) ([]dto.DailyStat, error) {
	now := s.now()
	since := helpers.StartOfDayUTC(now).AddDate(0, 0, -(days - 1))

	totals, err := s.contributionRepo.DailyTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("error bucketing contributions: %w", err)
	}

	return fillDailyBuckets(totals, days, now), nil
}

// fillDailyBuckets expands sparse per-day totals into a dense trailing window
// ending today (UTC): one bucket per day, zero-filled, oldest first.
func fillDailyBuckets(totals []repositories.DailyTotal, days int, now time.Time) []dto.DailyStat {
	byDay := make(map[string]int64, len(totals))
	for _, t := range totals {
		byDay[helpers.StartOfDayUTC(t.Day).Format("2006-01-02")] += t.Total
	}

	stats := make([]dto.DailyStat, 0, days)
	today := helpers.StartOfDayUTC(now)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		stats = append(stats, dto.DailyStat{
			Day:    day.Weekday().String()[:3],
			Date:   date,
			Amount: byDay[date],
		})
	}

	return stats
}

// progressFor derives a department's target and clamped percentage. A
// department without students keeps a single-student target so the
// percentage never divides by zero.
func progressFor(studentCount, collected, studentTarget int64) (int64, float64) {
	target := studentCount * studentTarget
	if target <= 0 {
		target = studentTarget
	}

	percentage := float64(collected) / float64(target) * 100
	if percentage > 100 {
		percentage = 100
	}

	return target, percentage
}

// ClubTierFor classifies a funding percentage into its milestone tier.
// Total over [0, inf); callers clamp at 100 before display.
func ClubTierFor(percentage float64) dto.ClubTier {
	switch {
	case percentage >= 100:
		return dto.ClubTier{Name: "Centenary Club", Description: "Goal achieved! Outstanding achievement!"}
	case percentage >= 75:
		return dto.ClubTier{Name: "Platinum Club", Description: "Almost there! Just a bit more to reach the goal."}
	case percentage >= 50:
		return dto.ClubTier{Name: "Golden Club", Description: "Halfway milestone achieved! Keep going!"}
	case percentage >= 25:
		return dto.ClubTier{Name: "Silver Club", Description: "Great start! Building momentum."}
	default:
		return dto.ClubTier{Name: "Getting Started", Description: "Every contribution counts. Let's reach 25%!"}
	}
}
