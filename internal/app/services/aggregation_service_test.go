package services

import (
	"testing"
	"time"

	"github.com/kiranraj/fundsphere/internal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubTierFor(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{0, "Getting Started"},
		{24.9, "Getting Started"},
		{25, "Silver Club"},
		{49.9, "Silver Club"},
		{50, "Golden Club"},
		{74.9, "Golden Club"},
		{75, "Platinum Club"},
		{99.9, "Platinum Club"},
		{100, "Centenary Club"},
		{150, "Centenary Club"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClubTierFor(tt.percentage).Name, "percentage %.1f", tt.percentage)
	}
}

func TestProgressFor(t *testing.T) {
	t.Run("empty department falls back to one student target", func(t *testing.T) {
		target, percentage := progressFor(0, 0, 5000)
		assert.Equal(t, int64(5000), target)
		assert.Equal(t, 0.0, percentage)
	})

	t.Run("target scales with head count", func(t *testing.T) {
		target, percentage := progressFor(10, 25000, 5000)
		assert.Equal(t, int64(50000), target)
		assert.Equal(t, 50.0, percentage)
	})

	t.Run("percentage clamps at 100", func(t *testing.T) {
		target, percentage := progressFor(1, 12000, 5000)
		assert.Equal(t, int64(5000), target)
		assert.Equal(t, 100.0, percentage)
	})
}

func TestFillDailyBuckets(t *testing.T) {
	// Saturday 2026-03-14, mid-day UTC
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	t.Run("empty ledger yields dense zero series", func(t *testing.T) {
		stats := fillDailyBuckets(nil, 7, now)
		require.Len(t, stats, 7)
		assert.Equal(t, "Sun", stats[0].Day)
		assert.Equal(t, "2026-03-08", stats[0].Date)
		assert.Equal(t, "Sat", stats[6].Day)
		assert.Equal(t, "2026-03-14", stats[6].Date)
		for _, s := range stats {
			assert.Zero(t, s.Amount)
		}
	})

	t.Run("sparse totals land in their buckets oldest first", func(t *testing.T) {
		totals := []repositories.DailyTotal{
			{Day: day(0), Total: 2500},
			{Day: day(-2), Total: 1000},
		}
		stats := fillDailyBuckets(totals, 7, now)
		require.Len(t, stats, 7)
		assert.Equal(t, int64(1000), stats[4].Amount)
		assert.Equal(t, int64(2500), stats[6].Amount)
		assert.Zero(t, stats[0].Amount)
		assert.Zero(t, stats[5].Amount)
	})

	t.Run("totals outside the window are dropped", func(t *testing.T) {
		totals := []repositories.DailyTotal{
			{Day: day(-10), Total: 9999},
		}
		stats := fillDailyBuckets(totals, 7, now)
		require.Len(t, stats, 7)
		for _, s := range stats {
			assert.Zero(t, s.Amount)
		}
	})
}
