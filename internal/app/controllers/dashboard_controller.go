package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/middleware"
)

// DashboardController serves the aggregated fundraising views
type DashboardController struct {
	aggregationService services.AggregationService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(aggregationService services.AggregationService) *DashboardController {
	return &DashboardController{
		aggregationService: aggregationService,
	}
}

// GetDashboard returns the full dashboard payload
// @Summary Get the dashboard
// @Description Returns campaign stats, per-department progress and recently active students in one payload
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.aggregationService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// GetStats returns the campaign hero numbers
// @Summary Get campaign stats
// @Description Returns the grand total, campaign goal, top contributors and the trailing 7-day series
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Stats retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.aggregationService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
