package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/app/controllers"
	"github.com/kiranraj/fundsphere/internal/middleware"
	"github.com/kiranraj/fundsphere/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	contributionController *controllers.ContributionController,
	dashboardController *controllers.DashboardController,
	departmentController *controllers.DepartmentController,
	studentController *controllers.StudentController,
	sessions *auth.SessionService,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("", dashboardController.GetDashboard)
		dashboard.GET("/stats", dashboardController.GetStats)
	}

	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
	}

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", authController.Logout)
		// Anonymous callers get {authenticated: false} rather than a 401.
		authRoutes.GET("/session", middleware.OptionalSession(sessions), authController.Session)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.SessionAuth(sessions))
	{
		// Submissions come from the panel; the confirmation handshake is the
		// guard against accidental duplicates once inside.
		authenticated.POST("/contributions",
			middleware.RoleRequired(auth.RoleAdmin), contributionController.SubmitContribution)

		admin := authenticated.Group("/admin")
		admin.Use(middleware.RoleRequired(auth.RoleAdmin))
		{
			admin.POST("/payments", contributionController.RecordPayment)
			admin.POST("/departments", departmentController.CreateDepartment)
			admin.DELETE("/departments/:id", departmentController.DeleteDepartment)
			admin.PUT("/students/:id", studentController.UpdateStudent)
			admin.DELETE("/students", studentController.DeleteStudents)
		}
	}
}
