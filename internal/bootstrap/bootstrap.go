package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kiranraj/fundsphere/internal/app/controllers"
	appMigrations "github.com/kiranraj/fundsphere/internal/app/migrations"
	appRepos "github.com/kiranraj/fundsphere/internal/app/repositories"
	appRoutes "github.com/kiranraj/fundsphere/internal/app/routes"
	appServices "github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/config"
	"github.com/kiranraj/fundsphere/internal/db"
	pkgAuth "github.com/kiranraj/fundsphere/internal/pkg/auth"
	"github.com/kiranraj/fundsphere/internal/pkg/helpers"
	"github.com/kiranraj/fundsphere/internal/pkg/logger"
	"github.com/kiranraj/fundsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ReconciliationService  appServices.ReconciliationService
	AggregationService     appServices.AggregationService
	DepartmentService      appServices.DepartmentService
	StudentService         appServices.StudentService
	AuthController         *appControllers.AuthController
	ContributionController *appControllers.ContributionController
	DashboardController    *appControllers.DashboardController
	DepartmentController   *appControllers.DepartmentController
	StudentController      *appControllers.StudentController
	Repos                  *appRepos.Repositories
	SessionService         *pkgAuth.SessionService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A .env file is a convenience for local development; absence is fine
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default departments.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Fund.SeedDefaults {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			// Missing defaults are an inconvenience, not a startup failure
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:       cfg.Auth.SessionSecret,
		SessionDuration: helpers.ParseDuration(cfg.Auth.SessionDuration, 24*time.Hour),
		TokenIssuer:     cfg.Auth.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.SessionService,
		cfg.Auth.AdminPassword,
		cfg.Auth.DeveloperPassword,
		lgr,
	)

	deps.ReconciliationService = appServices.NewReconciliationService(
		database,
		deps.Repos.StudentRepository,
		deps.Repos.ContributionRepository,
		deps.Repos.DepartmentRepository,
		cfg.Fund.StudentTarget,
		lgr,
	)

	deps.AggregationService = appServices.NewAggregationService(
		deps.Repos.DepartmentRepository,
		deps.Repos.StudentRepository,
		deps.Repos.ContributionRepository,
		cfg.Fund.GlobalGoal,
		cfg.Fund.StudentTarget,
	)

	deps.DepartmentService = appServices.NewDepartmentService(database, deps.Repos.DepartmentRepository, lgr)

	deps.StudentService = appServices.NewStudentService(
		database,
		deps.Repos.StudentRepository,
		deps.Repos.ContributionRepository,
		deps.Repos.DepartmentRepository,
		lgr,
	)

	secureCookies := strings.ToLower(cfg.Server.Mode) == "production"
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, secureCookies)
	deps.ContributionController = appControllers.NewContributionController(deps.ReconciliationService)
	deps.DashboardController = appControllers.NewDashboardController(deps.AggregationService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService, deps.AggregationService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ContributionController,
		deps.DashboardController,
		deps.DepartmentController,
		deps.StudentController,
		deps.SessionService,
	)

	return router
}
