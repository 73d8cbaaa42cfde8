package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/mertpolat/coursehub/internal/app/auth"
	appControllers "github.com/mertpolat/coursehub/internal/app/controllers"
	appMigrations "github.com/mertpolat/coursehub/internal/app/migrations"
	appRepos "github.com/mertpolat/coursehub/internal/app/repositories"
	appRoutes "github.com/mertpolat/coursehub/internal/app/routes"
	appServices "github.com/mertpolat/coursehub/internal/app/services"
	"github.com/mertpolat/coursehub/internal/config"
	"github.com/mertpolat/coursehub/internal/db"
	appMiddleware "github.com/mertpolat/coursehub/internal/middleware"
	pkgAuth "github.com/mertpolat/coursehub/internal/pkg/auth"
	"github.com/mertpolat/coursehub/internal/pkg/filestorage"
	"github.com/mertpolat/coursehub/internal/pkg/helpers"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
	"github.com/mertpolat/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CourseService        appServices.CourseService
	ReviewService        appServices.ReviewService
	LikeService          appServices.LikeService
	ProfileService       appServices.ProfileService
	AttachmentService    appServices.AttachmentService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	ReviewController     *appControllers.ReviewController
	ProfileController    *appControllers.ProfileController
	AttachmentController *appControllers.AttachmentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Entitlements         *appAuth.EntitlementService
	Logger               zerolog.Logger
	FileStorage          *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
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

// SetupDatabase establishes the database connection, runs migrations, and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Seeding failure is not fatal; the API works without default data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Entitlements = appAuth.NewEntitlementService(deps.Repos.EnrollmentRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.EnrollmentRepository)
	deps.ReviewService = appServices.NewReviewService(
		deps.Repos.ReviewRepository,
		deps.Repos.LikeRepository,
		deps.Repos.CourseRepository,
		deps.Entitlements,
	)
	deps.LikeService = appServices.NewLikeService(deps.Repos.LikeRepository, deps.Repos.CourseRepository)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.ProfileRepository,
		deps.Entitlements,
		appServices.ModerationPolicy{RequireApprovalOnEdit: cfg.Moderation.RequireApprovalOnEdit},
	)
	deps.AttachmentService = appServices.NewAttachmentService(
		deps.Repos.AttachmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseRepository,
		deps.Entitlements,
		deps.FileStorage,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService, deps.LikeService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.AttachmentController = appControllers.NewAttachmentController(deps.AttachmentService)

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
		deps.CourseController,
		deps.ReviewController,
		deps.ProfileController,
		deps.AttachmentController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// StartReconciler schedules the orphaned attachment sweep. Returns nil when
// reconciliation is disabled.
func StartReconciler(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*cron.Cron, error) {
	if !cfg.Reconcile.Enabled {
		lgr.Info().Msg("Attachment reconciliation disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Reconcile.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		removed, err := deps.AttachmentService.ReconcileOrphans(ctx)
		if err != nil {
			lgr.Error().Err(err).Msg("Attachment reconciliation failed")
			return
		}
		if removed > 0 {
			lgr.Info().Int("removed", removed).Msg("Removed orphaned attachment files")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reconciliation: %w", err)
	}

	c.Start()
	lgr.Info().Str("schedule", cfg.Reconcile.Schedule).Msg("Attachment reconciliation scheduled")
	return c, nil
}
