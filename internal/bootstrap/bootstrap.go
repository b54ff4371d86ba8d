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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/schoolbill/backend/docs" // Import generated swagger docs
	appControllers "github.com/schoolbill/backend/internal/app/controllers"
	appMigrations "github.com/schoolbill/backend/internal/app/migrations"
	appRepos "github.com/schoolbill/backend/internal/app/repositories"
	appRoutes "github.com/schoolbill/backend/internal/app/routes"
	appServices "github.com/schoolbill/backend/internal/app/services"
	"github.com/schoolbill/backend/internal/config"
	"github.com/schoolbill/backend/internal/db"
	appMiddleware "github.com/schoolbill/backend/internal/middleware"
	"github.com/schoolbill/backend/internal/pkg/logger"
	"github.com/schoolbill/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	FeeTypeService       *appServices.FeeTypeService
	FeeStructureService  *appServices.FeeStructureService
	VoucherService       *appServices.VoucherService
	PaymentService       *appServices.PaymentService
	GenerationService    *appServices.GenerationService
	StatementService     *appServices.StatementService
	FeeTypeController    *appControllers.FeeTypeController
	FeeStructController  *appControllers.FeeStructureController
	VoucherController    *appControllers.VoucherController
	GenerationController *appControllers.GenerationController
	StatementController  *appControllers.StatementController
	Repos                *appRepos.Repositories
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

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

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize services
	deps.FeeTypeService = appServices.NewFeeTypeService(deps.Repos.FeeTypeRepository)
	deps.FeeStructureService = appServices.NewFeeStructureService(deps.Repos.FeeStructureRepository, deps.Repos.StudentRepository)
	deps.VoucherService = appServices.NewVoucherService(dbPool, deps.Repos.VoucherRepository, deps.Repos.StudentRepository)
	deps.PaymentService = appServices.NewPaymentService(dbPool, deps.Repos.VoucherRepository)
	deps.GenerationService = appServices.NewGenerationService(dbPool, deps.Repos.VoucherRepository, deps.Repos.FeeStructureRepository, deps.Repos.StudentRepository)
	deps.StatementService = appServices.NewStatementService(deps.Repos.VoucherRepository)

	// Initialize controllers
	deps.FeeTypeController = appControllers.NewFeeTypeController(deps.FeeTypeService)
	deps.FeeStructController = appControllers.NewFeeStructureController(deps.FeeStructureService)
	deps.VoucherController = appControllers.NewVoucherController(deps.VoucherService, deps.PaymentService)
	deps.GenerationController = appControllers.NewGenerationController(deps.GenerationService)
	deps.StatementController = appControllers.NewStatementController(deps.StatementService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.FeeTypeController,
		deps.FeeStructController,
		deps.VoucherController,
		deps.GenerationController,
		deps.StatementController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
