package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appControllers "github.com/hostelease/hostelease/internal/app/controllers"
	appMigrations "github.com/hostelease/hostelease/internal/app/migrations"
	appRepos "github.com/hostelease/hostelease/internal/app/repositories"
	appRoutes "github.com/hostelease/hostelease/internal/app/routes"
	appServices "github.com/hostelease/hostelease/internal/app/services"
	"github.com/hostelease/hostelease/internal/config"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/metrics"
	"github.com/hostelease/hostelease/internal/middleware"
	pkgAuth "github.com/hostelease/hostelease/internal/pkg/auth"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
	"github.com/hostelease/hostelease/internal/pkg/logger"
	"github.com/hostelease/hostelease/internal/reconcile"
	"github.com/hostelease/hostelease/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	Sweeper        *reconcile.Sweeper
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	logger.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the connection pool, runs migrations and seeds
// default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	dbPool, err := db.NewPgxPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		// Partial seed data is not fatal, the API still works
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) *Dependencies {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		AccessSecret:    cfg.JWT.AccessSecret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	svcs := appServices.NewServices(repos, jwtService)

	return &Dependencies{
		Repos:          repos,
		Services:       svcs,
		Controllers:    appControllers.NewControllers(svcs),
		JWTService:     jwtService,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Sweeper:        reconcile.NewSweeper(repos),
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "release" || strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins()))
	router.Use(metrics.Middleware())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
