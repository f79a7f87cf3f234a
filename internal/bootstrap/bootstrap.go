package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/abimath/internal/app/controllers"
	appMigrations "github.com/yigit/abimath/internal/app/migrations"
	appRepos "github.com/yigit/abimath/internal/app/repositories"
	appRoutes "github.com/yigit/abimath/internal/app/routes"
	appServices "github.com/yigit/abimath/internal/app/services"
	"github.com/yigit/abimath/internal/config"
	"github.com/yigit/abimath/internal/db"
	appMiddleware "github.com/yigit/abimath/internal/middleware"
	pkgAuth "github.com/yigit/abimath/internal/pkg/auth"
	"github.com/yigit/abimath/internal/pkg/helpers"
	"github.com/yigit/abimath/internal/pkg/logger"
	"github.com/yigit/abimath/internal/seed"
	schema "github.com/yigit/abimath/migrations"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UnitOfWork        appRepos.UnitOfWork
	ClassService      appServices.ClassService   // Interface type
	StudentService    appServices.StudentService // Interface type
	HealthController  *appControllers.HealthController
	ClassController   *appControllers.ClassController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Logger            zerolog.Logger
}

// ConfigPath returns the YAML config location, overridable with CONFIG_PATH
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: logger.ParseFormat(cfg.Logging.Format),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store, applies migrations and seeds
// fixture data when asked to. The returned func releases the store.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.UnitOfWork, func(), error) {
	var uow appRepos.UnitOfWork
	closeFn := func() {}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		uow = appRepos.NewMemoryStore()

	default:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool, lgr)
		if err := migrator.Migrate(ctx, schema.Files); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		uow = appRepos.NewPostgresUnitOfWork(database)
		closeFn = database.Close
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, uow, lgr); err != nil {
			// startup continues without fixtures
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return uow, closeFn, nil
}

// NewAuthorizer returns the token verifier, or nil when auth is disabled
func NewAuthorizer(cfg *config.Config, lgr zerolog.Logger) appMiddleware.Authorizer {
	if !cfg.Auth.Enabled {
		lgr.Warn().Msg("Authentication is disabled; all routes are public")
		return nil
	}

	keys := pkgAuth.NewHTTPKeySource(cfg.JWKSURL(), helpers.ParseDuration(cfg.Auth.JWKSTimeout, 5*time.Second))
	lgr.Info().Str("jwksURL", cfg.JWKSURL()).Str("audience", cfg.Auth.Audience).Msg("Token verification enabled")
	return pkgAuth.NewVerifier(keys, pkgAuth.VerifierConfig{
		Audience:  cfg.Auth.Audience,
		Issuer:    cfg.Issuer(),
		Algorithm: strings.ToUpper(cfg.Auth.Algorithm),
	})
}

// BuildDependencies initializes services and controllers over a unit of work.
func BuildDependencies(cfg *config.Config, uow appRepos.UnitOfWork, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{UnitOfWork: uow, Logger: lgr}

	deps.ClassService = appServices.NewClassService(uow)
	deps.StudentService = appServices.NewStudentService(uow)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(NewAuthorizer(cfg, lgr))

	deps.HealthController = appControllers.NewHealthController()
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.StudentController,
		deps.ClassController,
		deps.AuthMiddleware,
	)

	return router
}
