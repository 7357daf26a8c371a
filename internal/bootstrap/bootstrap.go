package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	appControllers "github.com/mindforge/mindforge-api/internal/app/controllers"
	appMigrations "github.com/mindforge/mindforge-api/internal/app/migrations"
	appRepos "github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/app/repositories/inmem"
	appRoutes "github.com/mindforge/mindforge-api/internal/app/routes"
	appServices "github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/config"
	"github.com/mindforge/mindforge-api/internal/db"
	appMiddleware "github.com/mindforge/mindforge-api/internal/middleware"
	pkgAuth "github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/mindforge/mindforge-api/internal/pkg/logger"
	"github.com/mindforge/mindforge-api/internal/pkg/validation"
	"github.com/mindforge/mindforge-api/internal/pkg/websocket"
	"github.com/mindforge/mindforge-api/internal/seed"
	"github.com/rs/zerolog"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	Hasher         *pkgAuth.PasswordHasher
	Hub            *websocket.Hub
	AuthMiddleware *appMiddleware.AuthMiddleware
	Handlers       appRoutes.Handlers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  cfg.Logging.Format == "text",
		Service: "mindforge-api",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// Storage is the repository set the API runs on plus its lifecycle hooks
type Storage struct {
	Repos     *appRepos.Repositories
	Readiness appRoutes.ReadinessChecker
	Close     func()
}

// SetupStorage picks the repository backend from cfg.Database.Driver
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		return &Storage{Repos: inmem.NewRepositories(), Close: func() {}}, nil
	}

	database, err := SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	return &Storage{
		Repos:     appRepos.NewRepositories(database.Pool),
		Readiness: db.NewHealthChecker(database.StdDB(), 2*time.Second),
		Close: func() {
			lgr.Info().Msg("Closing database connection pool...")
			database.Close()
		},
	}, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		lgr.Info().Msg("Automatic migrations disabled")
		return database, nil
	}

	migrator := appMigrations.NewMigrator(database.StdDB(), lgr)
	if err := migrator.Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	return database, nil
}

// SeedDefaults provisions the configured admin and the default rubrics
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	admin := seed.Admin{
		Email:     cfg.Seed.AdminEmail,
		Password:  cfg.Seed.AdminPassword,
		FirstName: cfg.Seed.AdminFirstName,
		LastName:  cfg.Seed.AdminLastName,
	}
	if err := seed.CreateDefaultData(ctx, deps.Repos, deps.Hasher, admin, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes services and controllers on top of repos.
// The readiness checker may be nil when no database backs the repositories.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, readiness appRoutes.ReadinessChecker, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(pkgAuth.BcryptCost)
	deps.Hub = websocket.NewHub(logger.Component("notifications"))

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:    repos,
		JWT:      deps.JWTService,
		Hasher:   deps.Hasher,
		Notifier: websocket.NewCommunicationNotifier(deps.Hub),
		Logger:   lgr,
	})
	svc := deps.Services

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Handlers = appRoutes.Handlers{
		Auth:            appControllers.NewAuthController(svc.Auth),
		User:            appControllers.NewUserController(svc.User),
		Bootcamp:        appControllers.NewBootcampController(svc.Bootcamp),
		Session:         appControllers.NewSessionController(svc.Session, svc.Activity),
		Attendance:      appControllers.NewAttendanceController(svc.Attendance),
		Discussion:      appControllers.NewDiscussionController(svc.Discussion),
		Progress:        appControllers.NewProgressController(svc.Progress),
		KnowledgeStream: appControllers.NewKnowledgeStreamController(svc.KnowledgeStream),
		Communication:   appControllers.NewCommunicationController(svc.Communication),
		Notifications:   websocket.NewHandler(deps.Hub, cfg.Origins(), lgr).HandleConnection,
		AuthMiddleware:  deps.AuthMiddleware,
		Readiness:       readiness,
	}
	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Setup(v); err != nil {
			return nil, fmt.Errorf("failed to set up validation: %w", err)
		}
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(lgr),
		appMiddleware.Metrics(),
		appMiddleware.CORS(cfg.Origins()),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Handlers)

	return router, nil
}
