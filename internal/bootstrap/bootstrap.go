package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/emre/notesphere/docs" // generated swagger docs
	appControllers "github.com/emre/notesphere/internal/app/controllers"
	appMigrations "github.com/emre/notesphere/internal/app/migrations"
	appRepos "github.com/emre/notesphere/internal/app/repositories"
	appRoutes "github.com/emre/notesphere/internal/app/routes"
	appServices "github.com/emre/notesphere/internal/app/services"
	"github.com/emre/notesphere/internal/config"
	"github.com/emre/notesphere/internal/db"
	appMiddleware "github.com/emre/notesphere/internal/middleware"
	"github.com/emre/notesphere/internal/pkg/auth"
	"github.com/emre/notesphere/internal/pkg/filestorage"
	"github.com/emre/notesphere/internal/pkg/helpers"
	"github.com/emre/notesphere/internal/pkg/logger"
	"github.com/emre/notesphere/internal/pkg/revalidate"
	"github.com/emre/notesphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	Services            *appServices.Services
	AdminAuthController *appControllers.AdminAuthController
	SubjectController   *appControllers.SubjectController
	ChapterController   *appControllers.ChapterController
	NoteController      *appControllers.NoteController
	UploadController    *appControllers.UploadController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	TokenService        *auth.TokenService
	FileStorage         filestorage.FileStorage
	Invalidator         revalidate.Invalidator
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

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

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failures should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	if cfg.Revalidate.Endpoint != "" {
		deps.Invalidator = revalidate.NewWebhookInvalidator(cfg.Revalidate.Endpoint, cfg.Revalidate.Secret)
		lgr.Info().Str("endpoint", cfg.Revalidate.Endpoint).Msg("Revalidation webhook configured")
	} else {
		deps.Invalidator = revalidate.NopInvalidator{}
		lgr.Info().Msg("No revalidation endpoint configured")
	}

	tokenExp := helpers.ParseDuration(cfg.Admin.TokenExpiration, 12*time.Hour)
	deps.TokenService = auth.NewTokenService(auth.TokenConfig{
		SecretKey:   cfg.Admin.TokenSecret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.Admin.TokenIssuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Invalidator, deps.TokenService, cfg)

	deps.AdminAuthController = appControllers.NewAdminAuthController(deps.Services.AdminAuthService)
	deps.SubjectController = appControllers.NewSubjectController(deps.Services.SubjectService)
	deps.ChapterController = appControllers.NewChapterController(deps.Services.ChapterService)
	deps.NoteController = appControllers.NewNoteController(deps.Services.NoteService)
	deps.UploadController = appControllers.NewUploadController(deps.FileStorage)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.TokenService)

	return deps, nil
}

// SetupRouter creates the gin engine with all middleware and routes attached.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(
		router,
		deps.AdminAuthController,
		deps.SubjectController,
		deps.ChapterController,
		deps.NoteController,
		deps.UploadController,
		deps.AuthMiddleware,
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	lgr.Info().Msg("Router configured")
	return router
}
