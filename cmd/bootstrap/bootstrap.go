package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-scheduling/config"
	deliveryHttp "go-clinic-scheduling/internal/delivery/http"
	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/schedule"
	"go-clinic-scheduling/internal/infrastructure/cache"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/infrastructure/metrics"
	"go-clinic-scheduling/internal/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// tokenCacheSize bounds the in-process token registry used without Redis
const tokenCacheSize = 10000

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	RoomLocks   *service.RoomLockService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis (optional)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	if err := app.initializeServer(cfg, db, redisClient); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// roomWindows converts the configured hours table into resolver windows
func roomWindows(hours map[string]config.HoursConfig) map[string]schedule.Window {
	windows := make(map[string]schedule.Window, len(hours))
	for name, h := range hours {
		windows[name] = schedule.Window{Start: h.Start, End: h.End}
	}
	return windows
}

// initializeServer wires repositories, services, usecases and the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) error {
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	roomRepo := repository.NewRoomRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	var tokenStore service.TokenStore
	if redisClient != nil {
		tokenStore = service.NewRedisTokenStore(redisClient)
	} else {
		tokenStore = service.NewMemoryTokenStore(tokenCacheSize, cfg.JWT.AccessExpiry)
	}

	roomLocks := service.NewRoomLockService(redisClient, log, cfg.Scheduling.LockTTL, cfg.Scheduling.LockWait)
	app.RoomLocks = roomLocks

	names := service.NewNameDirectory(db, log, patientRepo, doctorRepo, cfg.Cache.NameSize, cfg.Cache.NameTTL)
	auditService := service.NewAuditService(log, auditLogRepo)

	windows := roomWindows(cfg.Scheduling.RoomHours)
	calendar := usecase.Calendar{
		Resolver: schedule.NewResolver(windows, schedule.Window{
			Start: cfg.Scheduling.DefaultHours.Start,
			End:   cfg.Scheduling.DefaultHours.End,
		}),
		Timezone: schedule.NewTimezone(cfg.Scheduling.UTCOffsetHours),
		Clock:    schedule.SystemClock{},
	}

	provisioning := service.NewProvisioningService(db, log, roomRepo, userRepo, windows)
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := provisioning.Seed(seedCtx, cfg.Bootstrap.AdminPassword); err != nil {
		return fmt.Errorf("failed to provision initial data: %w", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, tokenStore, auditService)
	roomUsecase := usecase.NewRoomUsecase(db, log, roomRepo, appointmentRepo, names, auditService, calendar)
	appointmentUsecase := usecase.NewAppointmentUsecase(
		db, log, appointmentRepo, patientRepo, doctorRepo, roomRepo,
		names, roomLocks, auditService, calendar, cfg.Scheduling.DefaultDurationMinutes,
	)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, patientRepo, doctorRepo, roomRepo, appointmentRepo, names, calendar)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize metrics
	metricsCollector := metrics.NewCollector()
	if sqlDB, err := db.DB(); err == nil {
		if err := metricsCollector.RegisterDB(sqlDB, cfg.DB.Name); err != nil {
			log.Warnf("Failed to register database metrics: %+v", err)
		}
	}

	// Initialize handlers
	healthChecks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	healthHandler := handler.NewHealthHandler(healthChecks)
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	roomHandler := handler.NewRoomHandler(roomUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		healthHandler, authHandler, roomHandler, appointmentHandler, dashboardHandler, auditLogHandler,
		authMiddleware, corsMiddleware, metricsCollector,
	)
	httpRouter := router.Setup()

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes database and Redis connections
func (app *App) Close() {
	if app.RoomLocks != nil {
		app.RoomLocks.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
