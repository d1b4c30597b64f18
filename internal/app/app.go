package app

import (
	"context"
	"fmt"
	"time"

	"floodguard_backend/database"
	"floodguard_backend/internal/config"
	"floodguard_backend/internal/email"
	"floodguard_backend/internal/geo"
	"floodguard_backend/internal/handlers"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/middleware"
	"floodguard_backend/internal/observability"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/routes"
	"floodguard_backend/internal/services"
	"floodguard_backend/internal/validator"
	"floodguard_backend/internal/workers"
	"floodguard_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles services, handlers, realtime push and workers,
// and returns the configured engine. ctx bounds the background workers.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	wsManager := ws.NewManager(metrics)
	go wsManager.Run()

	serviceContainer := initializeServices(cfg, gormDB, metrics, clock, wsManager)
	appHandlers := initializeHandlers(serviceContainer)
	wsHandler := ws.NewHandler(wsManager, serviceContainer.NotificationService)

	startWorkers(ctx, cfg, serviceContainer, gormDB, clock)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, gormDB)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	publisher services.NotificationPublisher,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	sensorRepo := repositories.NewSensorRepository(gormDB)
	readingRepo := repositories.NewReadingRepository(gormDB)
	reportRepo := repositories.NewReportRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	settingsRepo := repositories.NewEmailSettingsRepository(gormDB)

	var sender email.Sender
	if cfg.Email.Simulate {
		logger.Warn("Email delivery is simulated; no real SMTP traffic")
		sender = email.NewSimulatedSender(
			cfg.Email.SuccessRate,
			time.Duration(cfg.Email.SendDelayMS)*time.Millisecond,
		)
	} else {
		sender = email.NewSMTPSender(cfg)
	}
	renderer := email.NewRenderer(cfg.Email.DashboardURL)

	geocoder := geo.NewStaticGeocoder()

	profileService := services.NewProfileService(profileRepo, userRepo, clock)
	authService := services.NewAuthService(userRepo, profileService)
	notificationService := services.NewNotificationService(
		notificationRepo, userRepo, profileRepo, sensorRepo, readingRepo, settingsRepo,
		sender, renderer, cfg, metrics, clock, publisher,
	)
	sensorService := services.NewSensorService(sensorRepo, geocoder)
	readingService := services.NewReadingService(readingRepo, sensorRepo, notificationService, cfg, clock)
	reportService := services.NewReportService(reportRepo, geocoder)
	settingsService := services.NewSettingsService(settingsRepo)
	userService := services.NewUserService(userRepo, profileRepo, notificationRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		ProfileService:      profileService,
		SensorService:       sensorService,
		ReadingService:      readingService,
		ReportService:       reportService,
		NotificationService: notificationService,
		SettingsService:     settingsService,
		Geocoder:            geocoder,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService, container.UserService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, container.ProfileService),
		SensorHandler:       handlers.NewSensorHandler(baseHandler, container.SensorService, container.ReadingService),
		ReadingHandler:      handlers.NewReadingHandler(baseHandler, container.ReadingService),
		ReportHandler:       handlers.NewReportHandler(baseHandler, container.ReportService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		SettingsHandler:     handlers.NewSettingsHandler(baseHandler, container.SettingsService),
		GeocodeHandler:      handlers.NewGeocodeHandler(baseHandler, container.Geocoder),
	}
}

func startWorkers(ctx context.Context, cfg *config.Config, container *services.ServiceContainer, gormDB *gorm.DB, clock clockwork.Clock) {
	if cfg.Workers.MaintenanceEnabled {
		worker := workers.NewMaintenanceWorker(
			container.NotificationService,
			cfg.Workers.MaintenanceInterval,
			clock,
		)
		worker.Start(ctx)
	}

	if cfg.Workers.WeeklyReportEnabled {
		worker := workers.NewWeeklyReportWorker(
			container.NotificationService,
			repositories.NewUserRepository(gormDB),
			cfg.Workers.WeeklyReportInterval,
			clock,
		)
		worker.Start(ctx)
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
