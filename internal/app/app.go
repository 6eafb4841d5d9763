package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appconfig "evcharge/internal/config"
	httpserver "evcharge/internal/http"
	"evcharge/internal/http/handlers"
	"evcharge/internal/http/middleware"
	"evcharge/internal/password"
	"evcharge/internal/redisstore"
	"evcharge/internal/repository"
	"evcharge/internal/service"
	"evcharge/internal/ws"
	libdb "evcharge/libs/db"
	libredis "evcharge/libs/redis"
)

// App wires dependencies for the reservation service.
type App struct {
	server    *httpserver.Server
	hub       *ws.Hub
	reminders *service.ReminderWorker
	db        *sql.DB
	redis     *redis.Client
	logger    *zap.Logger
}

// New builds the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	userRepo := repository.NewUserRepository(sqlDB)
	stationRepo := repository.NewStationRepository(sqlDB)
	bookingRepo := repository.NewBookingRepository(sqlDB)
	notificationRepo := repository.NewNotificationRepository(sqlDB)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	hub := ws.NewHub(cfg.Stream.PingInterval, logger)
	qrStore := redisstore.NewQRStore(redisClient)

	authSvc := service.NewAuthService(userRepo, hasher, tokenSvc, logger)
	userSvc := service.NewUserService(userRepo, hasher, logger)
	stationSvc := service.NewStationService(stationRepo, logger)
	notificationSvc := service.NewNotificationService(notificationRepo, hub, logger)
	bookingSvc := service.NewBookingService(bookingRepo, stationRepo, notificationSvc, qrStore, logger)
	reminders := service.NewReminderWorker(bookingRepo, stationRepo, notificationSvc, 0, logger)

	deps := httpserver.RouterDeps{
		AuthHandlers:         handlers.NewAuthHandlers(authSvc, logger),
		UserHandlers:         handlers.NewUserHandlers(userSvc, logger),
		StationHandlers:      handlers.NewStationHandlers(stationSvc, logger),
		BookingHandlers:      handlers.NewBookingHandlers(bookingSvc, stationSvc, logger),
		NotificationHandlers: handlers.NewNotificationHandlers(notificationSvc, logger),
		StreamHandler:        handlers.NewStreamHandler(hub, logger),
		HealthHandler:        handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, middleware.AuthMiddleware(tokenSvc))
	handler := middleware.Chain(router,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)
	server := httpserver.NewServer(cfg.HTTPAddress(), handler, logger)

	return &App{
		server:    server,
		hub:       hub,
		reminders: reminders,
		db:        sqlDB,
		redis:     redisClient,
		logger:    logger,
	}, nil
}

// Run serves HTTP traffic and drives the stream hub and reminder worker
// until context cancellation.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Start(ctx)
	go a.reminders.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
