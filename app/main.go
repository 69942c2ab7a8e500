package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"inventory-system/internal/alerts"
	"inventory-system/internal/listeners"
	"inventory-system/internal/repositories"
	"inventory-system/internal/routes"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/filestorage"
	applogger "inventory-system/pkg/logger"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"
	"inventory-system/pkg/validation"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. storage
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, dbConn, logger); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		// login lockout degrades to "no lockout" without Redis
		logger.Warn("Redis is unreachable", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err), zap.String("dir", cfg.Storage.UploadDir))
	}

	// 2. repositories
	txManager := repositories.NewTxManager(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	documentRepo := repositories.NewDocumentRepository(dbConn, logger)
	calibrationRepo := repositories.NewCalibrationRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	loginAttempts := repositories.NewLoginAttemptRepository(redisClient)

	// 3. events
	bus := eventbus.New(logger)
	listeners.NewCalibrationAuditListener(calibrationRepo, logger).Register(bus)

	// 4. services
	validator := validation.New()
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	evaluator := alerts.NewEvaluator(alerts.Config{
		DueWindowDays:         cfg.Alerts.DueWindowDays,
		StaleAfterDays:        cfg.Alerts.StaleAfterDays,
		LegacyStalePrecedence: cfg.Alerts.LegacyStalePrecedence,
		Location:              cfg.Server.Timezone,
	})

	equipmentService := services.NewEquipmentService(equipmentRepo, documentRepo, txManager, fileStorage, bus, logger)
	alertService := services.NewAlertService(equipmentRepo, documentRepo, evaluator, logger)
	svc := routes.Services{
		Auth:         services.NewAuthService(userRepo, loginAttempts, jwtSvc, logger, cfg.Auth),
		Equipment:    equipmentService,
		Import:       services.NewEquipmentImportService(equipmentService, validator, logger),
		Documents:    services.NewDocumentService(documentRepo, equipmentRepo, fileStorage, logger),
		Calibrations: services.NewCalibrationService(calibrationRepo, equipmentRepo, txManager, logger),
		Alerts:       alertService,
		Reports:      services.NewReportService(equipmentRepo, documentRepo, evaluator, fileStorage, logger),
	}

	digest, err := services.NewAlertDigest(alertService, logger).Schedule(cfg.Alerts.DigestCron, cfg.Server.Timezone)
	if err != nil {
		logger.Fatal("invalid alert digest schedule", zap.Error(err), zap.String("spec", cfg.Alerts.DigestCron))
	}

	// 5. HTTP
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())

	routes.InitRouter(e, svc, jwtSvc, dbConn, &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Equipment: logger.Named("equipment"),
		Report:    logger.Named("report"),
	})

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if digest != nil {
		<-digest.Stop().Done()
	}
	bus.Wait()
}
