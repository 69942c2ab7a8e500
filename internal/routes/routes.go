package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	Report    *zap.Logger
}

// Services bundles what the handlers call. main builds it from the
// repositories; tests pass fakes.
type Services struct {
	Auth         services.AuthServiceInterface
	Equipment    services.EquipmentServiceInterface
	Import       services.ImportServiceInterface
	Documents    services.DocumentServiceInterface
	Calibrations services.CalibrationServiceInterface
	Alerts       services.AlertServiceInterface
	Reports      services.ReportServiceInterface
}

func InitRouter(e *echo.Echo, svc Services, jwtSvc service.JWTService, db controllers.Pinger, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registering routes")

	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)

	e.GET("/health", controllers.NewHealthController(db, loggers.Main).Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	runAuthRouter(api, svc.Auth, loggers.Auth)

	secureGroup := api.Group("", authMW.Auth)
	runEquipmentRouter(secureGroup, svc, loggers.Equipment, authMW)
	runDocumentRouter(secureGroup, svc.Documents, loggers.Equipment, authMW)
	runAlertRouter(secureGroup, svc.Alerts, loggers.Main)
	runReportRouter(secureGroup, svc.Reports, loggers.Report)

	loggers.Main.Info("InitRouter: routes registered")
}
