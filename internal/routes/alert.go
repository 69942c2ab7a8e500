package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
)

func runAlertRouter(secureGroup *echo.Group, alertService services.AlertServiceInterface, logger *zap.Logger) {
	alertCtrl := controllers.NewAlertController(alertService, logger)

	secureGroup.GET("/alerts", alertCtrl.GetAlerts)
	secureGroup.GET("/alerts/:kind", alertCtrl.GetAlertsByKind)
	secureGroup.POST("/alerts/:kind/ack", alertCtrl.Acknowledge)
}
