package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/utils"
)

type AlertController struct {
	alertService services.AlertServiceInterface
	logger       *zap.Logger
}

func NewAlertController(alertService services.AlertServiceInterface, logger *zap.Logger) *AlertController {
	return &AlertController{alertService: alertService, logger: logger}
}

func (c *AlertController) GetAlerts(ctx echo.Context) error {
	res, err := c.alertService.Evaluate(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "alerts evaluated", http.StatusOK)
}

func (c *AlertController) GetAlertsByKind(ctx echo.Context) error {
	res, err := c.alertService.EvaluateKind(ctx.Request().Context(), ctx.Param("kind"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "alerts evaluated", http.StatusOK)
}

func (c *AlertController) Acknowledge(ctx echo.Context) error {
	userID, err := middleware.UserIDFromContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.alertService.Acknowledge(ctx.Request().Context(), ctx.Param("kind"), userID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "alert acknowledged", http.StatusOK)
}
