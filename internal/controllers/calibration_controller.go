package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type CalibrationController struct {
	calibrationService services.CalibrationServiceInterface
	logger             *zap.Logger
}

func NewCalibrationController(calibrationService services.CalibrationServiceInterface, logger *zap.Logger) *CalibrationController {
	return &CalibrationController{calibrationService: calibrationService, logger: logger}
}

func (c *CalibrationController) GetHistory(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.calibrationService.List(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "calibration history", http.StatusOK)
}

func (c *CalibrationController) RecordCalibration(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateCalibrationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calibrationService.Record(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("RecordCalibration: record failed", zap.Uint64("equipment_id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "calibration recorded", http.StatusCreated)
}
