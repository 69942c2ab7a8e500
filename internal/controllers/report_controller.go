package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/filter"
	"inventory-system/internal/reports"
	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport serves /api/reports/:kind/:format. Query parameters filter the
// inventory-filtered report.
func (c *ReportController) GetReport(ctx echo.Context) error {
	kind := reports.Kind(strings.ToLower(ctx.Param("kind")))
	format := reports.Format(strings.ToLower(ctx.Param("format")))
	if err := reports.Check(kind, format); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if kind == reports.KindPhotos {
		return c.streamPhotos(ctx)
	}

	f := filter.FromQuery(ctx.QueryParams())
	c.logger.Debug("report requested", zap.String("kind", string(kind)), zap.String("format", string(format)), zap.Any("filter", f))

	artifact, err := c.reportService.Generate(ctx.Request().Context(), kind, format, f)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	utils.SetAttachmentHeaders(ctx, artifact.ContentType, artifact.FileName)
	return ctx.Blob(http.StatusOK, artifact.ContentType, artifact.Body)
}

// streamPhotos writes the archive straight to the response. Once the first
// byte is out a failure can only be logged.
func (c *ReportController) streamPhotos(ctx echo.Context) error {
	utils.SetAttachmentHeaders(ctx, reports.ContentTypeZIP, reports.PhotosFileName)
	ctx.Response().WriteHeader(http.StatusOK)
	if err := c.reportService.StreamPhotos(ctx.Request().Context(), ctx.Response()); err != nil {
		c.logger.Error("photo archive interrupted", zap.Error(err))
	}
	return nil
}
