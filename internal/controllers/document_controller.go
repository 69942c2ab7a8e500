package controllers

import (
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type DocumentController struct {
	documentService services.DocumentServiceInterface
	logger          *zap.Logger
}

func NewDocumentController(documentService services.DocumentServiceInterface, logger *zap.Logger) *DocumentController {
	return &DocumentController{documentService: documentService, logger: logger}
}

func (c *DocumentController) GetDocuments(ctx echo.Context) error {
	res, err := c.documentService.List(ctx.Request().Context(), nil)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "documents listed", http.StatusOK)
}

func (c *DocumentController) GetEquipmentDocuments(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.documentService.List(ctx.Request().Context(), &id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "documents listed", http.StatusOK)
}

func (c *DocumentController) UploadDocument(ctx echo.Context) error {
	equipmentID, err := utils.ParseIDParam(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UploadDocumentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid form data", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "file is required", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	res, err := c.documentService.Upload(ctx.Request().Context(), equipmentID, payload, src, fileHeader.Size, fileHeader.Filename)
	if err != nil {
		c.logger.Warn("UploadDocument: upload failed",
			zap.Uint64("equipment_id", equipmentID),
			zap.String("file", fileHeader.Filename),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "document uploaded", http.StatusCreated)
}

// DownloadDocument streams the stored file under its original name.
func (c *DocumentController) DownloadDocument(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	doc, file, err := c.documentService.Open(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	mime, err := mimetype.DetectReader(file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	utils.SetAttachmentHeaders(ctx, mime.String(), doc.OriginalName)
	return ctx.Stream(http.StatusOK, mime.String(), file)
}

func (c *DocumentController) DeleteDocument(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.documentService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "document deleted", http.StatusOK)
}
