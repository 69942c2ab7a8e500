package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/services"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/middleware"
)

func runDocumentRouter(secureGroup *echo.Group, documentService services.DocumentServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	documentCtrl := controllers.NewDocumentController(documentService, logger)
	admin := authMW.RequireRole(constants.RoleAdmin)

	secureGroup.GET("/documents", documentCtrl.GetDocuments)
	secureGroup.POST("/documents/:equipmentId", documentCtrl.UploadDocument, admin)
	secureGroup.GET("/documents/:id/download", documentCtrl.DownloadDocument)
	secureGroup.DELETE("/documents/:id", documentCtrl.DeleteDocument, admin)
}
