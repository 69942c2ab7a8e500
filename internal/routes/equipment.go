package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, svc Services, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	equipmentCtrl := controllers.NewEquipmentController(svc.Equipment, svc.Import, logger)
	documentCtrl := controllers.NewDocumentController(svc.Documents, logger)
	calibrationCtrl := controllers.NewCalibrationController(svc.Calibrations, logger)
	admin := authMW.RequireRole(constants.RoleAdmin)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, admin)
	secureGroup.POST("/equipment/import", equipmentCtrl.ImportEquipment, admin)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, admin)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, admin)

	secureGroup.GET("/equipment/:id/documents", documentCtrl.GetEquipmentDocuments)
	secureGroup.GET("/equipment/:id/calibrations", calibrationCtrl.GetHistory)
	secureGroup.POST("/equipment/:id/calibrations", calibrationCtrl.RecordCalibration, admin)
}
