package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type CalibrationServiceInterface interface {
	List(ctx context.Context, equipmentID uint64) ([]dto.CalibrationDTO, error)
	Record(ctx context.Context, equipmentID uint64, payload dto.CreateCalibrationDTO) (*dto.CalibrationDTO, error)
}

type CalibrationService struct {
	calibrationRepo repositories.CalibrationRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	txManager       repositories.TxManagerInterface
	logger          *zap.Logger
}

func NewCalibrationService(
	calibrationRepo repositories.CalibrationRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *CalibrationService {
	return &CalibrationService{
		calibrationRepo: calibrationRepo,
		equipmentRepo:   equipmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

func (s *CalibrationService) List(ctx context.Context, equipmentID uint64) ([]dto.CalibrationDTO, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID); err != nil {
		return nil, err
	}
	records, err := s.calibrationRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CalibrationDTO, 0, len(records))
	for i := range records {
		out = append(out, calibrationToDTO(&records[i]))
	}
	return out, nil
}

// Record stores a calibration and moves the equipment's last calibration
// forward when the recorded day is newer.
func (s *CalibrationService) Record(ctx context.Context, equipmentID uint64, payload dto.CreateCalibrationDTO) (*dto.CalibrationDTO, error) {
	on, err := utils.ParseDate(payload.CalibratedOn)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("calibrated_on: %v", err)
	}
	rec := entities.CalibrationRecord{
		EquipmentID:  equipmentID,
		CalibratedOn: on,
		Result:       payload.Result,
		Notes:        payload.Notes,
	}

	var advanced bool
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.equipmentRepo.FindByID(ctx, tx, equipmentID); err != nil {
			return err
		}
		id, err := s.calibrationRepo.Create(ctx, tx, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		advanced, err = s.equipmentRepo.AdvanceLastCalibration(ctx, tx, equipmentID, on)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("calibration recorded",
		zap.Uint64("equipment_id", equipmentID),
		zap.String("calibrated_on", on.Format(constants.DateLayout)),
		zap.Bool("last_calibration_updated", advanced),
	)
	res := calibrationToDTO(&rec)
	return &res, nil
}

func calibrationToDTO(r *entities.CalibrationRecord) dto.CalibrationDTO {
	out := dto.CalibrationDTO{
		ID:           r.ID,
		EquipmentID:  r.EquipmentID,
		CalibratedOn: r.CalibratedOn.Format(constants.DateLayout),
		Result:       r.Result,
		Notes:        r.Notes,
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt.Format(constants.DateTimeLayout)
	}
	return out
}
