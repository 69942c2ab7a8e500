package listeners

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/eventbus"
)

// CalibrationAuditListener writes a calibration history entry for every
// calibration date set through equipment create or update.
type CalibrationAuditListener struct {
	calibrationRepo repositories.CalibrationRepositoryInterface
	logger          *zap.Logger
}

func NewCalibrationAuditListener(calibrationRepo repositories.CalibrationRepositoryInterface, logger *zap.Logger) *CalibrationAuditListener {
	return &CalibrationAuditListener{calibrationRepo: calibrationRepo, logger: logger}
}

func (l *CalibrationAuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EquipmentCalibratedName, l.handleEquipmentCalibrated)
	l.logger.Info("CalibrationAuditListener subscribed", zap.String("event", events.EquipmentCalibratedName))
}

func (l *CalibrationAuditListener) handleEquipmentCalibrated(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.EquipmentCalibratedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}

	rec := entities.CalibrationRecord{
		EquipmentID:  event.EquipmentID,
		CalibratedOn: event.CalibratedOn,
		Notes:        null.StringFrom("recorded from equipment " + event.Source),
	}

	// an explicit record for the same day already covers this change
	exists, err := l.calibrationRepo.Exists(ctx, nil, rec)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	id, err := l.calibrationRepo.Create(ctx, nil, rec)
	if err != nil {
		return err
	}
	l.logger.Info("calibration history recorded",
		zap.Uint64("equipment_id", event.EquipmentID),
		zap.Uint64("record_id", id),
		zap.String("source", event.Source),
	)
	return nil
}
