package events

import "time"

const EquipmentCalibratedName = "equipment.calibrated"

// EquipmentCalibratedEvent is published when an equipment's last calibration
// date is set to a new value.
type EquipmentCalibratedEvent struct {
	EquipmentID  uint64
	CalibratedOn time.Time
	// Source names the operation that changed the date.
	Source string
}

func (e EquipmentCalibratedEvent) Name() string {
	return EquipmentCalibratedName
}
