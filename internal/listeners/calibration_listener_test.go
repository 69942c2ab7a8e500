package listeners

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/pkg/eventbus"
)

type memCalibrations struct {
	mu      sync.Mutex
	records []entities.CalibrationRecord
	failing bool
}

func (m *memCalibrations) Create(_ context.Context, _ pgx.Tx, rec entities.CalibrationRecord) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return 0, errors.New("store unavailable")
	}
	rec.ID = uint64(len(m.records) + 1)
	m.records = append(m.records, rec)
	return rec.ID, nil
}

func (m *memCalibrations) ListByEquipment(_ context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.CalibrationRecord
	for _, r := range m.records {
		if r.EquipmentID == equipmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCalibrations) Exists(_ context.Context, _ pgx.Tx, rec entities.CalibrationRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EquipmentID == rec.EquipmentID && r.CalibratedOn.Equal(rec.CalibratedOn) {
			return true, nil
		}
	}
	return false, nil
}

func TestCalibrationAuditListener(t *testing.T) {
	repo := &memCalibrations{}
	bus := eventbus.New(zap.NewNop())
	NewCalibrationAuditListener(repo, zap.NewNop()).Register(bus)

	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	bus.Publish(context.Background(), events.EquipmentCalibratedEvent{EquipmentID: 7, CalibratedOn: day, Source: "update"})
	bus.Wait()

	records, err := repo.ListByEquipment(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "recorded from equipment update", records[0].Notes.String)

	// the same day is recorded once
	bus.Publish(context.Background(), events.EquipmentCalibratedEvent{EquipmentID: 7, CalibratedOn: day, Source: "create"})
	bus.Wait()
	records, err = repo.ListByEquipment(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCalibrationAuditListener_Errors(t *testing.T) {
	repo := &memCalibrations{failing: true}
	l := NewCalibrationAuditListener(repo, zap.NewNop())

	err := l.handleEquipmentCalibrated(context.Background(), events.EquipmentCalibratedEvent{EquipmentID: 1, CalibratedOn: time.Now()})
	assert.Error(t, err)

	err = l.handleEquipmentCalibrated(context.Background(), otherEvent{})
	assert.Error(t, err)
}

type otherEvent struct{}

func (otherEvent) Name() string { return "other" }
