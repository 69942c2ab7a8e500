package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
)

const (
	calibrationTable  = "calibration_history"
	calibrationFields = "id, equipment_id, calibrated_on, result, notes, created_at"
)

type CalibrationRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, rec entities.CalibrationRecord) (uint64, error)
	ListByEquipment(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error)
	// Exists reports whether the equipment already has a record for the day.
	Exists(ctx context.Context, tx pgx.Tx, rec entities.CalibrationRecord) (bool, error)
}

type calibrationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCalibrationRepository(storage *pgxpool.Pool, logger *zap.Logger) CalibrationRepositoryInterface {
	return &calibrationRepository{storage: storage, logger: logger}
}

func (r *calibrationRepository) Create(ctx context.Context, tx pgx.Tx, rec entities.CalibrationRecord) (uint64, error) {
	query, args, err := psql.Insert(calibrationTable).
		Columns("equipment_id", "calibrated_on", "result", "notes").
		Values(rec.EquipmentID, rec.CalibratedOn, rec.Result, rec.Notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := querier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, storeError(err, "create calibration record")
	}
	return id, nil
}

func (r *calibrationRepository) ListByEquipment(ctx context.Context, equipmentID uint64) ([]entities.CalibrationRecord, error) {
	query, args, err := psql.Select(calibrationFields).
		From(calibrationTable).
		Where("equipment_id = ?", equipmentID).
		OrderBy("calibrated_on DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "list calibration history")
	}
	defer rows.Close()

	records := make([]entities.CalibrationRecord, 0)
	for rows.Next() {
		var rec entities.CalibrationRecord
		if err := rows.Scan(&rec.ID, &rec.EquipmentID, &rec.CalibratedOn, &rec.Result, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, storeError(err, "scan calibration record")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list calibration history")
	}
	return records, nil
}

func (r *calibrationRepository) Exists(ctx context.Context, tx pgx.Tx, rec entities.CalibrationRecord) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(calibrationTable).
		Where("equipment_id = ? AND calibrated_on = ?", rec.EquipmentID, rec.CalibratedOn).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err := querier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, storeError(err, "check calibration record")
	}
	return exists, nil
}
