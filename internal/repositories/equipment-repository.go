package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/filter"
	apperrors "inventory-system/pkg/errors"
)

const (
	equipmentTable  = "equipment"
	equipmentFields = "id, name, description, stock, brand, model, category, subcategory, location, responsible, " +
		"acquisition_date, status, last_calibration, next_calibration, created_at, updated_at"
)

type EquipmentRepositoryInterface interface {
	List(ctx context.Context, f filter.EquipmentFilter) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	// AdvanceLastCalibration sets last_calibration to date unless the stored
	// value is already later. It reports whether the row changed.
	AdvanceLastCalibration(ctx context.Context, tx pgx.Tx, id uint64, date time.Time) (bool, error)
}

type equipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Stock, &e.Brand, &e.Model, &e.Category,
		&e.Subcategory, &e.Location, &e.Responsible, &e.AcquisitionDate, &e.Status,
		&e.LastCalibration, &e.NextCalibration, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns the equipment matching f, ordered by name then id.
func (r *equipmentRepository) List(ctx context.Context, f filter.EquipmentFilter) ([]entities.Equipment, error) {
	builder := f.ToSql(psql.Select(equipmentFields).From(equipmentTable)).OrderBy("name", "id")
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "list equipment")
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, storeError(err, "scan equipment")
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list equipment")
	}
	return list, nil
}

func (r *equipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From(equipmentTable).Where("id = ?", id).ToSql()
	if err != nil {
		return nil, err
	}
	e, err := scanEquipment(querier(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeError(err, "find equipment")
	}
	return e, nil
}

func equipmentValues(e entities.Equipment) map[string]interface{} {
	return map[string]interface{}{
		"name":             e.Name,
		"description":      e.Description,
		"stock":            e.Stock,
		"brand":            e.Brand,
		"model":            e.Model,
		"category":         string(e.Category),
		"subcategory":      e.Subcategory,
		"location":         e.Location,
		"responsible":      e.Responsible,
		"acquisition_date": e.AcquisitionDate,
		"status":           string(e.Status),
		"last_calibration": e.LastCalibration,
		"next_calibration": e.NextCalibration,
	}
}

func (r *equipmentRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error) {
	query, args, err := psql.Insert(equipmentTable).
		SetMap(equipmentValues(e)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := querier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, storeError(err, "create equipment")
	}
	return id, nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error {
	values := equipmentValues(e)
	values["updated_at"] = time.Now()

	query, args, err := psql.Update(equipmentTable).SetMap(values).Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	result, err := querier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return storeError(err, "update equipment")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	query, args, err := psql.Delete(equipmentTable).Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	result, err := querier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return storeError(err, "delete equipment")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) AdvanceLastCalibration(ctx context.Context, tx pgx.Tx, id uint64, date time.Time) (bool, error) {
	query, args, err := psql.Update(equipmentTable).
		Set("last_calibration", date).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		Where("(last_calibration IS NULL OR last_calibration < ?)", date).
		ToSql()
	if err != nil {
		return false, err
	}
	result, err := querier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return false, storeError(err, "advance last calibration")
	}
	return result.RowsAffected() > 0, nil
}
