package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

const (
	documentTable  = "documents"
	documentFields = "d.id, d.equipment_id, d.type, d.file_path, d.original_name, d.uploaded_at, d.expiration_date, e.name"
)

type DocumentRepositoryInterface interface {
	// List returns all documents, or the documents of one equipment when
	// equipmentID is set, newest first.
	List(ctx context.Context, tx pgx.Tx, equipmentID *uint64) ([]entities.Document, error)
	FindByID(ctx context.Context, id uint64) (*entities.Document, error)
	Create(ctx context.Context, d entities.Document) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type documentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDocumentRepository(storage *pgxpool.Pool, logger *zap.Logger) DocumentRepositoryInterface {
	return &documentRepository{storage: storage, logger: logger}
}

func scanDocument(row pgx.Row) (*entities.Document, error) {
	var d entities.Document
	err := row.Scan(
		&d.ID, &d.EquipmentID, &d.Type, &d.FilePath, &d.OriginalName,
		&d.UploadedAt, &d.ExpirationDate, &d.EquipmentName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) List(ctx context.Context, tx pgx.Tx, equipmentID *uint64) ([]entities.Document, error) {
	builder := psql.Select(documentFields).
		From(documentTable + " d").
		LeftJoin(equipmentTable + " e ON e.id = d.equipment_id").
		OrderBy("d.uploaded_at DESC", "d.id DESC")
	if equipmentID != nil {
		builder = builder.Where("d.equipment_id = ?", *equipmentID)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := querier(r.storage, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "list documents")
	}
	defer rows.Close()

	docs := make([]entities.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, storeError(err, "scan document")
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "list documents")
	}
	return docs, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uint64) (*entities.Document, error) {
	query, args, err := psql.Select(documentFields).
		From(documentTable + " d").
		LeftJoin(equipmentTable + " e ON e.id = d.equipment_id").
		Where("d.id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}
	d, err := scanDocument(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeError(err, "find document")
	}
	return d, nil
}

func (r *documentRepository) Create(ctx context.Context, d entities.Document) (uint64, error) {
	query, args, err := psql.Insert(documentTable).
		Columns("equipment_id", "type", "file_path", "original_name", "expiration_date").
		Values(d.EquipmentID, string(d.Type), d.FilePath, d.OriginalName, d.ExpirationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, storeError(err, "create document")
	}
	return id, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(documentTable).Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return storeError(err, "delete document")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
