package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"inventory-system/config"
	"inventory-system/internal/alerts"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/filestorage"
	"inventory-system/pkg/utils"
	"inventory-system/pkg/validation"
)

type DocumentServiceInterface interface {
	List(ctx context.Context, equipmentID *uint64) ([]dto.DocumentDTO, error)
	Upload(ctx context.Context, equipmentID uint64, payload dto.UploadDocumentDTO, file io.ReadSeeker, size int64, originalName string) (*dto.DocumentDTO, error)
	Open(ctx context.Context, id uint64) (*entities.Document, *os.File, error)
	Delete(ctx context.Context, id uint64) error
}

type DocumentService struct {
	documentRepo  repositories.DocumentRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewDocumentService(
	documentRepo repositories.DocumentRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo:  documentRepo,
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// List returns every document, or those of one equipment. Asking for the
// documents of an unknown equipment is a not-found error.
func (s *DocumentService) List(ctx context.Context, equipmentID *uint64) ([]dto.DocumentDTO, error) {
	if equipmentID != nil {
		if _, err := s.equipmentRepo.FindByID(ctx, nil, *equipmentID); err != nil {
			return nil, err
		}
	}
	docs, err := s.documentRepo.List(ctx, nil, equipmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, documentToDTO(&docs[i]))
	}
	return out, nil
}

func (s *DocumentService) Upload(
	ctx context.Context,
	equipmentID uint64,
	payload dto.UploadDocumentDTO,
	file io.ReadSeeker,
	size int64,
	originalName string,
) (*dto.DocumentDTO, error) {
	docType := constants.DocumentType(payload.Type)
	if !docType.Valid() {
		return nil, apperrors.NewInvalidInputError("unknown document type %q", payload.Type)
	}
	expiration, err := utils.ParseNullDate(payload.ExpirationDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("expiration_date: %v", err)
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID)
	if err != nil {
		return nil, err
	}

	uploadCtx := docType.UploadContext()
	if err := validation.ValidateFile(size, file, uploadCtx); err != nil {
		return nil, err
	}

	originalName = filepath.Base(strings.TrimSpace(originalName))
	path, err := s.fileStorage.Save(file, originalName, config.UploadContexts[uploadCtx].PathPrefix)
	if err != nil {
		s.logger.Error("failed to store upload", zap.String("file", originalName), zap.Error(err))
		return nil, err
	}

	doc := entities.Document{
		EquipmentID:    null.Uint64From(equipmentID),
		EquipmentName:  null.StringFrom(equipment.Name),
		Type:           docType,
		FilePath:       path,
		OriginalName:   originalName,
		ExpirationDate: expiration,
	}
	id, err := s.documentRepo.Create(ctx, doc)
	if err != nil {
		if rmErr := s.fileStorage.Delete(path); rmErr != nil {
			s.logger.Warn("failed to remove stored file after insert failure", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}

	created, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("document uploaded",
		zap.Uint64("id", id),
		zap.Uint64("equipment_id", equipmentID),
		zap.String("type", string(docType)),
	)
	res := documentToDTO(created)
	return &res, nil
}

// Open returns the document and its stored file; the caller closes the file.
// A record whose file is gone yields ErrFileMissing.
func (s *DocumentService) Open(ctx context.Context, id uint64) (*entities.Document, *os.File, error) {
	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.fileStorage.Open(doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return doc, f, nil
}

// Delete removes the record, then the stored file. A file already gone is
// ignored.
func (s *DocumentService) Delete(ctx context.Context, id uint64) error {
	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(doc.FilePath); err != nil {
		s.logger.Warn("failed to remove stored file", zap.Uint64("document_id", id), zap.String("path", doc.FilePath), zap.Error(err))
	}
	s.logger.Info("document deleted", zap.Uint64("id", id))
	return nil
}

func documentToDTO(d *entities.Document) dto.DocumentDTO {
	return dto.DocumentDTO{
		ID:             d.ID,
		EquipmentID:    d.EquipmentID,
		EquipmentName:  alerts.EquipmentLabel(d),
		Type:           string(d.Type),
		OriginalName:   d.OriginalName,
		URL:            fmt.Sprintf("/api/documents/%d/download", d.ID),
		UploadedAt:     d.UploadedAt.Format(constants.DateTimeLayout),
		ExpirationDate: utils.NullDateString(d.ExpirationDate),
	}
}
