package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/filter"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/filestorage"
	"inventory-system/pkg/utils"
)

// EventPublisher is the part of the event bus services publish through.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type EquipmentServiceInterface interface {
	List(ctx context.Context, f filter.EquipmentFilter) ([]dto.EquipmentDTO, error)
	Find(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	documentRepo  repositories.DocumentRepositoryInterface
	txManager     repositories.TxManagerInterface
	fileStorage   filestorage.FileStorageInterface
	publisher     EventPublisher
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	documentRepo repositories.DocumentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		documentRepo:  documentRepo,
		txManager:     txManager,
		fileStorage:   fileStorage,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *EquipmentService) List(ctx context.Context, f filter.EquipmentFilter) ([]dto.EquipmentDTO, error) {
	list, err := s.equipmentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		out = append(out, equipmentToDTO(&list[i]))
	}
	return out, nil
}

func (s *EquipmentService) Find(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := equipmentToDTO(e)
	return &res, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	e, err := equipmentFromDTO(payload)
	if err != nil {
		return nil, err
	}

	id, err := s.equipmentRepo.Create(ctx, nil, e)
	if err != nil {
		s.logger.Error("failed to create equipment", zap.String("name", e.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("equipment created", zap.Uint64("id", id), zap.String("name", e.Name))

	if e.LastCalibration.Valid {
		s.publishCalibrated(ctx, id, e.LastCalibration.Time, "create")
	}
	return s.Find(ctx, id)
}

// Update replaces every field of the item.
func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	e, err := equipmentFromDTO(payload)
	if err != nil {
		return nil, err
	}

	current, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Update(ctx, nil, id, e); err != nil {
		return nil, err
	}
	s.logger.Info("equipment updated", zap.Uint64("id", id))

	if e.LastCalibration.Valid &&
		(!current.LastCalibration.Valid || !current.LastCalibration.Time.Equal(e.LastCalibration.Time)) {
		s.publishCalibrated(ctx, id, e.LastCalibration.Time, "update")
	}
	return s.Find(ctx, id)
}

// Delete removes the item and, through the foreign key, its documents. The
// stored files are removed after the commit; failures there are only logged.
func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	var docs []entities.Document
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		docs, err = s.documentRepo.List(ctx, tx, &id)
		if err != nil {
			return err
		}
		return s.equipmentRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	for _, d := range docs {
		if err := s.fileStorage.Delete(d.FilePath); err != nil {
			s.logger.Warn("failed to remove stored file of deleted equipment",
				zap.Uint64("equipment_id", id),
				zap.Uint64("document_id", d.ID),
				zap.String("path", d.FilePath),
				zap.Error(err),
			)
		}
	}
	s.logger.Info("equipment deleted", zap.Uint64("id", id), zap.Int("documents", len(docs)))
	return nil
}

func (s *EquipmentService) publishCalibrated(ctx context.Context, id uint64, on time.Time, source string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.EquipmentCalibratedEvent{EquipmentID: id, CalibratedOn: on, Source: source})
}

func equipmentFromDTO(p dto.CreateEquipmentDTO) (entities.Equipment, error) {
	e := entities.Equipment{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Stock:       utils.SafeDeref(p.Stock),
		Brand:       p.Brand,
		Model:       p.Model,
		Category:    constants.EquipmentCategory(p.Category),
		Subcategory: p.Subcategory,
		Location:    p.Location,
		Responsible: p.Responsible,
		Status:      constants.EquipmentStatus(p.Status),
	}
	if e.Name == "" {
		return e, apperrors.NewInvalidInputError("name is required")
	}
	if p.Stock == nil || *p.Stock < 0 {
		return e, apperrors.NewInvalidInputError("stock must be a non-negative number")
	}
	if !e.Category.Valid() {
		return e, apperrors.NewInvalidInputError("unknown category %q", p.Category)
	}
	if e.Status == "" {
		e.Status = constants.StatusActive
	}
	if !e.Status.Valid() {
		return e, apperrors.NewInvalidInputError("unknown status %q", p.Status)
	}

	var err error
	if e.AcquisitionDate, err = utils.ParseNullDate(p.AcquisitionDate); err != nil {
		return e, apperrors.NewInvalidInputError("acquisition_date: %v", err)
	}
	if e.LastCalibration, err = utils.ParseNullDate(p.LastCalibration); err != nil {
		return e, apperrors.NewInvalidInputError("last_calibration: %v", err)
	}
	if e.NextCalibration, err = utils.ParseNullDate(p.NextCalibration); err != nil {
		return e, apperrors.NewInvalidInputError("next_calibration: %v", err)
	}
	return e, nil
}

func equipmentToDTO(e *entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Stock:           e.Stock,
		Brand:           e.Brand,
		Model:           e.Model,
		Category:        string(e.Category),
		CategoryLabel:   e.Category.Label(),
		Subcategory:     e.Subcategory,
		Location:        e.Location,
		Responsible:     e.Responsible,
		AcquisitionDate: utils.NullDateString(e.AcquisitionDate),
		Status:          string(e.Status),
		LastCalibration: utils.NullDateString(e.LastCalibration),
		NextCalibration: utils.NullDateString(e.NextCalibration),
		CreatedAt:       e.CreatedAt.Format(constants.DateTimeLayout),
		UpdatedAt:       e.UpdatedAt.Format(constants.DateTimeLayout),
	}
}
