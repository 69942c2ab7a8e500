package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/alerts"
	"inventory-system/internal/entities"
	"inventory-system/internal/filter"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

type AlertServiceInterface interface {
	Evaluate(ctx context.Context) (*alerts.Result, error)
	EvaluateKind(ctx context.Context, kind string) (interface{}, error)
	Acknowledge(ctx context.Context, kind string, userID uint64) error
}

// AlertService reads the current inventory on every call and hands it to
// the evaluator. Nothing is cached.
type AlertService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	documentRepo  repositories.DocumentRepositoryInterface
	evaluator     *alerts.Evaluator
	logger        *zap.Logger
	now           func() time.Time
}

func NewAlertService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	documentRepo repositories.DocumentRepositoryInterface,
	evaluator *alerts.Evaluator,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		equipmentRepo: equipmentRepo,
		documentRepo:  documentRepo,
		evaluator:     evaluator,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *AlertService) Evaluate(ctx context.Context) (*alerts.Result, error) {
	equipment, err := s.equipmentRepo.List(ctx, filter.EquipmentFilter{})
	if err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	res := s.evaluator.Evaluate(equipment, docs, s.now())
	return &res, nil
}

// EvaluateKind loads only what the kind needs.
func (s *AlertService) EvaluateKind(ctx context.Context, kind string) (interface{}, error) {
	k := constants.AlertKind(kind)
	if !k.Valid() {
		return nil, apperrors.SelectorError("alert kind", kind)
	}

	var (
		equipment []entities.Equipment
		docs      []entities.Document
		err       error
	)
	if k == constants.AlertDocumentExpired {
		docs, err = s.documentRepo.List(ctx, nil, nil)
	} else {
		equipment, err = s.equipmentRepo.List(ctx, filter.EquipmentFilter{})
	}
	if err != nil {
		return nil, err
	}
	return s.evaluator.EvaluateKind(k, equipment, docs, s.now())
}

// Acknowledge accepts an acknowledgement for a kind. Acknowledgements are not
// stored yet; the call only validates and logs.
func (s *AlertService) Acknowledge(ctx context.Context, kind string, userID uint64) error {
	if !constants.AlertKind(kind).Valid() {
		return apperrors.SelectorError("alert kind", kind)
	}
	s.logger.Info("alert acknowledged", zap.String("kind", kind), zap.Uint64("user_id", userID))
	return nil
}
