package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"inventory-system/internal/alerts"
	"inventory-system/internal/filter"
	"inventory-system/internal/reports"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/filestorage"
)

var (
	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_reports_generated_total",
		Help: "Reports generated, by kind and format.",
	}, []string{"kind", "format"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_report_duration_seconds",
		Help:    "Time spent rendering a report.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "format"})
)

type ReportServiceInterface interface {
	// Generate renders a complete artifact. The filter is only used by the
	// filtered inventory.
	Generate(ctx context.Context, kind reports.Kind, format reports.Format, f filter.EquipmentFilter) (*reports.Artifact, error)
	// StreamPhotos writes the photo archive to w as it is built.
	StreamPhotos(ctx context.Context, w io.Writer) error
}

type ReportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	documentRepo  repositories.DocumentRepositoryInterface
	evaluator     *alerts.Evaluator
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewReportService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	documentRepo repositories.DocumentRepositoryInterface,
	evaluator *alerts.Evaluator,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		equipmentRepo: equipmentRepo,
		documentRepo:  documentRepo,
		evaluator:     evaluator,
		fileStorage:   fileStorage,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *ReportService) Generate(ctx context.Context, kind reports.Kind, format reports.Format, f filter.EquipmentFilter) (*reports.Artifact, error) {
	if err := reports.Check(kind, format); err != nil {
		return nil, err
	}
	if kind == reports.KindPhotos {
		return nil, fmt.Errorf("photo archive is streamed, not generated")
	}
	start := time.Now()

	table, layout, name, err := s.table(ctx, kind, f)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case reports.FormatPDF:
		body, err = reports.RenderPDF(table, layout)
	default:
		body, err = reports.RenderXLSX(table, sheetName(kind))
	}
	if err != nil {
		s.logger.Error("failed to render report", zap.String("kind", string(kind)), zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}

	reportsGenerated.WithLabelValues(string(kind), string(format)).Inc()
	reportDuration.WithLabelValues(string(kind), string(format)).Observe(time.Since(start).Seconds())
	s.logger.Info("report generated",
		zap.String("kind", string(kind)),
		zap.String("format", string(format)),
		zap.Int("rows", len(table.Rows)),
	)

	return &reports.Artifact{
		FileName:    name + "." + string(format),
		ContentType: reports.ContentType(format),
		Body:        body,
	}, nil
}

// table loads the rows of a kind. It returns the PDF layout and the file
// name without extension.
func (s *ReportService) table(ctx context.Context, kind reports.Kind, f filter.EquipmentFilter) (reports.Table, reports.Layout, string, error) {
	switch kind {
	case reports.KindInventory:
		items, err := s.equipmentRepo.List(ctx, filter.EquipmentFilter{})
		if err != nil {
			return reports.Table{}, nil, "", err
		}
		return reports.InventoryTable(items), reports.InventoryLayout, "inventory", nil

	case reports.KindInventoryFiltered:
		items, err := s.equipmentRepo.List(ctx, f)
		if err != nil {
			return reports.Table{}, nil, "", err
		}
		label := f.Label()
		return reports.FilteredInventoryTable(items, label), reports.FilteredInventoryLayout, "inventory_" + label, nil

	case reports.KindLocations:
		items, err := s.equipmentRepo.List(ctx, filter.EquipmentFilter{})
		if err != nil {
			return reports.Table{}, nil, "", err
		}
		return reports.LocationsTable(items), nil, "locations", nil

	case reports.KindCalibrationStale:
		items, err := s.equipmentRepo.List(ctx, filter.EquipmentFilter{})
		if err != nil {
			return reports.Table{}, nil, "", err
		}
		stale := s.evaluator.CalibrationStale(items, s.now())
		return reports.CalibrationStaleTable(stale), nil, "calibration_stale", nil

	case reports.KindDocuments:
		docs, err := s.documentRepo.List(ctx, nil, nil)
		if err != nil {
			return reports.Table{}, nil, "", err
		}
		return reports.DocumentsTable(docs), reports.DocumentsLayout, "documents", nil
	}
	return reports.Table{}, nil, "", fmt.Errorf("no table for report kind %q", kind)
}

func (s *ReportService) StreamPhotos(ctx context.Context, w io.Writer) error {
	n, err := reports.WritePhotoArchive(ctx, w, s.fileStorage.FS(), s.logger)
	if err != nil {
		s.logger.Error("photo archive interrupted", zap.Int("entries", n), zap.Error(err))
		return err
	}
	reportsGenerated.WithLabelValues(string(reports.KindPhotos), string(reports.FormatZIP)).Inc()
	s.logger.Info("photo archive streamed", zap.Int("entries", n))
	return nil
}

func sheetName(kind reports.Kind) string {
	switch kind {
	case reports.KindLocations:
		return "Locations"
	case reports.KindCalibrationStale:
		return "Calibration"
	case reports.KindDocuments:
		return "Documents"
	default:
		return "Inventory"
	}
}
