package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/filter"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/database/postgresql"
	apperrors "inventory-system/pkg/errors"
)

// setupTestDB starts PostgreSQL in a container and applies the migrations.
// Skipped unless TEST_INTEGRATION is set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("integration test skipped: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("inventory_test"),
		postgres.WithUsername("inventory"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgresql.ConnectDB(ctx, dsn, 4, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgresql.Migrate(ctx, pool, zap.NewNop()))
	return pool
}

func day(y int, m time.Month, d int) null.Time {
	return null.TimeFrom(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestRepositories_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	equipmentRepo := NewEquipmentRepository(pool, logger)
	documentRepo := NewDocumentRepository(pool, logger)
	calibrationRepo := NewCalibrationRepository(pool, logger)
	txManager := NewTxManager(pool)

	fixtures := []entities.Equipment{
		{Name: "Balance 50%", Stock: 5, Category: constants.CategoryField, Brand: null.StringFrom("ACME Labs"), Status: constants.StatusActive},
		{Name: "Oven", Stock: 15, Category: constants.CategoryCentralLab, Brand: null.StringFrom("acme"), Status: constants.StatusActive,
			NextCalibration: day(2026, 6, 1)},
		{Name: "Probe_1", Stock: 5, Category: constants.CategoryField, Model: null.StringFrom("P-1"), Status: constants.StatusInactive},
	}
	var ids []uint64
	for _, e := range fixtures {
		id, err := equipmentRepo.Create(ctx, nil, e)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("pushdown agrees with in-memory filtering", func(t *testing.T) {
		all, err := equipmentRepo.List(ctx, filter.EquipmentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Balance 50%", "Oven", "Probe_1"}, []string{all[0].Name, all[1].Name, all[2].Name})

		filters := []filter.EquipmentFilter{
			{Category: "field"},
			{Stock: "5"},
			{Brand: "acme"},
			{Name: "50%"},
			{Name: "e_1"},
			{Category: "field", Brand: "acme"},
			{Model: "p-"},
		}
		for _, f := range filters {
			pushed, err := equipmentRepo.List(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, f.Apply(all), pushed, "%+v", f)
		}
	})

	t.Run("listing is ordered by name then id", func(t *testing.T) {
		dupID, err := equipmentRepo.Create(ctx, nil, entities.Equipment{Name: "Autoclave", Stock: 1,
			Category: constants.CategoryCentralLab, Status: constants.StatusActive})
		require.NoError(t, err)
		twinID, err := equipmentRepo.Create(ctx, nil, entities.Equipment{Name: "Oven", Stock: 2,
			Category: constants.CategoryCentralLab, Status: constants.StatusActive})
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, equipmentRepo.Delete(ctx, nil, dupID))
			require.NoError(t, equipmentRepo.Delete(ctx, nil, twinID))
		})

		all, err := equipmentRepo.List(ctx, filter.EquipmentFilter{})
		require.NoError(t, err)
		var got []uint64
		for _, e := range all {
			got = append(got, e.ID)
		}
		assert.Equal(t, []uint64{dupID, ids[0], ids[1], twinID, ids[2]}, got)
	})

	t.Run("update and advance calibration", func(t *testing.T) {
		e, err := equipmentRepo.FindByID(ctx, nil, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "2026-06-01", e.NextCalibration.Time.Format(constants.DateLayout))

		e.LastCalibration = day(2025, 6, 1)
		require.NoError(t, equipmentRepo.Update(ctx, nil, ids[1], *e))

		changed, err := equipmentRepo.AdvanceLastCalibration(ctx, nil, ids[1], time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.False(t, changed, "older date does not move the calibration back")

		changed, err = equipmentRepo.AdvanceLastCalibration(ctx, nil, ids[1], time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, changed)

		assert.ErrorIs(t, equipmentRepo.Update(ctx, nil, 999999, *e), apperrors.ErrNotFound)
	})

	t.Run("delete cascades to documents and history", func(t *testing.T) {
		docID, err := documentRepo.Create(ctx, entities.Document{
			EquipmentID:  null.Uint64From(ids[0]),
			Type:         constants.DocumentCertificate,
			FilePath:     "certificates/a.pdf",
			OriginalName: "a.pdf",
		})
		require.NoError(t, err)
		orphanID, err := documentRepo.Create(ctx, entities.Document{
			Type:         constants.DocumentManual,
			FilePath:     "manuals/m.pdf",
			OriginalName: "m.pdf",
		})
		require.NoError(t, err)
		_, err = calibrationRepo.Create(ctx, nil, entities.CalibrationRecord{EquipmentID: ids[0], CalibratedOn: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)

		doc, err := documentRepo.FindByID(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "Balance 50%", doc.EquipmentName.String)

		err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			docs, err := documentRepo.List(ctx, tx, &ids[0])
			if err != nil {
				return err
			}
			assert.Len(t, docs, 1)
			return equipmentRepo.Delete(ctx, tx, ids[0])
		})
		require.NoError(t, err)

		docs, err := documentRepo.List(ctx, nil, nil)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, orphanID, docs[0].ID)
		assert.False(t, docs[0].EquipmentName.Valid)

		_, err = documentRepo.FindByID(ctx, docID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, documentRepo.Delete(ctx, docID), apperrors.ErrNotFound)

		history, err := calibrationRepo.ListByEquipment(ctx, ids[0])
		require.NoError(t, err)
		assert.Empty(t, history)

		assert.ErrorIs(t, equipmentRepo.Delete(ctx, nil, ids[0]), apperrors.ErrNotFound)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		errAbort := errors.New("abort")
		err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			if err := equipmentRepo.Delete(ctx, tx, ids[2]); err != nil {
				return err
			}
			return errAbort
		})
		assert.Same(t, errAbort, err)

		assert.Panics(t, func() {
			_ = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
				if err := equipmentRepo.Delete(ctx, tx, ids[2]); err != nil {
					return err
				}
				panic("abort")
			})
		})

		e, err := equipmentRepo.FindByID(ctx, nil, ids[2])
		require.NoError(t, err)
		assert.Equal(t, "Probe_1", e.Name)
	})
}
