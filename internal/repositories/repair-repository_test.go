package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"
)

func createRepair(t *testing.T, pool *pgxpool.Pool, s seeded, title, status string) *entities.RepairRequest {
	t.Helper()
	repo := NewRepairRepository(pool)
	history := NewRepairHistoryRepository(pool)

	var created *entities.RepairRequest
	err := runTx(t, pool, func(tx pgx.Tx) error {
		var err error
		created, err = repo.CreateInTx(context.Background(), tx, &entities.RepairRequest{
			IDDevices:        s.deviceID,
			ReportedBy:       s.userID,
			Title:            title,
			IssueDescription: "Máy không khởi động",
			Severity:         "Thấp",
			Priority:         "Bình thường",
			Status:           status,
		})
		if err != nil {
			return err
		}
		_, err = history.CreateInTx(context.Background(), tx, &entities.RepairHistory{
			IDRepair:  created.IDRepair,
			ActorUser: s.userID,
			NewStatus: status,
		})
		return err
	})
	require.NoError(t, err)
	return created
}

func TestRepairRepository_Integration_CreateAndStatus(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	repo := NewRepairRepository(pool)
	history := NewRepairHistoryRepository(pool)
	ctx := context.Background()

	created := createRepair(t, pool, s, "Won't boot", "Được yêu cầu")
	assert.Equal(t, "Được yêu cầu", created.Status)
	assert.False(t, created.DateReported.IsZero())

	err := runTx(t, pool, func(tx pgx.Tx) error {
		locked, err := repo.FindForUpdateInTx(ctx, tx, created.IDRepair)
		if err != nil {
			return err
		}
		if err := repo.UpdateStatusInTx(ctx, tx, locked.IDRepair, "Đã duyệt", &s.otherUserID); err != nil {
			return err
		}
		old := locked.Status
		_, err = history.CreateInTx(ctx, tx, &entities.RepairHistory{
			IDRepair: locked.IDRepair, ActorUser: s.otherUserID, OldStatus: &old, NewStatus: "Đã duyệt",
		})
		return err
	})
	require.NoError(t, err)

	view, err := repo.FindByID(ctx, created.IDRepair)
	require.NoError(t, err)
	assert.Equal(t, "Đã duyệt", view.Status)
	require.NotNil(t, view.ApprovedBy)
	assert.Equal(t, s.otherUserID, *view.ApprovedBy)
	require.NotNil(t, view.DeviceName)
	assert.Equal(t, "Laptop Dell 7490", *view.DeviceName)

	entries, err := history.ListByRepair(ctx, created.IDRepair)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].OldStatus)
	require.NotNil(t, entries[1].OldStatus)
	assert.Equal(t, "Được yêu cầu", *entries[1].OldStatus)

	_, err = repo.FindByID(ctx, 999999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepairRepository_Integration_RollbackKeepsTicketAndHistoryConsistent(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	repo := NewRepairRepository(pool)
	ctx := context.Background()

	created := createRepair(t, pool, s, "Rollback", "Đang xử lý")

	err := runTx(t, pool, func(tx pgx.Tx) error {
		if err := repo.UpdateStatusInTx(ctx, tx, created.IDRepair, "Hoàn tất", nil); err != nil {
			return err
		}
		// запись истории с несуществующим автором нарушает FK - весь блок откатывается
		_, err := NewRepairHistoryRepository(pool).CreateInTx(ctx, tx, &entities.RepairHistory{
			IDRepair: created.IDRepair, ActorUser: 424242, NewStatus: "Hoàn tất",
		})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	view, err := repo.FindByID(ctx, created.IDRepair)
	require.NoError(t, err)
	assert.Equal(t, "Đang xử lý", view.Status)
	assert.Equal(t, 1, countRows(t, pool, "SELECT COUNT(*) FROM repair_history WHERE id_repair = $1", created.IDRepair))
}

func TestRepairDetailRepository_Integration_Upsert(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	details := NewRepairDetailRepository(pool)
	ctx := context.Background()

	created := createRepair(t, pool, s, "Detail", "Đang xử lý")

	labor := 100.5
	var inserted *entities.RepairDetail
	require.NoError(t, runTx(t, pool, func(tx pgx.Tx) error {
		var err error
		inserted, err = details.UpsertInTx(ctx, tx, created.IDRepair, entities.RepairDetailPatch{LaborCost: &labor})
		return err
	}))
	assert.Equal(t, "Internal", inserted.RepairType)
	assert.Equal(t, 100.5, inserted.LaborCost)
	assert.Equal(t, 0.0, inserted.PartsCost)
	assert.Equal(t, 100.5, inserted.TotalCost())

	parts := 49.5
	external := "External"
	var updated *entities.RepairDetail
	require.NoError(t, runTx(t, pool, func(tx pgx.Tx) error {
		var err error
		updated, err = details.UpsertInTx(ctx, tx, created.IDRepair, entities.RepairDetailPatch{PartsCost: &parts, RepairType: &external})
		return err
	}))
	assert.Equal(t, inserted.IDRepairDetail, updated.IDRepairDetail, "одна строка на заявку")
	assert.Equal(t, 100.5, updated.LaborCost, "непереданное поле сохраняется")
	assert.Equal(t, 150.0, updated.TotalCost())
	assert.Equal(t, "External", updated.RepairType)

	negative := -1.0
	err := runTx(t, pool, func(tx pgx.Tx) error {
		_, err := details.UpsertInTx(ctx, tx, created.IDRepair, entities.RepairDetailPatch{OtherCost: &negative})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	found, err := details.FindByRepairID(ctx, nil, created.IDRepair)
	require.NoError(t, err)
	assert.Equal(t, 0.0, found.OtherCost)
}

func TestRepairChildren_Integration_PartsAndFiles(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	partsRepo := NewRepairPartRepository(pool)
	filesRepo := NewRepairFileRepository(pool)
	ctx := context.Background()

	created := createRepair(t, pool, s, "Children", "Đang xử lý")

	n, err := partsRepo.CreateBatchInTx(ctx, nil, created.IDRepair, []entities.RepairPartUsed{
		{PartName: "SSD 512GB", Quantity: 1, UnitCost: 60},
		{PartName: "RAM 8GB", Quantity: 2, UnitCost: 25},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	parts, err := partsRepo.ListByRepair(ctx, created.IDRepair)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, 50.0, parts[1].LineCost())

	require.NoError(t, partsRepo.Delete(ctx, created.IDRepair, parts[0].IDPart))
	assert.ErrorIs(t, partsRepo.Delete(ctx, created.IDRepair, parts[0].IDPart), apperrors.ErrNotFound)

	mime := "image/png"
	file, err := filesRepo.CreateInTx(ctx, nil, &entities.RepairFile{
		IDRepair: created.IDRepair, FilePath: "repairs/2024/01/01/x.png", FileName: "x.png",
		MimeType: &mime, FileSize: 10, UploadedBy: &s.userID,
	})
	require.NoError(t, err)

	deleted, err := filesRepo.DeleteReturning(ctx, created.IDRepair, file.IDFile)
	require.NoError(t, err)
	assert.Equal(t, "repairs/2024/01/01/x.png", deleted.FilePath)

	_, err = filesRepo.DeleteReturning(ctx, created.IDRepair, file.IDFile)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepairRepository_Integration_ListFilters(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	repo := NewRepairRepository(pool)
	ctx := context.Background()

	createRepair(t, pool, s, "Màn hình nhấp nháy", "Đang xử lý")
	createRepair(t, pool, s, "Bàn phím hỏng", "Đã hủy")
	createRepair(t, pool, s, "Pin chai", "Hoàn tất")
	createRepair(t, pool, s, "Pin còn 100% nhưng tắt máy", "Đang xử lý")

	list, total, err := repo.List(ctx, entities.RepairListFilter{ExcludeStatusLabels: []string{"Đã hủy"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, list, 3)

	// % из ввода - обычный символ, а не шаблон
	list, total, err = repo.List(ctx, entities.RepairListFilter{Search: "100%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Pin còn 100% nhưng tắt máy", list[0].Title)

	_, total, err = repo.List(ctx, entities.RepairListFilter{Search: "%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	list, total, err = repo.List(ctx, entities.RepairListFilter{Search: "phím", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Bàn phím hỏng", list[0].Title)

	_, total, err = repo.List(ctx, entities.RepairListFilter{StatusLabels: []string{"Hoàn tất"}, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	future := time.Now().Add(24 * time.Hour)
	list, total, err = repo.List(ctx, entities.RepairListFilter{DateFrom: &future})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}
