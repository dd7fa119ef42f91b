package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

// RepairHistoryRepositoryInterface - журнал только на добавление:
// методов изменения и удаления нет.
type RepairHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.RepairHistory) (*entities.RepairHistory, error)
	SumCostDeltaInTx(ctx context.Context, tx pgx.Tx, repairID uint64) (float64, error)
	ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairHistory, error)
}

type RepairHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewRepairHistoryRepository(storage *pgxpool.Pool) RepairHistoryRepositoryInterface {
	return &RepairHistoryRepository{storage: storage}
}

func (r *RepairHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.RepairHistory) (*entities.RepairHistory, error) {
	query := `INSERT INTO repair_history (id_repair, actor_user, old_status, new_status, note, cost_delta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id_history, created_at`

	created := *entry
	err := tx.QueryRow(ctx, query,
		entry.IDRepair, entry.ActorUser, entry.OldStatus, entry.NewStatus, entry.Note, entry.CostDelta,
	).Scan(&created.IDHistory, &created.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return &created, nil
}

func (r *RepairHistoryRepository) SumCostDeltaInTx(ctx context.Context, tx pgx.Tx, repairID uint64) (float64, error) {
	var sum float64
	err := pick(r.storage, tx).QueryRow(ctx,
		"SELECT COALESCE(SUM(cost_delta), 0) FROM repair_history WHERE id_repair = $1", repairID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета cost_delta: %w", err)
	}
	return sum, nil
}

func (r *RepairHistoryRepository) ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairHistory, error) {
	query := `SELECT h.id_history, h.id_repair, h.actor_user, h.old_status, h.new_status, h.note,
			h.cost_delta, h.created_at, u.full_name AS actor_name
		FROM repair_history h
		LEFT JOIN users u ON u.id_users = h.actor_user
		WHERE h.id_repair = $1
		ORDER BY h.id_history`

	rows, err := r.storage.Query(ctx, query, repairID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории заявки: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RepairHistory, 0)
	for rows.Next() {
		var h entities.RepairHistory
		if err := rows.Scan(
			&h.IDHistory, &h.IDRepair, &h.ActorUser, &h.OldStatus, &h.NewStatus, &h.Note,
			&h.CostDelta, &h.CreatedAt, &h.ActorName,
		); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
