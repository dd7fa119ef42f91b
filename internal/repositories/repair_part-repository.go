package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

type RepairPartRepositoryInterface interface {
	CreateBatchInTx(ctx context.Context, tx pgx.Tx, repairID uint64, parts []entities.RepairPartUsed) (int, error)
	Delete(ctx context.Context, repairID, partID uint64) error
	ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairPartUsed, error)
}

type RepairPartRepository struct {
	storage *pgxpool.Pool
}

func NewRepairPartRepository(storage *pgxpool.Pool) RepairPartRepositoryInterface {
	return &RepairPartRepository{storage: storage}
}

// CreateBatchInTx вставляет все строки одним INSERT.
func (r *RepairPartRepository) CreateBatchInTx(ctx context.Context, tx pgx.Tx, repairID uint64, parts []entities.RepairPartUsed) (int, error) {
	if len(parts) == 0 {
		return 0, nil
	}

	builder := psql.Insert("repair_part_used").
		Columns("id_repair", "part_name", "quantity", "unit_cost", "note")
	for _, p := range parts {
		builder = builder.Values(repairID, p.PartName, p.Quantity, p.UnitCost, p.Note)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки INSERT запчастей: %w", err)
	}

	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return 0, mapPgError(err, "")
	}
	return int(tag.RowsAffected()), nil
}

func (r *RepairPartRepository) Delete(ctx context.Context, repairID, partID uint64) error {
	tag, err := r.storage.Exec(ctx,
		"DELETE FROM repair_part_used WHERE id_part = $1 AND id_repair = $2", partID, repairID)
	if err != nil {
		return mapPgError(err, "")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "")
	}
	return nil
}

func (r *RepairPartRepository) ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairPartUsed, error) {
	rows, err := r.storage.Query(ctx, `SELECT id_part, id_repair, part_name, quantity, unit_cost, note, created_at
		FROM repair_part_used WHERE id_repair = $1 ORDER BY id_part`, repairID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения запчастей: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RepairPartUsed, 0)
	for rows.Next() {
		var p entities.RepairPartUsed
		if err := rows.Scan(&p.IDPart, &p.IDRepair, &p.PartName, &p.Quantity, &p.UnitCost, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
