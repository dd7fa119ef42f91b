package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceRepositoryInterface - проверки существования строк справочников,
// которыми владеют другие подсистемы (пользователи, устройства, ПО, подрядчики).
type ReferenceRepositoryInterface interface {
	UserExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	DeviceExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	SoftwareExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	VendorExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
}

type ReferenceRepository struct {
	storage *pgxpool.Pool
}

func NewReferenceRepository(storage *pgxpool.Pool) ReferenceRepositoryInterface {
	return &ReferenceRepository{storage: storage}
}

func (r *ReferenceRepository) UserExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return r.exists(ctx, tx, "users", "id_users", id)
}

func (r *ReferenceRepository) DeviceExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return r.exists(ctx, tx, "devices", "id_devices", id)
}

func (r *ReferenceRepository) SoftwareExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return r.exists(ctx, tx, "software", "id_software", id)
}

func (r *ReferenceRepository) VendorExists(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	return r.exists(ctx, tx, "vendors", "id_vendor", id)
}

// exists блокирует найденную строку FOR SHARE до конца транзакции, чтобы
// справочник не удалили между проверкой и вставкой ссылки на него.
func (r *ReferenceRepository) exists(ctx context.Context, tx pgx.Tx, table, column string, id uint64) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1", table, column)
	if tx != nil {
		query += " FOR SHARE"
	}

	var one int
	err := pick(r.storage, tx).QueryRow(ctx, query, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка проверки %s(%d): %w", table, id, err)
	}
	return true, nil
}
