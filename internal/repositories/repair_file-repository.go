package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

const repairFileFields = "id_file, id_repair, file_path, file_name, mime_type, file_size, uploaded_by, uploaded_at"

type RepairFileRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, file *entities.RepairFile) (*entities.RepairFile, error)
	DeleteReturning(ctx context.Context, repairID, fileID uint64) (*entities.RepairFile, error)
	ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairFile, error)
}

type RepairFileRepository struct {
	storage *pgxpool.Pool
}

func NewRepairFileRepository(storage *pgxpool.Pool) RepairFileRepositoryInterface {
	return &RepairFileRepository{storage: storage}
}

func scanRepairFile(row pgx.Row) (*entities.RepairFile, error) {
	var f entities.RepairFile
	if err := row.Scan(&f.IDFile, &f.IDRepair, &f.FilePath, &f.FileName, &f.MimeType, &f.FileSize, &f.UploadedBy, &f.UploadedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *RepairFileRepository) CreateInTx(ctx context.Context, tx pgx.Tx, file *entities.RepairFile) (*entities.RepairFile, error) {
	query := `INSERT INTO repair_files (id_repair, file_path, file_name, mime_type, file_size, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + repairFileFields

	created, err := scanRepairFile(pick(r.storage, tx).QueryRow(ctx, query,
		file.IDRepair, file.FilePath, file.FileName, file.MimeType, file.FileSize, file.UploadedBy,
	))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return created, nil
}

// DeleteReturning удаляет запись и возвращает ее, чтобы вызывающий удалил файл с диска.
func (r *RepairFileRepository) DeleteReturning(ctx context.Context, repairID, fileID uint64) (*entities.RepairFile, error) {
	query := "DELETE FROM repair_files WHERE id_file = $1 AND id_repair = $2 RETURNING " + repairFileFields

	deleted, err := scanRepairFile(r.storage.QueryRow(ctx, query, fileID, repairID))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return deleted, nil
}

func (r *RepairFileRepository) ListByRepair(ctx context.Context, repairID uint64) ([]entities.RepairFile, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT "+repairFileFields+" FROM repair_files WHERE id_repair = $1 ORDER BY id_file", repairID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения файлов заявки: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RepairFile, 0)
	for rows.Next() {
		f, err := scanRepairFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *f)
	}
	return result, rows.Err()
}
