package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
	"repair-system/pkg/constants"
)

const ConflictActiveInstallation = "Phần mềm đang active trên thiết bị này"

const deviceSoftwareSelectFields = `ds.id_device_software, ds.id_devices, ds.id_software, ds.status,
	ds.install_date, ds.uninstall_date, ds.installed_by, ds.license_key, ds.note,
	s.name AS software_name, s.version AS software_version, d.name AS device_name`

const deviceSoftwareJoinClause = `device_software ds
	JOIN software s ON s.id_software = ds.id_software
	JOIN devices d ON d.id_devices = ds.id_devices`

const deviceSoftwareReturning = `RETURNING id_device_software, id_devices, id_software, status,
	install_date, uninstall_date, installed_by, license_key, note`

type DeviceSoftwareRepositoryInterface interface {
	HasInstalledForUpdateInTx(ctx context.Context, tx pgx.Tx, deviceID, softwareID uint64) (bool, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.DeviceSoftware) (*entities.DeviceSoftware, error)
	MarkUninstalled(ctx context.Context, deviceID, softwareID uint64) (*entities.DeviceSoftware, error)
	ListByDevice(ctx context.Context, deviceID uint64, includeUninstalled bool) ([]entities.DeviceSoftware, error)
	ListBySoftware(ctx context.Context, softwareID uint64) ([]entities.DeviceSoftware, error)
}

type DeviceSoftwareRepository struct {
	storage *pgxpool.Pool
}

func NewDeviceSoftwareRepository(storage *pgxpool.Pool) DeviceSoftwareRepositoryInterface {
	return &DeviceSoftwareRepository{storage: storage}
}

func scanDeviceSoftwareBase(row pgx.Row) (*entities.DeviceSoftware, error) {
	var ds entities.DeviceSoftware
	err := row.Scan(
		&ds.IDDeviceSoftware, &ds.IDDevices, &ds.IDSoftware, &ds.Status,
		&ds.InstallDate, &ds.UninstallDate, &ds.InstalledBy, &ds.LicenseKey, &ds.Note,
	)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// HasInstalledForUpdateInTx - быстрая проверка под блокировкой; окончательное
// решение принимает частичный уникальный индекс ux_device_software_installed.
func (r *DeviceSoftwareRepository) HasInstalledForUpdateInTx(ctx context.Context, tx pgx.Tx, deviceID, softwareID uint64) (bool, error) {
	query := `SELECT id_device_software FROM device_software
		WHERE id_devices = $1 AND id_software = $2 AND status = $3
		FOR UPDATE`

	var id uint64
	err := tx.QueryRow(ctx, query, deviceID, softwareID, constants.SoftwareStatusInstalled).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка проверки активной установки: %w", err)
	}
	return true, nil
}

func (r *DeviceSoftwareRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.DeviceSoftware) (*entities.DeviceSoftware, error) {
	query := `INSERT INTO device_software
		(id_devices, id_software, status, install_date, installed_by, license_key, note)
		VALUES ($1, $2, $3, NOW(), $4, $5, $6) ` + deviceSoftwareReturning

	created, err := scanDeviceSoftwareBase(tx.QueryRow(ctx, query,
		entity.IDDevices, entity.IDSoftware, constants.SoftwareStatusInstalled,
		entity.InstalledBy, entity.LicenseKey, entity.Note,
	))
	if err != nil {
		return nil, mapPgError(err, ConflictActiveInstallation)
	}
	return created, nil
}

func (r *DeviceSoftwareRepository) MarkUninstalled(ctx context.Context, deviceID, softwareID uint64) (*entities.DeviceSoftware, error) {
	query := `UPDATE device_software SET status = $3, uninstall_date = NOW()
		WHERE id_devices = $1 AND id_software = $2 AND status = $4 ` + deviceSoftwareReturning

	updated, err := scanDeviceSoftwareBase(r.storage.QueryRow(ctx, query,
		deviceID, softwareID, constants.SoftwareStatusUninstalled, constants.SoftwareStatusInstalled,
	))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return updated, nil
}

func (r *DeviceSoftwareRepository) ListByDevice(ctx context.Context, deviceID uint64, includeUninstalled bool) ([]entities.DeviceSoftware, error) {
	builder := psql.Select(deviceSoftwareSelectFields).
		From(deviceSoftwareJoinClause).
		Where("ds.id_devices = ?", deviceID).
		OrderBy("ds.install_date DESC", "ds.id_device_software DESC")
	if !includeUninstalled {
		builder = builder.Where("ds.status = ?", constants.SoftwareStatusInstalled)
	}
	return r.list(ctx, builder.ToSql)
}

func (r *DeviceSoftwareRepository) ListBySoftware(ctx context.Context, softwareID uint64) ([]entities.DeviceSoftware, error) {
	builder := psql.Select(deviceSoftwareSelectFields).
		From(deviceSoftwareJoinClause).
		Where("ds.id_software = ?", softwareID).
		Where("ds.status = ?", constants.SoftwareStatusInstalled).
		OrderBy("d.name", "ds.id_devices")
	return r.list(ctx, builder.ToSql)
}

func (r *DeviceSoftwareRepository) list(ctx context.Context, toSQL func() (string, []interface{}, error)) ([]entities.DeviceSoftware, error) {
	query, args, err := toSQL()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса установок ПО: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения установок ПО: %w", err)
	}
	defer rows.Close()

	result := make([]entities.DeviceSoftware, 0)
	for rows.Next() {
		var ds entities.DeviceSoftware
		if err := rows.Scan(
			&ds.IDDeviceSoftware, &ds.IDDevices, &ds.IDSoftware, &ds.Status,
			&ds.InstallDate, &ds.UninstallDate, &ds.InstalledBy, &ds.LicenseKey, &ds.Note,
			&ds.SoftwareName, &ds.SoftwareVersion, &ds.DeviceName,
		); err != nil {
			return nil, err
		}
		result = append(result, ds)
	}
	return result, rows.Err()
}
