package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

// ConflictActiveAssignment - сообщение клиенту при повторной выдаче.
const ConflictActiveAssignment = "Thiết bị đang active với người dùng này"

const assignmentSelectFields = `da.id_assignment, da.id_users, da.id_devices, da.start_time, da.end_time,
	u.full_name AS user_full_name, d.name AS device_name`

const assignmentJoinClause = `device_assignments da
	JOIN users u ON u.id_users = da.id_users
	JOIN devices d ON d.id_devices = da.id_devices`

type DeviceAssignmentRepositoryInterface interface {
	HasActiveForUpdateInTx(ctx context.Context, tx pgx.Tx, userID, deviceID uint64) (bool, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, userID, deviceID uint64) (*entities.DeviceAssignment, error)
	CloseActive(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error)
	ActiveUsersOfDevice(ctx context.Context, deviceID uint64) ([]entities.ActiveUser, error)
	ActiveUsers(ctx context.Context) ([]entities.ActiveUser, error)
	ActiveCounts(ctx context.Context) (map[uint64]int, error)
	HistoryOfDevice(ctx context.Context, deviceID uint64) ([]entities.DeviceAssignment, error)
	ActiveDevicesOfUser(ctx context.Context, userID uint64) ([]entities.DeviceAssignment, error)
}

type DeviceAssignmentRepository struct {
	storage *pgxpool.Pool
}

func NewDeviceAssignmentRepository(storage *pgxpool.Pool) DeviceAssignmentRepositoryInterface {
	return &DeviceAssignmentRepository{storage: storage}
}

func scanAssignment(row pgx.Row) (*entities.DeviceAssignment, error) {
	var a entities.DeviceAssignment
	err := row.Scan(
		&a.IDAssignment, &a.IDUsers, &a.IDDevices, &a.StartTime, &a.EndTime,
		&a.UserFullName, &a.DeviceName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAssignments(rows pgx.Rows) ([]entities.DeviceAssignment, error) {
	defer rows.Close()
	result := make([]entities.DeviceAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

// HasActiveForUpdateInTx блокирует активную строку пары, если она есть.
// Это только быстрая проверка: гонку двух вставок закрывает уникальный индекс.
func (r *DeviceAssignmentRepository) HasActiveForUpdateInTx(ctx context.Context, tx pgx.Tx, userID, deviceID uint64) (bool, error) {
	query := `SELECT id_assignment FROM device_assignments
		WHERE id_users = $1 AND id_devices = $2 AND end_time IS NULL
		FOR UPDATE`

	var id uint64
	err := tx.QueryRow(ctx, query, userID, deviceID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка проверки активной выдачи: %w", err)
	}
	return true, nil
}

func (r *DeviceAssignmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	query := `INSERT INTO device_assignments (id_users, id_devices, start_time)
		VALUES ($1, $2, NOW())
		RETURNING id_assignment, id_users, id_devices, start_time, end_time`

	var a entities.DeviceAssignment
	err := tx.QueryRow(ctx, query, userID, deviceID).Scan(
		&a.IDAssignment, &a.IDUsers, &a.IDDevices, &a.StartTime, &a.EndTime,
	)
	if err != nil {
		return nil, mapPgError(err, ConflictActiveAssignment)
	}
	return &a, nil
}

// CloseActive завершает активную выдачу одним UPDATE. Второй параллельный
// вызов не найдет строку с end_time IS NULL и получит ErrNotFound.
func (r *DeviceAssignmentRepository) CloseActive(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	query := `UPDATE device_assignments SET end_time = NOW()
		WHERE id_users = $1 AND id_devices = $2 AND end_time IS NULL
		RETURNING id_assignment, id_users, id_devices, start_time, end_time`

	var a entities.DeviceAssignment
	err := r.storage.QueryRow(ctx, query, userID, deviceID).Scan(
		&a.IDAssignment, &a.IDUsers, &a.IDDevices, &a.StartTime, &a.EndTime,
	)
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return &a, nil
}

func (r *DeviceAssignmentRepository) ActiveUsersOfDevice(ctx context.Context, deviceID uint64) ([]entities.ActiveUser, error) {
	return r.queryActiveUsers(ctx, "AND da.id_devices = $1", deviceID)
}

func (r *DeviceAssignmentRepository) ActiveUsers(ctx context.Context) ([]entities.ActiveUser, error) {
	return r.queryActiveUsers(ctx, "")
}

func (r *DeviceAssignmentRepository) queryActiveUsers(ctx context.Context, extra string, args ...interface{}) ([]entities.ActiveUser, error) {
	query := `SELECT da.id_assignment, da.id_users, da.id_devices, u.username, u.full_name, da.start_time
		FROM device_assignments da
		JOIN users u ON u.id_users = da.id_users
		WHERE da.end_time IS NULL ` + extra + `
		ORDER BY da.id_devices, da.start_time`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных пользователей: %w", err)
	}
	defer rows.Close()

	result := make([]entities.ActiveUser, 0)
	for rows.Next() {
		var u entities.ActiveUser
		if err := rows.Scan(&u.IDAssignment, &u.IDUsers, &u.IDDevices, &u.Username, &u.FullName, &u.StartTime); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *DeviceAssignmentRepository) ActiveCounts(ctx context.Context) (map[uint64]int, error) {
	query := `SELECT id_devices, COUNT(*) FROM device_assignments
		WHERE end_time IS NULL
		GROUP BY id_devices`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета активных выдач: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint64]int)
	for rows.Next() {
		var deviceID uint64
		var cnt int
		if err := rows.Scan(&deviceID, &cnt); err != nil {
			return nil, err
		}
		counts[deviceID] = cnt
	}
	return counts, rows.Err()
}

func (r *DeviceAssignmentRepository) HistoryOfDevice(ctx context.Context, deviceID uint64) ([]entities.DeviceAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE da.id_devices = $1
		ORDER BY da.start_time DESC, da.id_assignment DESC`, assignmentSelectFields, assignmentJoinClause)

	rows, err := r.storage.Query(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории выдач: %w", err)
	}
	return collectAssignments(rows)
}

func (r *DeviceAssignmentRepository) ActiveDevicesOfUser(ctx context.Context, userID uint64) ([]entities.DeviceAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE da.id_users = $1 AND da.end_time IS NULL
		ORDER BY da.start_time DESC`, assignmentSelectFields, assignmentJoinClause)

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения устройств пользователя: %w", err)
	}
	return collectAssignments(rows)
}
