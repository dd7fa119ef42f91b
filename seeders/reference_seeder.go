package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Справочники принадлежат другим подсистемам, поэтому сидер только дополняет
// их и ничего не удаляет. Повторный запуск безопасен.

func seedUsers(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'users'...")
	for _, u := range usersData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (username, full_name, email) VALUES ($1, $2, $3)
			 ON CONFLICT (username) DO NOTHING`,
			u.Username, u.FullName, u.Email,
		); err != nil {
			return fmt.Errorf("пользователь %s: %w", u.Username, err)
		}
	}
	return nil
}

func seedDevices(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'devices'...")
	for _, d := range devicesData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO devices (name, serial_number, device_type, location)
			 SELECT $1::varchar, $2::varchar, $3::varchar, $4::varchar
			 WHERE NOT EXISTS (SELECT 1 FROM devices WHERE serial_number = $2::varchar)`,
			d.Name, d.SerialNumber, d.DeviceType, d.Location,
		); err != nil {
			return fmt.Errorf("устройство %s: %w", d.SerialNumber, err)
		}
	}
	return nil
}

func seedSoftware(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'software'...")
	for _, s := range softwareData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO software (name, version, publisher)
			 SELECT $1::varchar, $2::varchar, $3::varchar
			 WHERE NOT EXISTS (SELECT 1 FROM software WHERE name = $1::varchar AND version = $2::varchar)`,
			s.Name, s.Version, s.Publisher,
		); err != nil {
			return fmt.Errorf("ПО %s: %w", s.Name, err)
		}
	}
	return nil
}

func seedVendors(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'vendors'...")
	for _, v := range vendorsData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO vendors (name, phone, email)
			 SELECT $1::varchar, $2::varchar, $3::varchar
			 WHERE NOT EXISTS (SELECT 1 FROM vendors WHERE name = $1::varchar)`,
			v.Name, v.Phone, v.Email,
		); err != nil {
			return fmt.Errorf("подрядчик %s: %w", v.Name, err)
		}
	}
	return nil
}

func mapIDsByColumn(ctx context.Context, db *pgxpool.Pool, query string) (map[string]uint64, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]uint64)
	for rows.Next() {
		var key string
		var id uint64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, err
		}
		result[key] = id
	}
	return result, rows.Err()
}
