package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/repositories"
	"repair-system/internal/services"
	"repair-system/pkg/config"
	"repair-system/pkg/enums"
	"repair-system/pkg/eventbus"
	"repair-system/pkg/filestorage"
	"repair-system/pkg/validation"
)

// SeedReferenceData наполняет пользователей, устройства, ПО и подрядчиков.
func SeedReferenceData(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Запуск наполнения справочников...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, step := range []func(context.Context, pgx.Tx) error{seedUsers, seedDevices, seedSoftware, seedVendors} {
		if err := step(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("✅ Наполнение справочников завершено!")
	return nil
}

// SeedDemoData создает демонстрационные выдачи, установки ПО и заявки через
// сервисы, с теми же правилами, что и API.
func SeedDemoData(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	log.Println("▶️  Запуск наполнения демонстрационных данных...")

	users, err := mapIDsByColumn(ctx, db, `SELECT username, id_users FROM users`)
	if err != nil {
		return fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	devices, err := mapIDsByColumn(ctx, db, `SELECT serial_number, id_devices FROM devices WHERE serial_number IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("ошибка получения устройств: %w", err)
	}
	software, err := mapIDsByColumn(ctx, db, `SELECT name, id_software FROM software`)
	if err != nil {
		return fmt.Errorf("ошибка получения ПО: %w", err)
	}

	storage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	txManager := repositories.NewTxManager(db)
	refRepo := repositories.NewReferenceRepository(db)
	validator := validation.New()
	bus := eventbus.New(logger)
	defer bus.Wait()

	assignmentService := services.NewDeviceAssignmentService(txManager, repositories.NewDeviceAssignmentRepository(db), refRepo, bus, logger)
	softwareService := services.NewDeviceSoftwareService(txManager, repositories.NewDeviceSoftwareRepository(db), refRepo, validator, bus, logger)
	repairService := services.NewRepairService(
		txManager,
		repositories.NewRepairRepository(db),
		repositories.NewRepairHistoryRepository(db),
		repositories.NewRepairDetailRepository(db),
		repositories.NewRepairPartRepository(db),
		repositories.NewRepairFileRepository(db),
		refRepo, storage, enums.NewRepairDictionaries(),
		services.NewTransitionPolicy(true), validator, bus, logger,
	)

	admin := users["admin"]

	// выдачи: уже активная выдача - не ошибка для повторного запуска
	for username, serial := range map[string]string{"nv.hung": "DL7490-001", "nv.mai": "TP14-017", "it.lan": "EBX41-05"} {
		if _, err := assignmentService.Checkin(ctx, users[username], devices[serial]); err != nil {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: выдача %s -> %s: %v", serial, username, err)
		}
	}

	for _, name := range []string{"Microsoft Office", "Windows 11 Pro"} {
		for _, serial := range []string{"DL7490-001", "TP14-017"} {
			if _, err := softwareService.InstallSoftware(ctx, devices[serial], software[name], admin, dto.InstallSoftwareDTO{}); err != nil {
				log.Printf("ПРЕДУПРЕЖДЕНИЕ: установка %s на %s: %v", name, serial, err)
			}
		}
	}

	for _, r := range demoRepairsData {
		id, err := repairService.CreateRequest(ctx, users[r.Reporter], dto.CreateRepairDTO{
			DeviceID:         devices[r.DeviceSerial],
			Title:            r.Title,
			IssueDescription: r.Description,
			Severity:         r.Severity,
			Priority:         r.Priority,
		})
		if err != nil {
			return fmt.Errorf("заявка %q: %w", r.Title, err)
		}

		if r.LaborCost > 0 || r.PartsCost > 0 {
			detail := dto.UpsertRepairDetailDTO{}
			detail.LaborCost.SetValid(r.LaborCost)
			detail.PartsCost.SetValid(r.PartsCost)
			if _, err := repairService.UpsertDetail(ctx, id, detail); err != nil {
				return fmt.Errorf("детали заявки #%d: %w", id, err)
			}
		}

		for _, status := range r.Steps {
			if err := repairService.UpdateStatus(ctx, id, admin, status, nil); err != nil {
				return fmt.Errorf("заявка #%d -> %s: %w", id, status, err)
			}
		}
	}

	log.Println("✅ Демонстрационные данные созданы!")
	return nil
}
