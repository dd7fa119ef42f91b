package main

import (
	"context"
	"flag"
	"log"

	"repair-system/pkg/config"
	"repair-system/pkg/database/migrations"
	"repair-system/pkg/database/postgresql"
	applogger "repair-system/pkg/logger"
	"repair-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runReference := flag.Bool("reference", false, "Наполнить справочники (пользователи, устройства, ПО, подрядчики)")
	runDemo := flag.Bool("demo", false, "Создать демонстрационные выдачи, установки ПО и заявки")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -reference -demo)")

	flag.Parse()

	if !*runReference && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -reference")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	logger, err := applogger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("❌ Не удалось создать логгер: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool, logger); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runReference {
		if err := seeders.SeedReferenceData(ctx, dbPool); err != nil {
			log.Fatalf("❌ Ошибка наполнения справочников: %v", err)
		}
		log.Println("======================================================")
	}

	// демо-данные ссылаются на справочники
	if *runAll || *runDemo {
		if err := seeders.SeedDemoData(ctx, dbPool, cfg, logger); err != nil {
			log.Fatalf("❌ Ошибка наполнения демо-данных: %v", err)
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
