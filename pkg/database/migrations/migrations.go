package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var migrationsFS embed.FS

// Up применяет все неприменённые миграции. Пул используется через database/sql,
// так как goose работает только с *sql.DB.
func Up(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationsFS)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать миграции: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("не удалось получить версию схемы: %w", err)
	}

	logger.Info("Миграции применены", zap.Int("applied", len(results)), zap.Int64("version", version))
	return nil
}
