package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

type ReportRepositoryInterface interface {
	StatusCounts(ctx context.Context) ([]entities.StatusCountRow, error)
	MonthlyCosts(ctx context.Context) ([]entities.MonthlyCostRow, error)
	Totals(ctx context.Context, finalStatusLabels []string) (*entities.InventoryTotals, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) StatusCounts(ctx context.Context) ([]entities.StatusCountRow, error) {
	query, args, err := psql.Select("r.status", "COUNT(*) AS cnt").
		From("repair_request r").
		GroupBy("r.status").
		OrderBy("cnt DESC", "r.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса по статусам: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка группировки по статусам: %w", err)
	}
	defer rows.Close()

	result := make([]entities.StatusCountRow, 0)
	for rows.Next() {
		var row entities.StatusCountRow
		if err := rows.Scan(&row.StatusLabel, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// MonthlyCosts суммирует labor+parts+other по месяцу подачи заявки.
// Заявки без деталей дают 0, но месяц в выборку попадает.
func (r *reportRepository) MonthlyCosts(ctx context.Context) ([]entities.MonthlyCostRow, error) {
	query, args, err := psql.Select(
		"to_char(r.date_reported, 'YYYY-MM') AS month",
		"COALESCE(SUM(COALESCE(rd.labor_cost, 0) + COALESCE(rd.parts_cost, 0) + COALESCE(rd.other_cost, 0)), 0)::float8 AS cost",
	).
		From("repair_request r").
		LeftJoin("repair_detail rd ON rd.id_repair = r.id_repair").
		GroupBy("month").
		OrderBy("month").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса затрат по месяцам: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета затрат по месяцам: %w", err)
	}
	defer rows.Close()

	result := make([]entities.MonthlyCostRow, 0)
	for rows.Next() {
		var row entities.MonthlyCostRow
		if err := rows.Scan(&row.Month, &row.Cost); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) Totals(ctx context.Context, finalStatusLabels []string) (*entities.InventoryTotals, error) {
	openRepairs := psql.Select("COUNT(*)").From("repair_request")
	if len(finalStatusLabels) > 0 {
		openRepairs = openRepairs.Where(sq.NotEq{"status": finalStatusLabels})
	}
	openSQL, openArgs, err := openRepairs.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса открытых заявок: %w", err)
	}

	query := `SELECT
		(SELECT COUNT(*) FROM devices),
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM device_assignments WHERE end_time IS NULL),
		(SELECT COUNT(*) FROM device_software WHERE status = 'installed'),
		(` + openSQL + `)`

	var t entities.InventoryTotals
	err = r.db.QueryRow(ctx, query, openArgs...).Scan(
		&t.Devices, &t.Users, &t.ActiveAssignments, &t.InstalledSoftware, &t.OpenRepairs,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета итогов: %w", err)
	}
	return &t, nil
}
