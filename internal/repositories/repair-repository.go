package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

const repairTable = "repair_request"

const repairBaseFields = `r.id_repair, r.id_devices, r.reported_by, r.approved_by, r.title, r.issue_description,
	r.severity, r.priority, r.status, r.date_reported, r.date_down, r.expected_date, r.sla_hours, r.last_updated`

const repairViewFields = repairBaseFields + `,
	d.name AS device_name, u.full_name AS reporter_name,
	COALESCE(rd.labor_cost, 0) AS labor_cost, COALESCE(rd.parts_cost, 0) AS parts_cost,
	COALESCE(rd.other_cost, 0) AS other_cost`

const repairViewJoinClause = `repair_request r
	LEFT JOIN devices d ON d.id_devices = r.id_devices
	LEFT JOIN users u ON u.id_users = r.reported_by
	LEFT JOIN repair_detail rd ON rd.id_repair = r.id_repair`

var repairSearchColumns = []string{"r.title", "r.issue_description"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern - шаблон ILIKE для поиска подстроки. Символы % и _ из ввода
// ищутся буквально (вместе с ESCAPE '\').
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

type RepairRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.RepairRequest) (*entities.RepairRequest, error)
	FindByID(ctx context.Context, id uint64) (*entities.RepairRequestView, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.RepairRequest, error)
	ExistsInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, statusLabel string, approvedBy *uint64) error
	TouchInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	List(ctx context.Context, filter entities.RepairListFilter) ([]entities.RepairRequestView, uint64, error)
}

type RepairRepository struct {
	storage *pgxpool.Pool
}

func NewRepairRepository(storage *pgxpool.Pool) RepairRepositoryInterface {
	return &RepairRepository{storage: storage}
}

func scanRepair(row pgx.Row) (*entities.RepairRequest, error) {
	var r entities.RepairRequest
	err := row.Scan(
		&r.IDRepair, &r.IDDevices, &r.ReportedBy, &r.ApprovedBy, &r.Title, &r.IssueDescription,
		&r.Severity, &r.Priority, &r.Status, &r.DateReported, &r.DateDown, &r.ExpectedDate,
		&r.SLAHours, &r.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRepairView(row pgx.Row) (*entities.RepairRequestView, error) {
	var v entities.RepairRequestView
	r := &v.RepairRequest
	err := row.Scan(
		&r.IDRepair, &r.IDDevices, &r.ReportedBy, &r.ApprovedBy, &r.Title, &r.IssueDescription,
		&r.Severity, &r.Priority, &r.Status, &r.DateReported, &r.DateDown, &r.ExpectedDate,
		&r.SLAHours, &r.LastUpdated,
		&v.DeviceName, &v.ReporterName, &v.LaborCost, &v.PartsCost, &v.OtherCost,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *RepairRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entity *entities.RepairRequest) (*entities.RepairRequest, error) {
	query := `INSERT INTO repair_request
		(id_devices, reported_by, title, issue_description, severity, priority, status,
		 date_reported, date_down, expected_date, sla_hours, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), $8, $9, $10, NOW())
		RETURNING id_repair, id_devices, reported_by, approved_by, title, issue_description,
			severity, priority, status, date_reported, date_down, expected_date, sla_hours, last_updated`

	created, err := scanRepair(tx.QueryRow(ctx, query,
		entity.IDDevices, entity.ReportedBy, entity.Title, entity.IssueDescription,
		entity.Severity, entity.Priority, entity.Status,
		entity.DateDown, entity.ExpectedDate, entity.SLAHours,
	))
	if err != nil {
		return nil, mapPgError(err, "Yêu cầu sửa chữa đã tồn tại")
	}
	return created, nil
}

func (r *RepairRepository) FindByID(ctx context.Context, id uint64) (*entities.RepairRequestView, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE r.id_repair = $1", repairViewFields, repairViewJoinClause)

	view, err := scanRepairView(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return view, nil
}

// FindForUpdateInTx блокирует строку заявки до конца транзакции: параллельные
// смены статуса одной заявки выполняются строго по очереди.
func (r *RepairRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.RepairRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM repair_request r WHERE r.id_repair = $1 FOR UPDATE", repairBaseFields)

	found, err := scanRepair(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return found, nil
}

func (r *RepairRepository) ExistsInTx(ctx context.Context, tx pgx.Tx, id uint64) (bool, error) {
	var found bool
	err := pick(r.storage, tx).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM repair_request WHERE id_repair = $1)", id,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки заявки %d: %w", id, err)
	}
	return found, nil
}

// UpdateStatusInTx меняет статус. approvedBy заполняется только при одобрении
// и не затирает уже записанного утвердившего.
func (r *RepairRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, statusLabel string, approvedBy *uint64) error {
	query := `UPDATE repair_request
		SET status = $2, approved_by = COALESCE($3, approved_by), last_updated = NOW()
		WHERE id_repair = $1`

	tag, err := tx.Exec(ctx, query, id, statusLabel, approvedBy)
	if err != nil {
		return mapPgError(err, "")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "")
	}
	return nil
}

func (r *RepairRepository) TouchInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	_, err := pick(r.storage, tx).Exec(ctx, "UPDATE repair_request SET last_updated = NOW() WHERE id_repair = $1", id)
	return err
}

func applyRepairFilter(builder sq.SelectBuilder, filter entities.RepairListFilter) sq.SelectBuilder {
	if len(filter.StatusLabels) > 0 {
		builder = builder.Where(sq.Eq{"r.status": filter.StatusLabels})
	}
	if len(filter.ExcludeStatusLabels) > 0 {
		builder = builder.Where(sq.NotEq{"r.status": filter.ExcludeStatusLabels})
	}
	if len(filter.SeverityLabels) > 0 {
		builder = builder.Where(sq.Eq{"r.severity": filter.SeverityLabels})
	}
	if len(filter.PriorityLabels) > 0 {
		builder = builder.Where(sq.Eq{"r.priority": filter.PriorityLabels})
	}
	if filter.DeviceID != nil {
		builder = builder.Where(sq.Eq{"r.id_devices": *filter.DeviceID})
	}
	if filter.ReportedBy != nil {
		builder = builder.Where(sq.Eq{"r.reported_by": *filter.ReportedBy})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"r.date_reported": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"r.date_reported": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		conditions := make(sq.Or, 0, len(repairSearchColumns))
		for _, col := range repairSearchColumns {
			conditions = append(conditions, sq.Expr(col+` ILIKE ? ESCAPE '\'`, pattern))
		}
		builder = builder.Where(conditions)
	}
	return builder
}

func (r *RepairRepository) List(ctx context.Context, filter entities.RepairListFilter) ([]entities.RepairRequestView, uint64, error) {
	countBuilder := applyRepairFilter(psql.Select("COUNT(*)").From(repairTable+" r"), filter)
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения COUNT-запроса: %w", err)
	}
	if total == 0 {
		return []entities.RepairRequestView{}, 0, nil
	}

	builder := applyRepairFilter(psql.Select(repairViewFields).From(repairViewJoinClause), filter).
		OrderBy("r.date_reported DESC", "r.id_repair DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RepairRequestView, 0, filter.Limit)
	for rows.Next() {
		view, err := scanRepairView(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *view)
	}
	return result, total, rows.Err()
}
