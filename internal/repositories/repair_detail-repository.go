package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"repair-system/internal/entities"
)

const repairDetailFields = `id_repair_detail, id_repair, repair_type, technician_user, id_vendor, start_time, end_time,
	total_labor_hours, labor_cost, parts_cost, other_cost, outcome, warranty_extend_mon, next_maintenance_date`

type RepairDetailRepositoryInterface interface {
	UpsertInTx(ctx context.Context, tx pgx.Tx, repairID uint64, patch entities.RepairDetailPatch) (*entities.RepairDetail, error)
	FindByRepairID(ctx context.Context, tx pgx.Tx, repairID uint64) (*entities.RepairDetail, error)
}

type RepairDetailRepository struct {
	storage *pgxpool.Pool
}

func NewRepairDetailRepository(storage *pgxpool.Pool) RepairDetailRepositoryInterface {
	return &RepairDetailRepository{storage: storage}
}

func scanRepairDetail(row pgx.Row) (*entities.RepairDetail, error) {
	var d entities.RepairDetail
	err := row.Scan(
		&d.IDRepairDetail, &d.IDRepair, &d.RepairType, &d.TechnicianUser, &d.IDVendor, &d.StartTime, &d.EndTime,
		&d.TotalLaborHours, &d.LaborCost, &d.PartsCost, &d.OtherCost, &d.Outcome, &d.WarrantyExtendMon,
		&d.NextMaintenanceDate,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpsertInTx - одна строка на заявку. Непереданные поля (NULL-параметры) при
// вставке получают значения по умолчанию, при обновлении сохраняют текущие.
func (r *RepairDetailRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, repairID uint64, p entities.RepairDetailPatch) (*entities.RepairDetail, error) {
	query := `INSERT INTO repair_detail AS rd
		(id_repair, repair_type, technician_user, id_vendor, start_time, end_time,
		 total_labor_hours, labor_cost, parts_cost, other_cost, outcome, warranty_extend_mon, next_maintenance_date)
		VALUES ($1, COALESCE($2::varchar, 'Internal'), $3::bigint, $4::bigint, $5::timestamptz, $6::timestamptz,
		 COALESCE($7::numeric, 0), COALESCE($8::numeric, 0), COALESCE($9::numeric, 0), COALESCE($10::numeric, 0),
		 COALESCE($11::text, ''), COALESCE($12::integer, 0), $13::date)
		ON CONFLICT (id_repair) DO UPDATE SET
			repair_type           = COALESCE($2, rd.repair_type),
			technician_user       = COALESCE($3, rd.technician_user),
			id_vendor             = COALESCE($4, rd.id_vendor),
			start_time            = COALESCE($5, rd.start_time),
			end_time              = COALESCE($6, rd.end_time),
			total_labor_hours     = COALESCE($7, rd.total_labor_hours),
			labor_cost            = COALESCE($8, rd.labor_cost),
			parts_cost            = COALESCE($9, rd.parts_cost),
			other_cost            = COALESCE($10, rd.other_cost),
			outcome               = COALESCE($11, rd.outcome),
			warranty_extend_mon   = COALESCE($12, rd.warranty_extend_mon),
			next_maintenance_date = COALESCE($13, rd.next_maintenance_date)
		RETURNING ` + repairDetailFields

	detail, err := scanRepairDetail(tx.QueryRow(ctx, query,
		repairID, p.RepairType, p.TechnicianUser, p.IDVendor, p.StartTime, p.EndTime,
		p.TotalLaborHours, p.LaborCost, p.PartsCost, p.OtherCost, p.Outcome,
		p.WarrantyExtendMon, p.NextMaintenanceDate,
	))
	if err != nil {
		return nil, mapPgError(err, "Chi tiết sửa chữa đã tồn tại")
	}
	return detail, nil
}

// FindByRepairID возвращает ErrNotFound, если детали еще не заполнялись.
func (r *RepairDetailRepository) FindByRepairID(ctx context.Context, tx pgx.Tx, repairID uint64) (*entities.RepairDetail, error) {
	query := "SELECT " + repairDetailFields + " FROM repair_detail WHERE id_repair = $1"

	detail, err := scanRepairDetail(pick(r.storage, tx).QueryRow(ctx, query, repairID))
	if err != nil {
		return nil, mapPgError(err, "")
	}
	return detail, nil
}
