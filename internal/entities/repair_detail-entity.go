package entities

import "time"

// RepairDetail - одна строка на заявку (уникальна по IDRepair).
type RepairDetail struct {
	IDRepairDetail      uint64     `db:"id_repair_detail"`
	IDRepair            uint64     `db:"id_repair"`
	RepairType          string     `db:"repair_type"`
	TechnicianUser      *uint64    `db:"technician_user"`
	IDVendor            *uint64    `db:"id_vendor"`
	StartTime           *time.Time `db:"start_time"`
	EndTime             *time.Time `db:"end_time"`
	TotalLaborHours     float64    `db:"total_labor_hours"`
	LaborCost           float64    `db:"labor_cost"`
	PartsCost           float64    `db:"parts_cost"`
	OtherCost           float64    `db:"other_cost"`
	Outcome             string     `db:"outcome"`
	WarrantyExtendMon   int        `db:"warranty_extend_mon"`
	NextMaintenanceDate *time.Time `db:"next_maintenance_date"`
}

// TotalCost не хранится в БД, считается при чтении.
func (d *RepairDetail) TotalCost() float64 {
	return totalCost(d.LaborCost, d.PartsCost, d.OtherCost)
}

func totalCost(labor, parts, other float64) float64 {
	total := labor + parts + other
	if total < 0 {
		return 0
	}
	return total
}

// RepairDetailPatch - поля для upsert. nil - поле не передано: при вставке
// берется значение по умолчанию, при обновлении остается сохраненное.
type RepairDetailPatch struct {
	RepairType          *string
	TechnicianUser      *uint64
	IDVendor            *uint64
	StartTime           *time.Time
	EndTime             *time.Time
	TotalLaborHours     *float64
	LaborCost           *float64
	PartsCost           *float64
	OtherCost           *float64
	Outcome             *string
	WarrantyExtendMon   *int
	NextMaintenanceDate *time.Time
}
