package entities

// StatusCountRow - строка группировки заявок по статусу (метка из БД).
type StatusCountRow struct {
	StatusLabel string `db:"status"`
	Count       int64  `db:"cnt"`
}

// MonthlyCostRow - сумма затрат по месяцу подачи заявки, месяц в формате YYYY-MM.
type MonthlyCostRow struct {
	Month string  `db:"month"`
	Cost  float64 `db:"cost"`
}

// InventoryTotals - общие счетчики для дашборда.
type InventoryTotals struct {
	Devices           int64 `db:"devices"`
	Users             int64 `db:"users"`
	ActiveAssignments int64 `db:"active_assignments"`
	InstalledSoftware int64 `db:"installed_software"`
	OpenRepairs       int64 `db:"open_repairs"`
}
