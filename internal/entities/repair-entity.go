package entities

import "time"

// RepairRequest - заявка на ремонт. Severity, Priority и Status хранятся
// метками справочников (то, что лежит в БД), а не ключами.
type RepairRequest struct {
	IDRepair         uint64     `db:"id_repair"`
	IDDevices        uint64     `db:"id_devices"`
	ReportedBy       uint64     `db:"reported_by"`
	ApprovedBy       *uint64    `db:"approved_by"`
	Title            string     `db:"title"`
	IssueDescription string     `db:"issue_description"`
	Severity         string     `db:"severity"`
	Priority         string     `db:"priority"`
	Status           string     `db:"status"`
	DateReported     time.Time  `db:"date_reported"`
	DateDown         *time.Time `db:"date_down"`
	ExpectedDate     *time.Time `db:"expected_date"`
	SLAHours         *int       `db:"sla_hours"`
	LastUpdated      time.Time  `db:"last_updated"`
}

// RepairRequestView - заявка вместе с данными для списков.
type RepairRequestView struct {
	RepairRequest

	DeviceName   *string `db:"device_name"`
	ReporterName *string `db:"reporter_name"`
	LaborCost    float64 `db:"labor_cost"`
	PartsCost    float64 `db:"parts_cost"`
	OtherCost    float64 `db:"other_cost"`
}

func (v *RepairRequestView) TotalCost() float64 {
	return totalCost(v.LaborCost, v.PartsCost, v.OtherCost)
}

// RepairListFilter - фильтр списка заявок. Значения перечислений уже
// переведены в метки БД.
type RepairListFilter struct {
	Search              string
	StatusLabels        []string
	SeverityLabels      []string
	PriorityLabels      []string
	ExcludeStatusLabels []string
	DeviceID            *uint64
	ReportedBy          *uint64
	DateFrom            *time.Time
	DateTo              *time.Time
	Limit               uint64
	Offset              uint64
}
