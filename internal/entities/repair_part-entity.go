package entities

import "time"

type RepairPartUsed struct {
	IDPart    uint64    `db:"id_part"`
	IDRepair  uint64    `db:"id_repair"`
	PartName  string    `db:"part_name"`
	Quantity  int       `db:"quantity"`
	UnitCost  float64   `db:"unit_cost"`
	Note      *string   `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

func (p *RepairPartUsed) LineCost() float64 {
	return float64(p.Quantity) * p.UnitCost
}
