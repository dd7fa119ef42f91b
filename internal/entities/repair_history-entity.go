package entities

import "time"

type RepairHistory struct {
	IDHistory uint64    `db:"id_history"`
	IDRepair  uint64    `db:"id_repair"`
	ActorUser uint64    `db:"actor_user"`
	OldStatus *string   `db:"old_status"`
	NewStatus string    `db:"new_status"`
	Note      *string   `db:"note"`
	CostDelta float64   `db:"cost_delta"`
	CreatedAt time.Time `db:"created_at"`

	ActorName *string `db:"actor_name"`
}
