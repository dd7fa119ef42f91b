package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// EnumValueDTO - значение справочника: стабильный ключ и отображаемая метка.
type EnumValueDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CreateRepairDTO - severity, priority и status принимаются в любом написании
// (ключ, метка, синоним) и нормализуются справочниками.
type CreateRepairDTO struct {
	DeviceID         uint64    `json:"device_id" validate:"required,gt=0"`
	Title            string    `json:"title" validate:"required,notblank_trim,max=255"`
	IssueDescription string    `json:"issue_description" validate:"required,notblank_trim"`
	Severity         string    `json:"severity,omitempty" validate:"omitempty,max=50"`
	Priority         string    `json:"priority,omitempty" validate:"omitempty,max=50"`
	Status           string    `json:"status,omitempty" validate:"omitempty,max=50"`
	SLAHours         null.Int  `json:"sla_hours" validate:"omitempty,gte=0"`
	DateDown         null.Time `json:"date_down"`
	ExpectedDate     null.Time `json:"expected_date"`
}

type UpdateStatusDTO struct {
	Status string      `json:"status" validate:"required,notblank_trim,max=50"`
	Note   null.String `json:"note" validate:"omitempty,max=2000"`
}

// UpsertRepairDetailDTO - все поля необязательные. Не переданное поле
// не меняет сохраненное значение.
type UpsertRepairDetailDTO struct {
	RepairType          null.String  `json:"repair_type" validate:"omitempty,oneof=Internal External internal external"`
	TechnicianUser      null.Uint64  `json:"technician_user" validate:"omitempty,gt=0"`
	VendorID            null.Uint64  `json:"id_vendor" validate:"omitempty,gt=0"`
	StartTime           null.Time    `json:"start_time"`
	EndTime             null.Time    `json:"end_time"`
	TotalLaborHours     null.Float64 `json:"total_labor_hours" validate:"omitempty,gte=0"`
	LaborCost           null.Float64 `json:"labor_cost" validate:"omitempty,gte=0"`
	PartsCost           null.Float64 `json:"parts_cost" validate:"omitempty,gte=0"`
	OtherCost           null.Float64 `json:"other_cost" validate:"omitempty,gte=0"`
	Outcome             null.String  `json:"outcome"`
	WarrantyExtendMon   null.Int     `json:"warranty_extend_mon" validate:"omitempty,gte=0"`
	NextMaintenanceDate null.Time    `json:"next_maintenance_date"`
}

type RepairPartDTO struct {
	PartName string       `json:"part_name" validate:"required,notblank_trim,max=255"`
	Quantity null.Int     `json:"quantity" validate:"omitempty,gte=0"`
	UnitCost null.Float64 `json:"unit_cost" validate:"omitempty,gte=0"`
	Note     null.String  `json:"note"`
}

type AddRepairPartsDTO struct {
	Parts []RepairPartDTO `json:"parts" validate:"required,min=1,dive"`
}

// StoredFileDTO - файл, уже сохраненный файловым хранилищем.
type StoredFileDTO struct {
	FilePath string `json:"file_path" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size" validate:"gte=0"`
}

// RepairFilter - параметры списка. Нераспознанные значения перечислений игнорируются.
type RepairFilter struct {
	Search          string
	Statuses        []string
	Severities      []string
	Priorities      []string
	DeviceID        *uint64
	ReportedBy      *uint64
	DateFrom        *time.Time
	DateTo          *time.Time
	IncludeCanceled bool
	Limit           uint64
	Offset          uint64
}

type RepairListItemDTO struct {
	ID           uint64       `json:"id_repair"`
	DeviceID     uint64       `json:"id_devices"`
	DeviceName   string       `json:"device_name"`
	ReportedBy   uint64       `json:"reported_by"`
	ReporterName string       `json:"reporter_name"`
	Title        string       `json:"title"`
	Severity     EnumValueDTO `json:"severity"`
	Priority     EnumValueDTO `json:"priority"`
	Status       EnumValueDTO `json:"status"`
	SLAHours     *int         `json:"sla_hours"`
	TotalCost    float64      `json:"total_cost"`
	DateReported string       `json:"date_reported"`
	LastUpdated  string       `json:"last_updated"`
}

type RepairDetailDTO struct {
	IDRepairDetail      uint64  `json:"id_repair_detail"`
	RepairType          string  `json:"repair_type"`
	TechnicianUser      *uint64 `json:"technician_user"`
	VendorID            *uint64 `json:"id_vendor"`
	StartTime           *string `json:"start_time"`
	EndTime             *string `json:"end_time"`
	TotalLaborHours     float64 `json:"total_labor_hours"`
	LaborCost           float64 `json:"labor_cost"`
	PartsCost           float64 `json:"parts_cost"`
	OtherCost           float64 `json:"other_cost"`
	TotalCost           float64 `json:"total_cost"`
	Outcome             string  `json:"outcome"`
	WarrantyExtendMon   int     `json:"warranty_extend_mon"`
	NextMaintenanceDate *string `json:"next_maintenance_date"`
}

type RepairPartResponseDTO struct {
	ID        uint64  `json:"id_part"`
	PartName  string  `json:"part_name"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	LineCost  float64 `json:"line_cost"`
	Note      *string `json:"note"`
	CreatedAt string  `json:"created_at"`
}

type RepairFileResponseDTO struct {
	ID         uint64  `json:"id_file"`
	FilePath   string  `json:"file_path"`
	FileName   string  `json:"file_name"`
	MimeType   *string `json:"mime_type"`
	Size       int64   `json:"size"`
	UploadedBy *uint64 `json:"uploaded_by"`
	UploadedAt string  `json:"uploaded_at"`
}

type RepairHistoryDTO struct {
	ID        uint64        `json:"id_history"`
	ActorUser uint64        `json:"actor_user"`
	ActorName *string       `json:"actor_name"`
	OldStatus *EnumValueDTO `json:"old_status"`
	NewStatus EnumValueDTO  `json:"new_status"`
	Note      *string       `json:"note"`
	CostDelta float64       `json:"cost_delta"`
	CreatedAt string        `json:"created_at"`
}

type RepairFullDTO struct {
	RepairListItemDTO
	ApprovedBy       *uint64                 `json:"approved_by"`
	IssueDescription string                  `json:"issue_description"`
	DateDown         *string                 `json:"date_down"`
	ExpectedDate     *string                 `json:"expected_date"`
	Detail           *RepairDetailDTO        `json:"detail"`
	Parts            []RepairPartResponseDTO `json:"parts"`
	Files            []RepairFileResponseDTO `json:"files"`
	History          []RepairHistoryDTO      `json:"history"`
}
