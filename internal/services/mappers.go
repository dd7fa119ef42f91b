package services

import (
	"time"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/pkg/enums"
)

const (
	dateTimeLayout = time.RFC3339
	dateLayout     = "2006-01-02"
)

func formatTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

// enumValue переводит метку из БД в пару ключ/метка. Неизвестная метка
// (например, после ручной правки БД) дает значение по умолчанию справочника.
func enumValue(d *enums.Dictionary, stored string) dto.EnumValueDTO {
	key := d.ToCanonical(stored, "")
	return dto.EnumValueDTO{Key: key, Label: d.LabelOrKey(key)}
}

func repairViewToListItem(v *entities.RepairRequestView, dicts *enums.Dictionaries) dto.RepairListItemDTO {
	item := dto.RepairListItemDTO{
		ID:           v.IDRepair,
		DeviceID:     v.IDDevices,
		ReportedBy:   v.ReportedBy,
		Title:        v.Title,
		Severity:     enumValue(dicts.Severity, v.Severity),
		Priority:     enumValue(dicts.Priority, v.Priority),
		Status:       enumValue(dicts.Status, v.Status),
		SLAHours:     v.SLAHours,
		TotalCost:    v.TotalCost(),
		DateReported: formatTime(v.DateReported),
		LastUpdated:  formatTime(v.LastUpdated),
	}
	if v.DeviceName != nil {
		item.DeviceName = *v.DeviceName
	}
	if v.ReporterName != nil {
		item.ReporterName = *v.ReporterName
	}
	return item
}

func RepairDetailToDTO(d *entities.RepairDetail) *dto.RepairDetailDTO {
	if d == nil {
		return nil
	}
	return &dto.RepairDetailDTO{
		IDRepairDetail:      d.IDRepairDetail,
		RepairType:          d.RepairType,
		TechnicianUser:      d.TechnicianUser,
		VendorID:            d.IDVendor,
		StartTime:           formatTimePtr(d.StartTime, dateTimeLayout),
		EndTime:             formatTimePtr(d.EndTime, dateTimeLayout),
		TotalLaborHours:     d.TotalLaborHours,
		LaborCost:           d.LaborCost,
		PartsCost:           d.PartsCost,
		OtherCost:           d.OtherCost,
		TotalCost:           d.TotalCost(),
		Outcome:             d.Outcome,
		WarrantyExtendMon:   d.WarrantyExtendMon,
		NextMaintenanceDate: formatTimePtr(d.NextMaintenanceDate, dateLayout),
	}
}

func repairPartToDTO(p entities.RepairPartUsed) dto.RepairPartResponseDTO {
	return dto.RepairPartResponseDTO{
		ID:        p.IDPart,
		PartName:  p.PartName,
		Quantity:  p.Quantity,
		UnitCost:  p.UnitCost,
		LineCost:  p.LineCost(),
		Note:      p.Note,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func RepairFileToDTO(f entities.RepairFile) dto.RepairFileResponseDTO {
	return dto.RepairFileResponseDTO{
		ID:         f.IDFile,
		FilePath:   f.FilePath,
		FileName:   f.FileName,
		MimeType:   f.MimeType,
		Size:       f.FileSize,
		UploadedBy: f.UploadedBy,
		UploadedAt: formatTime(f.UploadedAt),
	}
}

func repairHistoryToDTO(h entities.RepairHistory, statuses *enums.Dictionary) dto.RepairHistoryDTO {
	out := dto.RepairHistoryDTO{
		ID:        h.IDHistory,
		ActorUser: h.ActorUser,
		ActorName: h.ActorName,
		NewStatus: enumValue(statuses, h.NewStatus),
		Note:      h.Note,
		CostDelta: h.CostDelta,
		CreatedAt: formatTime(h.CreatedAt),
	}
	if h.OldStatus != nil {
		old := enumValue(statuses, *h.OldStatus)
		out.OldStatus = &old
	}
	return out
}

func AssignmentToDTO(a entities.DeviceAssignment) dto.DeviceAssignmentDTO {
	return dto.DeviceAssignmentDTO{
		ID:         a.IDAssignment,
		UserID:     a.IDUsers,
		DeviceID:   a.IDDevices,
		UserName:   a.UserFullName,
		DeviceName: a.DeviceName,
		StartTime:  formatTime(a.StartTime),
		EndTime:    formatTimePtr(a.EndTime, dateTimeLayout),
		Active:     a.IsActive(),
	}
}

func ActiveUserToDTO(u entities.ActiveUser) dto.ActiveUserDTO {
	return dto.ActiveUserDTO{
		AssignmentID: u.IDAssignment,
		UserID:       u.IDUsers,
		Username:     u.Username,
		FullName:     u.FullName,
		StartTime:    formatTime(u.StartTime),
	}
}

func DeviceSoftwareToDTO(s entities.DeviceSoftware) dto.DeviceSoftwareDTO {
	return dto.DeviceSoftwareDTO{
		ID:              s.IDDeviceSoftware,
		DeviceID:        s.IDDevices,
		SoftwareID:      s.IDSoftware,
		SoftwareName:    s.SoftwareName,
		SoftwareVersion: s.SoftwareVersion,
		DeviceName:      s.DeviceName,
		Status:          s.Status,
		InstallDate:     formatTime(s.InstallDate),
		UninstallDate:   formatTimePtr(s.UninstallDate, dateTimeLayout),
		InstalledBy:     s.InstalledBy,
		LicenseKey:      s.LicenseKey,
		Note:            s.Note,
	}
}
