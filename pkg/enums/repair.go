package enums

import "repair-system/pkg/constants"

// Dictionaries - три справочника модуля ремонта. Создаются один раз при старте
// и передаются в сервисы и контроллеры.
type Dictionaries struct {
	Status   *Dictionary
	Severity *Dictionary
	Priority *Dictionary
}

func NewRepairDictionaries() *Dictionaries {
	return &Dictionaries{
		Status: MustNew("status", constants.RepairStatusRequested,
			Entry{Key: constants.RepairStatusRequested, Label: "Được yêu cầu", Synonyms: []string{"Requested", "new", "open", "yeu cau", "Mới"}},
			Entry{Key: constants.RepairStatusApproved, Label: "Đã duyệt", Synonyms: []string{"Approved", "duyet", "accepted"}},
			Entry{Key: constants.RepairStatusInProgress, Label: "Đang xử lý", Synonyms: []string{"In-Progress", "in progress", "processing", "repairing", "Đang sửa"}},
			Entry{Key: constants.RepairStatusPendingParts, Label: "Chờ linh kiện", Synonyms: []string{"Pending-Parts", "pending parts", "waiting parts", "waiting for parts"}},
			Entry{Key: constants.RepairStatusCompleted, Label: "Hoàn tất", Synonyms: []string{"Completed", "done", "finished", "Hoàn thành"}},
			Entry{Key: constants.RepairStatusCanceled, Label: "Đã hủy", Synonyms: []string{"Canceled", "cancelled", "cancel", "Hủy"}},
		),
		Severity: MustNew("severity", constants.SeverityMedium,
			Entry{Key: constants.SeverityLow, Label: "Thấp", Synonyms: []string{"minor"}},
			Entry{Key: constants.SeverityMedium, Label: "Trung bình", Synonyms: []string{"moderate", "normal"}},
			Entry{Key: constants.SeverityHigh, Label: "Cao", Synonyms: []string{"major", "severe"}},
			Entry{Key: constants.SeverityCritical, Label: "Nghiêm trọng", Synonyms: []string{"blocker", "Khẩn cấp"}},
		),
		Priority: MustNew("priority", constants.PriorityNormal,
			Entry{Key: constants.PriorityLow, Label: "Thấp"},
			Entry{Key: constants.PriorityNormal, Label: "Bình thường", Synonyms: []string{"medium", "Trung bình"}},
			Entry{Key: constants.PriorityHigh, Label: "Cao"},
			Entry{Key: constants.PriorityUrgent, Label: "Khẩn cấp", Synonyms: []string{"critical", "asap"}},
		),
	}
}
