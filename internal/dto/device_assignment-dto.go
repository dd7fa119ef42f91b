package dto

// CheckinDTO - user_id необязателен: по умолчанию устройство выдается вызывающему.
type CheckinDTO struct {
	UserID *uint64 `json:"user_id" validate:"omitempty,gt=0"`
}

type DeviceAssignmentDTO struct {
	ID         uint64  `json:"id_assignment"`
	UserID     uint64  `json:"id_users"`
	DeviceID   uint64  `json:"id_devices"`
	UserName   *string `json:"user_full_name,omitempty"`
	DeviceName *string `json:"device_name,omitempty"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Active     bool    `json:"active"`
}

type ActiveUserDTO struct {
	AssignmentID uint64 `json:"id_assignment"`
	UserID       uint64 `json:"id_users"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	StartTime    string `json:"start_time"`
}
