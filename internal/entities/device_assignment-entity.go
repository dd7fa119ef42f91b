package entities

import "time"

// DeviceAssignment - строка журнала выдачи устройства пользователю.
// EndTime == nil означает активную выдачу.
type DeviceAssignment struct {
	IDAssignment uint64     `db:"id_assignment" json:"id_assignment"`
	IDUsers      uint64     `db:"id_users" json:"id_users"`
	IDDevices    uint64     `db:"id_devices" json:"id_devices"`
	StartTime    time.Time  `db:"start_time" json:"start_time"`
	EndTime      *time.Time `db:"end_time" json:"end_time"`

	UserFullName *string `db:"user_full_name" json:"user_full_name,omitempty"`
	DeviceName   *string `db:"device_name" json:"device_name,omitempty"`
}

func (a *DeviceAssignment) IsActive() bool {
	return a.EndTime == nil
}

// ActiveUser - пользователь, у которого устройство сейчас на руках.
type ActiveUser struct {
	IDAssignment uint64    `db:"id_assignment" json:"id_assignment"`
	IDUsers      uint64    `db:"id_users" json:"id_users"`
	IDDevices    uint64    `db:"id_devices" json:"id_devices"`
	Username     string    `db:"username" json:"username"`
	FullName     string    `db:"full_name" json:"full_name"`
	StartTime    time.Time `db:"start_time" json:"start_time"`
}
