package entities

import (
	"time"

	"repair-system/pkg/constants"
)

// DeviceSoftware - установка ПО на устройство. Status "installed" - активная запись,
// "uninstalled" - финальная.
type DeviceSoftware struct {
	IDDeviceSoftware uint64     `db:"id_device_software" json:"id_device_software"`
	IDDevices        uint64     `db:"id_devices" json:"id_devices"`
	IDSoftware       uint64     `db:"id_software" json:"id_software"`
	Status           string     `db:"status" json:"status"`
	InstallDate      time.Time  `db:"install_date" json:"install_date"`
	UninstallDate    *time.Time `db:"uninstall_date" json:"uninstall_date"`
	InstalledBy      *uint64    `db:"installed_by" json:"installed_by"`
	LicenseKey       *string    `db:"license_key" json:"license_key"`
	Note             *string    `db:"note" json:"note"`

	SoftwareName    *string `db:"software_name" json:"software_name,omitempty"`
	SoftwareVersion *string `db:"software_version" json:"software_version,omitempty"`
	DeviceName      *string `db:"device_name" json:"device_name,omitempty"`
}

func (s *DeviceSoftware) IsInstalled() bool {
	return s.Status == constants.SoftwareStatusInstalled
}
