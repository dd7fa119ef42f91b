package dto

import "github.com/aarondl/null/v8"

type InstallSoftwareDTO struct {
	LicenseKey null.String `json:"license_key" validate:"omitempty,max=255"`
	Note       null.String `json:"note" validate:"omitempty,max=2000"`
}

type DeviceSoftwareDTO struct {
	ID              uint64  `json:"id_device_software"`
	DeviceID        uint64  `json:"id_devices"`
	SoftwareID      uint64  `json:"id_software"`
	SoftwareName    *string `json:"software_name,omitempty"`
	SoftwareVersion *string `json:"software_version,omitempty"`
	DeviceName      *string `json:"device_name,omitempty"`
	Status          string  `json:"status"`
	InstallDate     string  `json:"install_date"`
	UninstallDate   *string `json:"uninstall_date"`
	InstalledBy     *uint64 `json:"installed_by"`
	LicenseKey      *string `json:"license_key"`
	Note            *string `json:"note"`
}
