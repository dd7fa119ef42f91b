package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/services"
	"repair-system/pkg/api"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

type DeviceSoftwareController struct {
	softwareService services.DeviceSoftwareServiceInterface
	logger          *zap.Logger
}

func NewDeviceSoftwareController(softwareService services.DeviceSoftwareServiceInterface, logger *zap.Logger) *DeviceSoftwareController {
	return &DeviceSoftwareController{softwareService: softwareService, logger: logger}
}

func installsToDTO(list []entities.DeviceSoftware) []dto.DeviceSoftwareDTO {
	out := make([]dto.DeviceSoftwareDTO, 0, len(list))
	for _, s := range list {
		out = append(out, services.DeviceSoftwareToDTO(s))
	}
	return out
}

func parseDeviceAndSoftware(ctx echo.Context) (uint64, uint64, error) {
	deviceID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return 0, 0, err
	}
	softwareID, err := utils.ParseIDParam(ctx, "softwareId")
	if err != nil {
		return 0, 0, err
	}
	return deviceID, softwareID, nil
}

func (c *DeviceSoftwareController) Install(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	deviceID, softwareID, err := parseDeviceAndSoftware(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.InstallSoftwareDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError(invalidJSONMessage))
	}

	installed, err := c.softwareService.InstallSoftware(reqCtx, deviceID, softwareID, actorID, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Cài đặt phần mềm thành công", services.DeviceSoftwareToDTO(*installed))
}

func (c *DeviceSoftwareController) Uninstall(ctx echo.Context) error {
	deviceID, softwareID, err := parseDeviceAndSoftware(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	removed, err := c.softwareService.UninstallSoftware(ctx.Request().Context(), deviceID, softwareID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Gỡ cài đặt phần mềm thành công", services.DeviceSoftwareToDTO(*removed))
}

// ListByDevice по умолчанию отдает только установленное ПО,
// ?include_uninstalled=true добавляет удаленное.
func (c *DeviceSoftwareController) ListByDevice(ctx echo.Context) error {
	deviceID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	list, err := c.softwareService.ListByDevice(ctx.Request().Context(), deviceID, utils.ParseBoolQuery(ctx, "include_uninstalled"))
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Phần mềm trên thiết bị", installsToDTO(list))
}

func (c *DeviceSoftwareController) DevicesBySoftware(ctx echo.Context) error {
	softwareID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	list, err := c.softwareService.ListDevicesBySoftware(ctx.Request().Context(), softwareID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Thiết bị đã cài phần mềm", installsToDTO(list))
}
