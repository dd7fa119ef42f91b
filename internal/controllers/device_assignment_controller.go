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

type DeviceAssignmentController struct {
	assignmentService services.DeviceAssignmentServiceInterface
	logger            *zap.Logger
}

func NewDeviceAssignmentController(assignmentService services.DeviceAssignmentServiceInterface, logger *zap.Logger) *DeviceAssignmentController {
	return &DeviceAssignmentController{assignmentService: assignmentService, logger: logger}
}

func assignmentsToDTO(list []entities.DeviceAssignment) []dto.DeviceAssignmentDTO {
	out := make([]dto.DeviceAssignmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, services.AssignmentToDTO(a))
	}
	return out
}

func activeUsersToDTO(list []entities.ActiveUser) []dto.ActiveUserDTO {
	out := make([]dto.ActiveUserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, services.ActiveUserToDTO(u))
	}
	return out
}

// resolveTarget возвращает устройство из пути и пользователя из тела,
// по умолчанию текущего.
func (c *DeviceAssignmentController) resolveTarget(ctx echo.Context) (userID, deviceID uint64, err error) {
	deviceID, err = utils.ParseIDParam(ctx, "id")
	if err != nil {
		return 0, 0, err
	}

	var payload dto.CheckinDTO
	if err := ctx.Bind(&payload); err != nil {
		return 0, 0, apperrors.NewValidationError(invalidJSONMessage)
	}
	if err := ctx.Validate(&payload); err != nil {
		return 0, 0, err
	}
	if payload.UserID != nil {
		return *payload.UserID, deviceID, nil
	}

	userID, err = utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return 0, 0, err
	}
	return userID, deviceID, nil
}

func (c *DeviceAssignmentController) Checkin(ctx echo.Context) error {
	userID, deviceID, err := c.resolveTarget(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	assignment, err := c.assignmentService.Checkin(ctx.Request().Context(), userID, deviceID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Nhận thiết bị thành công", services.AssignmentToDTO(*assignment))
}

func (c *DeviceAssignmentController) Checkout(ctx echo.Context) error {
	userID, deviceID, err := c.resolveTarget(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	assignment, err := c.assignmentService.Checkout(ctx.Request().Context(), userID, deviceID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Trả thiết bị thành công", services.AssignmentToDTO(*assignment))
}

func (c *DeviceAssignmentController) ActiveUsers(ctx echo.Context) error {
	deviceID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	users, err := c.assignmentService.ActiveUsersOfDevice(ctx.Request().Context(), deviceID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Người đang sử dụng thiết bị", activeUsersToDTO(users))
}

func (c *DeviceAssignmentController) DeviceHistory(ctx echo.Context) error {
	deviceID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	history, err := c.assignmentService.HistoryOfDevice(ctx.Request().Context(), deviceID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lịch sử sử dụng thiết bị", assignmentsToDTO(history))
}

func (c *DeviceAssignmentController) ActiveCount(ctx echo.Context) error {
	counts, err := c.assignmentService.ActiveCountMap(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Số người dùng theo thiết bị", counts)
}

func (c *DeviceAssignmentController) ActiveMap(ctx echo.Context) error {
	active, err := c.assignmentService.ActiveMap(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	out := make(map[uint64][]dto.ActiveUserDTO, len(active))
	for deviceID, users := range active {
		out[deviceID] = activeUsersToDTO(users)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Người dùng theo thiết bị", out)
}

func (c *DeviceAssignmentController) DevicesOfUser(ctx echo.Context) error {
	userID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return c.devicesOf(ctx, userID)
}

func (c *DeviceAssignmentController) MyDevices(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return c.devicesOf(ctx, userID)
}

func (c *DeviceAssignmentController) devicesOf(ctx echo.Context, userID uint64) error {
	devices, err := c.assignmentService.ActiveDevicesOfUser(ctx.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Thiết bị đang sử dụng", assignmentsToDTO(devices))
}
