package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	"repair-system/pkg/api"
	"repair-system/pkg/constants"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/filestorage"
	"repair-system/pkg/utils"
	"repair-system/pkg/validation"
)

const invalidJSONMessage = "Dữ liệu JSON không hợp lệ"

type RepairController struct {
	repairService services.RepairServiceInterface
	fileStorage   filestorage.FileStorageInterface
	maxFileBytes  int64
	logger        *zap.Logger
}

func NewRepairController(
	repairService services.RepairServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	maxFileBytes int64,
	logger *zap.Logger,
) *RepairController {
	return &RepairController{
		repairService: repairService,
		fileStorage:   fileStorage,
		maxFileBytes:  maxFileBytes,
		logger:        logger,
	}
}

// multiValues собирает ?status=a&status=b и ?status=a,b в один список.
func multiValues(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseOptionalID(values url.Values, key string) (*uint64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apperrors.NewValidationError("Tham số %s không hợp lệ: %q", key, raw)
	}
	return &id, nil
}

// parseOptionalDate принимает YYYY-MM-DD или RFC3339. Для даты без времени
// и endOfDay == true берется конец дня.
func parseOptionalDate(values url.Values, key string, endOfDay bool) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.NewValidationError("Ngày %s không hợp lệ: %q", key, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParseRepairFilter читает фильтр списка заявок из query-параметров.
func ParseRepairFilter(values url.Values) (dto.RepairFilter, uint64, error) {
	limit, offset, page := utils.ParsePaginationParams(values)
	filter := dto.RepairFilter{
		Search:          strings.TrimSpace(values.Get("search")),
		Statuses:        multiValues(values, "status"),
		Severities:      multiValues(values, "severity"),
		Priorities:      multiValues(values, "priority"),
		IncludeCanceled: values.Get("include_canceled") == "true" || values.Get("include_canceled") == "1",
		Limit:           limit,
		Offset:          offset,
	}

	var err error
	if filter.DeviceID, err = parseOptionalID(values, "device_id"); err != nil {
		return filter, 0, err
	}
	if filter.ReportedBy, err = parseOptionalID(values, "reported_by"); err != nil {
		return filter, 0, err
	}
	if filter.DateFrom, err = parseOptionalDate(values, "date_from", false); err != nil {
		return filter, 0, err
	}
	if filter.DateTo, err = parseOptionalDate(values, "date_to", true); err != nil {
		return filter, 0, err
	}
	return filter, page, nil
}

func (c *RepairController) ListRepairs(ctx echo.Context) error {
	filter, page, err := ParseRepairFilter(ctx.QueryParams())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	items, total, err := c.repairService.ListRepairs(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "Danh sách yêu cầu sửa chữa", items, total, int(page), int(filter.Limit))
}

func (c *RepairController) CreateRepair(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.CreateRepairDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError(invalidJSONMessage))
	}

	id, err := c.repairService.CreateRequest(reqCtx, actorID, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Tạo yêu cầu sửa chữa thành công", map[string]uint64{"id_repair": id})
}

func (c *RepairController) GetRepair(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	full, err := c.repairService.GetRepair(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Chi tiết yêu cầu sửa chữa", full)
}

func (c *RepairController) UpdateStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError(invalidJSONMessage))
	}

	if err := c.repairService.UpdateStatus(reqCtx, id, actorID, payload.Status, payload.Note.Ptr()); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "Cập nhật trạng thái thành công", nil)
}

func (c *RepairController) NextStatuses(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	next, err := c.repairService.AllowedNextStatuses(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Trạng thái có thể chuyển", next)
}

func (c *RepairController) UpsertDetail(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.UpsertRepairDetailDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError(invalidJSONMessage))
	}

	detail, err := c.repairService.UpsertDetail(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lưu chi tiết sửa chữa thành công", services.RepairDetailToDTO(detail))
}

func (c *RepairController) AddParts(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.AddRepairPartsDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError(invalidJSONMessage))
	}

	inserted, err := c.repairService.AddParts(ctx.Request().Context(), id, payload.Parts)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Thêm linh kiện thành công", map[string]int{"inserted": inserted})
}

func (c *RepairController) RemovePart(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	partID, err := utils.ParseIDParam(ctx, "partId")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.repairService.RemovePart(ctx.Request().Context(), id, partID); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "Đã xóa linh kiện", nil)
}

// UploadFiles принимает multipart-поле "files" (или "file"), сохраняет файлы
// в хранилище и передает пути сервису.
func (c *RepairController) UploadFiles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewValidationError("Yêu cầu phải là multipart/form-data"))
	}
	headers := append(form.File["files"], form.File["file"]...)
	if len(headers) == 0 {
		return api.ErrorResponse(ctx, apperrors.NewValidationError("Chưa có tệp nào được gửi lên"))
	}

	stored := make([]dto.StoredFileDTO, 0, len(headers))
	for _, fh := range headers {
		file, err := c.storeOne(fh)
		if err != nil {
			c.discard(stored)
			return api.ErrorResponse(ctx, err)
		}
		stored = append(stored, file)
	}

	// при ошибке записи в БД сервис сам удаляет сохраненные файлы
	saved, err := c.repairService.AttachFiles(reqCtx, id, actorID, stored)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	result := make([]dto.RepairFileResponseDTO, 0, len(saved))
	for _, f := range saved {
		result = append(result, services.RepairFileToDTO(f))
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Tải tệp lên thành công", result)
}

func (c *RepairController) storeOne(fh *multipart.FileHeader) (dto.StoredFileDTO, error) {
	src, err := fh.Open()
	if err != nil {
		return dto.StoredFileDTO{}, apperrors.NewHttpError(http.StatusInternalServerError, "Lỗi xử lý tệp", err, nil)
	}
	defer src.Close()

	mimeType, err := validation.ValidateFile(fh, src, c.maxFileBytes, validation.AllowedRepairFileTypes)
	if err != nil {
		return dto.StoredFileDTO{}, c.fileRejected(fh.Filename, err)
	}

	path, err := c.fileStorage.Save(src, fh.Filename, constants.UploadPrefixRepairFiles)
	if err != nil {
		c.logger.Error("Не удалось сохранить файл", zap.String("filename", fh.Filename), zap.Error(err))
		return dto.StoredFileDTO{}, apperrors.NewHttpError(http.StatusInternalServerError, "Không thể lưu tệp", err, nil)
	}
	return dto.StoredFileDTO{FilePath: path, FileName: fh.Filename, MimeType: mimeType, Size: fh.Size}, nil
}

func (c *RepairController) fileRejected(name string, err error) error {
	details := map[string]interface{}{"file": name}
	switch {
	case errors.Is(err, validation.ErrFileTooLarge):
		details["max_bytes"] = c.maxFileBytes
		return apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("Tệp %q vượt quá dung lượng cho phép", name), errors.Join(apperrors.ErrValidation, err), details)
	case errors.Is(err, validation.ErrFileTypeNotAllowed):
		details["allowed"] = validation.AllowedRepairFileTypes
		return apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("Định dạng tệp %q không được hỗ trợ", name), errors.Join(apperrors.ErrValidation, err), details)
	}
	return apperrors.NewHttpError(http.StatusBadRequest,
		fmt.Sprintf("Không đọc được tệp %q", name), errors.Join(apperrors.ErrValidation, err), details)
}

func (c *RepairController) discard(files []dto.StoredFileDTO) {
	for _, f := range files {
		if err := c.fileStorage.Delete(f.FilePath); err != nil {
			c.logger.Warn("Не удалось удалить файл", zap.String("path", f.FilePath), zap.Error(err))
		}
	}
}

func (c *RepairController) RemoveFile(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	fileID, err := utils.ParseIDParam(ctx, "fileId")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	removed, err := c.repairService.RemoveFile(ctx.Request().Context(), id, fileID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Đã xóa tệp", services.RepairFileToDTO(*removed))
}

func (c *RepairController) GetHistory(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	history, err := c.repairService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lịch sử yêu cầu", history)
}
