package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "repair-system/pkg/errors"
)

// LoggerContextKey - ключ echo.Context, под которым middleware.InjectLogger кладет логгер.
const LoggerContextKey = "logger"

// Сообщения для клиента - только на вьетнамском. Текст ошибок-сентинелов
// (на русском) остается в логах.
const (
	internalErrorMessage     = "Lỗi máy chủ nội bộ"
	invalidDataMessage       = "Dữ liệu không hợp lệ"
	badRequestMessage        = "Yêu cầu không hợp lệ"
	notFoundMessage          = "Không tìm thấy dữ liệu"
	conflictMessage          = "Dữ liệu bị xung đột"
	unauthorizedMessage      = "Chưa xác thực"
	missingAuthHeaderMessage = "Thiếu header Authorization"
	badAuthHeaderMessage     = "Header Authorization không đúng định dạng"
	invalidTokenMessage      = "Token không hợp lệ"
	expiredTokenMessage      = "Token đã hết hạn"
)

var echoStatusMessages = map[int]string{
	http.StatusNotFound:              "Không tìm thấy đường dẫn",
	http.StatusMethodNotAllowed:      "Phương thức không được hỗ trợ",
	http.StatusRequestEntityTooLarge: "Dữ liệu gửi lên quá lớn",
	http.StatusUnsupportedMediaType:  "Định dạng dữ liệu không được hỗ trợ",
	http.StatusTooManyRequests:       "Quá nhiều yêu cầu",
}

type Response[T any] struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Body    T           `json:"body,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// SuccessOne возвращает один объект
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{
		List: list,
		Pagination: &PaginationMeta{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		},
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// ErrorResponse переводит ошибку в HTTP-ответ. Текст внутренних ошибок
// клиенту не отдается, он пишется в лог. Details клиентских ошибок (поля
// валидации, допустимые статусы) попадают в поле "details".
func ErrorResponse(c echo.Context, err error) error {
	code, msg := Classify(err)
	if code >= http.StatusInternalServerError {
		loggerFrom(c).Error("Внутренняя ошибка при обработке запроса",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	resp := Response[any]{Status: false, Message: msg}
	if code < http.StatusInternalServerError {
		resp.Details = ErrorDetails(err)
	}
	return c.JSON(code, resp)
}

// ErrorDetails - структурированные подробности ошибки для клиента или nil.
func ErrorDetails(err error) interface{} {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Details
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}
	return nil
}

// Classify возвращает HTTP-код и сообщение для клиента.
func Classify(err error) (int, string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalErrorMessage
		}
		return httpErr.Code, httpErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, invalidDataMessage
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		if msg, ok := echoStatusMessages[echoErr.Code]; ok {
			return echoErr.Code, msg
		}
		return echoErr.Code, badRequestMessage
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, badRequestMessage
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, notFoundMessage
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, conflictMessage
	case errors.Is(err, apperrors.ErrEmptyAuthHeader):
		return http.StatusUnauthorized, missingAuthHeaderMessage
	case errors.Is(err, apperrors.ErrInvalidAuthHeader):
		return http.StatusUnauthorized, badAuthHeaderMessage
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, expiredTokenMessage
	case errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidSigningMethod):
		return http.StatusUnauthorized, invalidTokenMessage
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized, unauthorizedMessage
	}
	return http.StatusInternalServerError, internalErrorMessage
}

func loggerFrom(c echo.Context) *zap.Logger {
	if l, ok := c.Get(LoggerContextKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.L()
}
