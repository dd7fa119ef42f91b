package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = errors.New("неверный метод подписи токена")
	ErrInvalidToken         = errors.New("недопустимый токен")
	ErrTokenExpired         = errors.New("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader   = errors.New("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = errors.New("неверный формат заголовка авторизации")
	ErrUnauthorized      = errors.New("неавторизован")

	// Контекст
	ErrUserIDNotFoundInContext = errors.New("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound       = errors.New("запись не найдена")
	ErrBadRequest     = errors.New("неверный запрос")
	ErrConflict       = errors.New("конфликт данных")
	ErrInternalServer = errors.New("внутренняя ошибка сервера")

	// ErrValidation - то же самое, что ErrBadRequest: ошибка входных данных до любой записи.
	ErrValidation = ErrBadRequest

	// Жизненный цикл заявки
	ErrInvalidTransition = fmt.Errorf("недопустимый переход статуса: %w", ErrValidation)
)

// HttpError несет HTTP-код и безопасное сообщение для клиента.
// Err - исходная причина, в ответ не попадает.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// NewValidationError - 400, оборачивает ErrValidation.
func NewValidationError(format string, args ...interface{}) error {
	return NewHttpError(http.StatusBadRequest, fmt.Sprintf(format, args...), ErrValidation, nil)
}

// NewNotFoundError - 404, оборачивает ErrNotFound.
func NewNotFoundError(format string, args ...interface{}) error {
	return NewHttpError(http.StatusNotFound, fmt.Sprintf(format, args...), ErrNotFound, nil)
}

// NewConflictError - 409, оборачивает ErrConflict.
func NewConflictError(format string, args ...interface{}) error {
	return NewHttpError(http.StatusConflict, fmt.Sprintf(format, args...), ErrConflict, nil)
}
