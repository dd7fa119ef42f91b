package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestContextWithTimeout ограничивает время обработки тяжелых запросов
// (выгрузки), отмена клиента тоже прерывает работу.
func RequestContextWithTimeout(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}
