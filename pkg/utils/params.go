package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "repair-system/pkg/errors"
)

// ParseIDParam читает положительный числовой параметр пути.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("Tham số %s không hợp lệ: %q", name, raw)
	}
	return id, nil
}

// ParseBoolQuery возвращает false для пустого или нераспознанного значения.
func ParseBoolQuery(c echo.Context, name string) bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	return err == nil && v
}
