package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "repair-system/pkg/errors"
)

// StructValidator - то, что умеет validation.CustomValidator (и echo.Validator).
type StructValidator interface {
	Validate(i interface{}) error
}

// validateDTO проверяет DTO до любой записи в БД и приводит ошибки
// валидатора к 400 со списком полей в Details.
func validateDTO(v StructValidator, payload interface{}) error {
	if v == nil {
		return nil
	}
	err := v.Validate(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation, nil)
	}

	details := make(map[string]string, len(fieldErrs))
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
		names = append(names, fe.Field())
	}
	return apperrors.NewHttpError(http.StatusBadRequest,
		"Dữ liệu không hợp lệ ở các trường: "+strings.Join(names, ", "), apperrors.ErrValidation, details)
}
