package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank_trim", isNotBlankTrimmed); err != nil {
		return err
	}
	return nil
}

// isNotBlankTrimmed - строка не пустая после обрезки пробелов.
func isNotBlankTrimmed(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
