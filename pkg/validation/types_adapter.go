package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes учит валидатор "смотреть внутрь" типов null.*.
// Невалидное значение превращается в nil, чтобы сработал `omitempty`.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Uint64); ok && val.Valid {
			return val.Uint64
		}
		return nil
	}, null.Uint64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})
}
