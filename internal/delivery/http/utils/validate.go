package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках показываем имена полей из JSON, а не из Go
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate проверяет структуру по тегам validate
func Validate(v any) error {
	return validate.Struct(v)
}

// ValidationMessage собирает ошибки валидации в одну строку вида "title: required; email: email"
func ValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Неверный формат запроса"
	}
	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return "Неверные данные: " + strings.Join(parts, "; ")
}
