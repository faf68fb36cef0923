package customvalidator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations собирает все кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("date_string", isDateString); err != nil {
		return err
	}
	return nil
}

// isDateString пропускает пустые строки и даты в форматах
// YYYY-MM-DD либо RFC3339. Все остальное отклоняется.
func isDateString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	return false
}
