package utils

import "github.com/go-playground/validator/v10"

// Validator адаптирует go-playground/validator к интерфейсу echo.Validator.
type Validator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *Validator {
	return &Validator{validator: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
