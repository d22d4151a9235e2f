package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dottech/backend/core/user"
)

// InitValidators registers struct level validation for registration input.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(newStudentStructValidation, NewStudent{})
}

func newStudentStructValidation(sl validator.StructLevel) {
	if ns, ok := sl.Current().Interface().(NewStudent); ok {
		user.ValidatePassword(ns.Password, sl, ns.FirstName, ns.LastName, ns.Email)
	}
}
