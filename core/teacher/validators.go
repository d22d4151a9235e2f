package teacher

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dottech/backend/core/user"
)

// InitValidators registers struct level validation for registration input.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(newTeacherStructValidation, NewTeacher{})
}

func newTeacherStructValidation(sl validator.StructLevel) {
	if nt, ok := sl.Current().Interface().(NewTeacher); ok {
		user.ValidatePassword(nt.Password, sl, nt.FirstName, nt.LastName, nt.Email)
	}
}
