package teacher

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/user"
)

// Teacher is the profile record owned by exactly one credential. It is
// immutable after registration; no update operation is exposed.
type Teacher struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// NewTeacher contains information needed to register a new teacher.
type NewTeacher struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

func (nt *NewTeacher) Validate(ctx context.Context, validate *validator.Validate, users *user.Service) error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return users.CheckEmailUniqueness(ctx, nt.Email)
}
