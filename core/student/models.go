package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/user"
)

// Marks is the fixed record of subject scores. A nil score means the subject
// has not been graded yet; a present score must be within [0,100].
type Marks struct {
	Mathematics     *float64 `json:"mathematics" validate:"omitempty,gte=0,lte=100"`
	Science         *float64 `json:"science" validate:"omitempty,gte=0,lte=100"`
	English         *float64 `json:"english" validate:"omitempty,gte=0,lte=100"`
	History         *float64 `json:"history" validate:"omitempty,gte=0,lte=100"`
	Geography       *float64 `json:"geography" validate:"omitempty,gte=0,lte=100"`
	ComputerScience *float64 `json:"computerScience" validate:"omitempty,gte=0,lte=100"`
	Physics         *float64 `json:"physics" validate:"omitempty,gte=0,lte=100"`
	Chemistry       *float64 `json:"chemistry" validate:"omitempty,gte=0,lte=100"`
	Biology         *float64 `json:"biology" validate:"omitempty,gte=0,lte=100"`
}

func (m Marks) Validate(validate *validator.Validate) error {
	return validate.Struct(m)
}

// Student is the profile record owned by exactly one credential.
type Student struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Age            int       `json:"age"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Marks          Marks     `json:"marks"`
	CreatedAt      time.Time `json:"createdAt"` // UTC
}

// NewStudent contains information needed to register a new student.
type NewStudent struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Age       int    `json:"age" validate:"required,gte=18"`
}

func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate, users *user.Service) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return users.CheckEmailUniqueness(ctx, ns.Email)
}

// UpdateStudent defines what information may be provided to modify an existing
// profile. Absent fields are left untouched.
type UpdateStudent struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Age       *int   `json:"age" validate:"omitempty,gte=18"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	us.Email = core.CleanString(us.Email, true /* lower */)
	return validate.Struct(us)
}
