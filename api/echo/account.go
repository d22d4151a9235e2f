package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/student"
	"github.com/dottech/backend/core/teacher"
	"github.com/dottech/backend/core/user"
)

type authApi struct {
	conf     *core.Config
	validate *validator.Validate
	users    *user.Service
	students *student.Service
	teachers *teacher.Service
}

func registerAuthAPI(g *echo.Group, deps *Deps) {
	api := authApi{
		conf:     deps.Conf,
		validate: deps.Validate,
		users:    deps.UserSvc,
		students: deps.StudentSvc,
		teachers: deps.TeacherSvc,
	}

	ag := g.Group("/auth")
	ag.POST("/register/student", api.registerStudent)
	ag.POST("/register/teacher", api.registerTeacher)
	ag.POST("/login", api.login)
	ag.GET("/me", api.me)
}

// Handlers

func (api *authApi) registerStudent(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.users); err != nil {
		return err
	}

	_, usr, err := api.students.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering student")
	}

	token, err := GenerateToken(GetUserClaims(usr, api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: newUserResponse(usr)})
}

func (api *authApi) registerTeacher(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.users); err != nil {
		return err
	}

	_, usr, err := api.teachers.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}

	token, err := GenerateToken(GetUserClaims(usr, api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: newUserResponse(usr)})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.users.GetByEmail(ctx.Request().Context(), data.Email)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errUserNotFound
		}
		return errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(data.Password); err != nil {
		return errWrongCredentials
	}

	token, err := GenerateToken(GetUserClaims(usr, api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: newUserResponse(usr)})
}

// me reports the caller's identity. It is the one endpoint that swallows any
// authentication failure into a null body instead of raising; clients use it
// as an "am I logged in" probe.
func (api *authApi) me(ctx echo.Context) error {
	claims, err := parseClaims(ctx.Request().Header.Get(echo.HeaderAuthorization), api.conf)
	if err != nil {
		return ctx.JSON(http.StatusOK, nil)
	}
	return ctx.JSON(http.StatusOK, UserResponse{ID: claims.Subject, Email: claims.Email, Role: claims.Role})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserResponse struct {
		ID    string    `json:"id"`
		Email string    `json:"email"`
		Role  user.Role `json:"role"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func newUserResponse(usr user.User) UserResponse {
	return UserResponse{ID: usr.ID, Email: usr.Email, Role: usr.Role}
}
