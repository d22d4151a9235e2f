package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dottech/backend/core/student"
	"github.com/dottech/backend/core/user"
)

type studentApi struct {
	validate *validator.Validate
	svc      *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := studentApi{
		validate: deps.Validate,
		svc:      deps.StudentSvc,
	}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query, teacherMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.PUT("/:id/marks", api.updateMarks)
	sg.DELETE("/:id", api.destroy, teacherMiddleware())
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id := ctx.Param("id")

	switch claims.Role {
	case user.RoleTeacher:
		std, err := api.svc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "finding student by ID")
		}
		return ctx.JSON(http.StatusOK, std)

	case user.RoleStudent:
		// students may only see their own profile, addressed by either the
		// profile id or the credential id
		std, err := api.svc.GetByUserID(ctx.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "finding student by owner")
		}
		if id != std.ID && id != claims.Subject {
			return errHttpForbidden
		}
		return ctx.JSON(http.StatusOK, std)
	}
	return errHttpForbidden
}

func (api *studentApi) update(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	targetID, err := api.resolveTargetID(ctx, claims)
	if err != nil {
		return err
	}

	std, err := api.svc.Update(ctx.Request().Context(), targetID, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) updateMarks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data student.Marks
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Marks")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	var targetID string
	switch claims.Role {
	case user.RoleStudent:
		// a student always grades their own record; the path id is ignored
		std, err := api.svc.GetByUserID(ctx.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "finding student by owner")
		}
		targetID = std.ID
	case user.RoleTeacher:
		targetID = ctx.Param("id")
	default:
		return errHttpForbidden
	}

	std, err := api.svc.UpdateMarks(ctx.Request().Context(), targetID, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating marks")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// resolveTargetID maps the caller to the profile they may modify. Teachers
// address any profile by id; students only their own.
func (api *studentApi) resolveTargetID(ctx echo.Context, claims Claims) (string, error) {
	id := ctx.Param("id")
	switch claims.Role {
	case user.RoleTeacher:
		return id, nil
	case user.RoleStudent:
		std, err := api.svc.GetByUserID(ctx.Request().Context(), claims.Subject)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return "", errHttpNotFound
			}
			return "", errors.Wrap(err, "finding student by owner")
		}
		if id != std.ID && id != claims.Subject {
			return "", errHttpForbidden
		}
		return std.ID, nil
	}
	return "", errHttpForbidden
}
