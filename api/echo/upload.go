package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/student"
	"github.com/dottech/backend/core/user"
)

type uploadApi struct {
	files    core.FileStore
	students *student.Service
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *Deps) {
	api := uploadApi{
		files:    deps.Files,
		students: deps.StudentSvc,
	}

	ug := g.Group("/uploads", jwt, middleware.BodyLimit(maxUploadSize))
	ug.POST("/profile-picture", api.profilePicture)
}

func (api *uploadApi) profilePicture(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	fileHdr, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(errors.New("a file is required"), core.FieldError{Field: "file", Error: "this field is required"})
	}
	src, err := fileHdr.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	mimetype := fileHdr.Header.Get(echo.HeaderContentType)
	encoding := fileHdr.Header.Get("Content-Transfer-Encoding")
	if encoding == "" {
		encoding = "7bit"
	}

	desc, err := api.files.Save(ctx.Request().Context(), claims.Subject, fileHdr.Filename, mimetype, encoding, src)
	if err != nil {
		return errors.Wrap(err, "storing upload")
	}

	// a student's picture URL lands on their own profile; teachers just get
	// the descriptor back
	if claims.Role == user.RoleStudent {
		if err = api.students.SetProfilePictureByUser(ctx.Request().Context(), claims.Subject, desc.URL); err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return errHttpNotFound
			}
			return errors.Wrap(err, "saving picture URL")
		}
	}
	return ctx.JSON(http.StatusOK, desc)
}
