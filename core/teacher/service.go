package teacher

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/user"
)

// ErrNotFound is returned when a profile id does not resolve.
var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		// QueryAllTeachers returns all profiles, newest-created first.
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
	}

	Service struct {
		repo   Repository
		users  *user.Service
		logger core.Logger
	}
)

func NewService(repo Repository, users *user.Service, logger core.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Register creates the credential then the profile (best-effort two-step).
func (svc *Service) Register(ctx context.Context, nt NewTeacher) (Teacher, user.User, error) {
	usr, err := svc.users.Create(ctx, nt.Email, nt.Password, user.RoleTeacher)
	if err != nil {
		return Teacher{}, user.User{}, errors.Wrap(err, "creating credential")
	}

	tch := Teacher{
		UserID:    usr.ID,
		FirstName: nt.FirstName,
		LastName:  nt.LastName,
		Email:     nt.Email,
		CreatedAt: time.Now().UTC(),
	}
	tch, err = svc.repo.CreateTeacher(ctx, tch)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("profile creation failed; credential %s is orphaned", usr.ID), err)
		return Teacher{}, user.User{}, errors.Wrap(err, "creating profile")
	}
	return tch, usr, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}
