package student

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/dottech/backend/core"
	"github.com/dottech/backend/core/user"
)

// ErrNotFound is returned when a profile id or owner does not resolve.
var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryAllStudents returns all profiles, newest-created first.
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByUserID(ctx context.Context, userID string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		// SetMarks replaces the whole marks record.
		SetMarks(ctx context.Context, id string, marks Marks) (Student, error)
		SetProfilePicture(ctx context.Context, id, url string) error
		DeleteStudent(ctx context.Context, id string) error
	}

	Service struct {
		repo   Repository
		users  *user.Service
		mail   core.EmailService
		logger core.Logger
		conf   *core.Config
	}
)

func NewService(repo Repository, users *user.Service, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		mail:   mailSvc,
		logger: logger,
		conf:   conf,
	}
}

// Register creates the credential then the profile. The two writes are not
// wrapped in a transaction; a failure on the second write leaves an orphaned
// credential, which is logged for repair.
func (svc *Service) Register(ctx context.Context, ns NewStudent) (Student, user.User, error) {
	usr, err := svc.users.Create(ctx, ns.Email, ns.Password, user.RoleStudent)
	if err != nil {
		return Student{}, user.User{}, errors.Wrap(err, "creating credential")
	}

	std := Student{
		UserID:    usr.ID,
		FirstName: ns.FirstName,
		LastName:  ns.LastName,
		Email:     ns.Email,
		Age:       ns.Age,
		CreatedAt: time.Now().UTC(),
	}
	std, err = svc.repo.CreateStudent(ctx, std)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("profile creation failed; credential %s is orphaned", usr.ID), err)
		return Student{}, user.User{}, errors.Wrap(err, "creating profile")
	}

	svc.sendWelcomeEmail(std)
	return std, usr, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByUserID(ctx context.Context, userID string) (Student, error) {
	return svc.repo.GetStudentByUserID(ctx, userID)
}

// Update applies a partial profile update. An email change is checked for
// global uniqueness and cascaded to the owning credential first.
func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	if us.Email != "" && us.Email != std.Email {
		if err = svc.users.CheckEmailUniqueness(ctx, us.Email); err != nil {
			return Student{}, err
		}
		if err = svc.users.UpdateEmail(ctx, std.UserID, us.Email); err != nil {
			return Student{}, errors.Wrap(err, "updating credential email")
		}
		std.Email = us.Email
	}
	if us.FirstName != "" {
		std.FirstName = us.FirstName
	}
	if us.LastName != "" {
		std.LastName = us.LastName
	}
	if us.Age != nil {
		std.Age = *us.Age
	}
	return svc.repo.UpdateStudent(ctx, std)
}

// UpdateMarks replaces the whole marks record with the supplied one; subjects
// absent from the input lose any previously recorded score.
func (svc *Service) UpdateMarks(ctx context.Context, id string, marks Marks) (Student, error) {
	return svc.repo.SetMarks(ctx, id, marks)
}

func (svc *Service) SetProfilePictureByUser(ctx context.Context, userID, url string) error {
	std, err := svc.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return svc.repo.SetProfilePicture(ctx, std.ID, url)
}

// Delete removes the credential then the profile (best-effort two-step).
func (svc *Service) Delete(ctx context.Context, id string) error {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.users.Delete(ctx, std.UserID); err != nil {
		return errors.Wrap(err, "deleting credential")
	}
	if err = svc.repo.DeleteStudent(ctx, id); err != nil {
		svc.logger.Error(fmt.Sprintf("profile %s survived credential deletion; needs repair", id), err)
		return errors.Wrap(err, "deleting profile")
	}
	return nil
}

func (svc *Service) sendWelcomeEmail(std Student) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: std.FirstName + " " + std.LastName, Address: std.Email}},
		Subject:      "Welcome to Student Registration System",
		TemplateName: "welcome",
		TemplateData: struct{ FirstName string }{std.FirstName},
	}
	svc.mail.SendMessages(msg)
}
