package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplyInput struct {
	JobID       uuid.UUID
	UserID      uuid.UUID
	Email       string
	Name        string
	Phone       string
	Location    string
	Resume      *Upload
	CoverLetter *Upload
	// ResumeFileID reuses the resume stored on the applicant's profile.
	ResumeFileID *uuid.UUID
}

// ApplicationCheck answers whether a user already applied to a job.
type ApplicationCheck struct {
	Applied       bool
	ApplicationID uuid.UUID
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error)
	Check(ctx context.Context, actor Actor, userID, jobID uuid.UUID) (ApplicationCheck, error)
	ListApplications(ctx context.Context) ([]application.View, error)
	ListUserApplications(ctx context.Context, actor Actor, userID uuid.UUID) ([]application.View, error)
	ListEmployerApplications(ctx context.Context, actor Actor, employerID uuid.UUID) ([]application.View, error)
	GetApplication(ctx context.Context, actor Actor, id uuid.UUID) (application.View, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error)
	DeleteApplication(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)
	GetFile(ctx context.Context, actor Actor, fileID uuid.UUID) (application.File, error)
}

type Application struct {
	applications application.Repository
	jobs         job.Repository
	users        user.Repository
	invalidate   recommendationInvalidator
}

func NewApplicationUsecase(applications application.Repository, jobs job.Repository, users user.Repository, cache RecommendationCache, logger *zap.Logger) *Application {
	return &Application{
		applications: applications,
		jobs:         jobs,
		users:        users,
		invalidate:   newRecommendationInvalidator(cache, logger),
	}
}

// Apply submits an application. Contact fields left blank are taken from the
// applicant's profile, and a resume is mandatory either as an upload or as a
// reference to the stored profile resume.
func (u *Application) Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error) {
	if !actor.CanActFor(in.UserID) {
		return application.Application{}, ErrForbidden
	}
	if in.JobID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	applicant, err := u.users.GetUserByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrUserNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !applicant.IsJobSeeker() {
		return application.Application{}, ErrNotJobSeeker
	}
	if _, err := u.jobs.GetJobByID(ctx, in.JobID); err != nil {
		return application.Application{}, mapJobErr(err)
	}

	resume, err := u.resolveResume(ctx, in)
	if err != nil {
		return application.Application{}, err
	}
	var cover *application.NewFile
	if in.CoverLetter != nil {
		if !in.CoverLetter.valid() {
			return application.Application{}, ErrInvalidInput
		}
		cover = &application.NewFile{Name: in.CoverLetter.Name, ContentType: in.CoverLetter.contentType(), Data: in.CoverLetter.Data}
	}

	a, err := u.applications.CreateApplication(ctx, application.CreateInput{
		JobID:  in.JobID,
		UserID: in.UserID,
		Applicant: application.Applicant{
			Email:    firstNonEmpty(in.Email, applicant.Email),
			Name:     firstNonEmpty(in.Name, applicant.Name),
			Phone:    firstNonEmpty(in.Phone, applicant.Phone),
			Location: firstNonEmpty(in.Location, derefString(applicant.Location)),
		},
		Resume:      resume,
		CoverLetter: cover,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}
	u.invalidate.forUser(ctx, in.UserID)
	return a, nil
}

func (u *Application) resolveResume(ctx context.Context, in ApplyInput) (*application.NewFile, error) {
	if in.Resume != nil {
		if !in.Resume.valid() {
			return nil, ErrInvalidInput
		}
		return &application.NewFile{Name: in.Resume.Name, ContentType: in.Resume.contentType(), Data: in.Resume.Data}, nil
	}
	if in.ResumeFileID == nil {
		return nil, ErrInvalidInput
	}

	f, err := u.users.GetFile(ctx, *in.ResumeFileID)
	if err != nil {
		if errors.Is(err, user.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, ErrInternal
	}
	if f.UserID != in.UserID {
		return nil, ErrFileNotFound
	}
	return &application.NewFile{Name: f.Name, ContentType: f.ContentType, Data: f.Data}, nil
}

func (u *Application) Check(ctx context.Context, actor Actor, userID, jobID uuid.UUID) (ApplicationCheck, error) {
	if !actor.CanActFor(userID) {
		return ApplicationCheck{}, ErrForbidden
	}
	a, err := u.applications.FindApplication(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return ApplicationCheck{Applied: false}, nil
		}
		return ApplicationCheck{}, ErrInternal
	}
	return ApplicationCheck{Applied: true, ApplicationID: a.ID}, nil
}

func (u *Application) ListApplications(ctx context.Context) ([]application.View, error) {
	out, err := u.applications.ListApplications(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Application) ListUserApplications(ctx context.Context, actor Actor, userID uuid.UUID) ([]application.View, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}
	out, err := u.applications.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// ListEmployerApplications returns applications received on an employer's jobs.
func (u *Application) ListEmployerApplications(ctx context.Context, actor Actor, employerID uuid.UUID) ([]application.View, error) {
	if !actor.CanActFor(employerID) {
		return nil, ErrForbidden
	}
	jobs, err := u.jobs.ListJobsByOwner(ctx, employerID)
	if err != nil {
		return nil, ErrInternal
	}
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	out, err := u.applications.ListApplicationsByJobs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// GetApplication is visible to the applicant, the job owner and admins.
func (u *Application) GetApplication(ctx context.Context, actor Actor, id uuid.UUID) (application.View, error) {
	v, err := u.applications.GetApplication(ctx, id)
	if err != nil {
		return application.View{}, mapApplicationErr(err)
	}
	if actor.CanActFor(v.UserID) {
		return v, nil
	}
	ok, err := u.ownsJob(ctx, actor, v.JobID)
	if err != nil {
		return application.View{}, err
	}
	if !ok {
		return application.View{}, ErrForbidden
	}
	return v, nil
}

// UpdateStatus may only be called by the owner of the job or an admin.
func (u *Application) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return application.Application{}, ErrInvalidInput
	}
	v, err := u.applications.GetApplication(ctx, id)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}
	if !actor.Admin {
		ok, err := u.ownsJob(ctx, actor, v.JobID)
		if err != nil {
			return application.Application{}, err
		}
		if !ok {
			return application.Application{}, ErrForbidden
		}
	}

	a, err := u.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}
	return a, nil
}

// DeleteApplication withdraws an application; only the applicant or an admin may.
func (u *Application) DeleteApplication(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	v, err := u.applications.GetApplication(ctx, id)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}
	if !actor.CanActFor(v.UserID) {
		return application.Application{}, ErrForbidden
	}

	a, err := u.applications.DeleteApplication(ctx, id)
	if err != nil {
		return application.Application{}, mapApplicationErr(err)
	}
	u.invalidate.forUser(ctx, a.UserID)
	return a, nil
}

// GetFile returns an application upload to the applicant, the job owner or an admin.
func (u *Application) GetFile(ctx context.Context, actor Actor, fileID uuid.UUID) (application.File, error) {
	f, err := u.applications.GetFile(ctx, fileID)
	if err != nil {
		return application.File{}, mapApplicationErr(err)
	}
	if actor.CanActFor(f.UserID) {
		return f, nil
	}
	v, err := u.applications.GetApplication(ctx, f.ApplicationID)
	if err != nil {
		return application.File{}, mapApplicationErr(err)
	}
	ok, err := u.ownsJob(ctx, actor, v.JobID)
	if err != nil {
		return application.File{}, err
	}
	if !ok {
		return application.File{}, ErrForbidden
	}
	return f, nil
}

func (u *Application) ownsJob(ctx context.Context, actor Actor, jobID uuid.UUID) (bool, error) {
	if !actor.Employer {
		return false, nil
	}
	j, err := u.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return false, nil
		}
		return false, ErrInternal
	}
	return j.OwnerID == actor.UserID, nil
}

func mapApplicationErr(err error) error {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, application.ErrFileNotFound):
		return ErrFileNotFound
	default:
		return ErrInternal
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
