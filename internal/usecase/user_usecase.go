package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	ucuser "jobboard/internal/usecase/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateProfile(ctx context.Context, actor Actor, id uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error)
	ChangePassword(ctx context.Context, actor Actor, password string) error
	RecordInteraction(ctx context.Context, actor Actor, id, jobID uuid.UUID) (user.User, bool, error)
	GetResume(ctx context.Context, fileID uuid.UUID) (user.File, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (user.User, error)
}

type User struct {
	userSvc    *ucuser.Service
	jobs       job.Repository
	invalidate recommendationInvalidator
}

func NewUserUsecase(users user.Repository, jobs job.Repository, cache RecommendationCache, logger *zap.Logger) *User {
	return &User{
		userSvc:    ucuser.NewService(users),
		jobs:       jobs,
		invalidate: newRecommendationInvalidator(cache, logger),
	}
}

func (u *User) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.userSvc.GetUser(ctx, id)
	return usr, mapUserErr(err)
}

func (u *User) ListUsers(ctx context.Context) ([]user.User, error) {
	users, err := u.userSvc.ListUsers(ctx)
	return users, mapUserErr(err)
}

func (u *User) UpdateProfile(ctx context.Context, actor Actor, id uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error) {
	if !actor.CanActFor(id) {
		return user.User{}, ErrForbidden
	}
	usr, err := u.userSvc.UpdateProfile(ctx, id, in)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	u.invalidate.forUser(ctx, id)
	return usr, nil
}

func (u *User) ChangePassword(ctx context.Context, actor Actor, password string) error {
	if actor.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	err := u.userSvc.ChangePassword(ctx, actor.UserID, password)
	if errors.Is(err, ucuser.ErrSamePassword) {
		return err
	}
	return mapUserErr(err)
}

// RecordInteraction stores a viewed job on the seeker's profile. The second
// result is false when the interaction already existed.
func (u *User) RecordInteraction(ctx context.Context, actor Actor, id, jobID uuid.UUID) (user.User, bool, error) {
	if !actor.CanActFor(id) {
		return user.User{}, false, ErrForbidden
	}
	if _, err := u.jobs.GetJobByID(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return user.User{}, false, ErrJobNotFound
		}
		return user.User{}, false, ErrInternal
	}

	usr, added, err := u.userSvc.RecordInteraction(ctx, id, jobID)
	if err != nil {
		return user.User{}, false, mapUserErr(err)
	}
	if added {
		u.invalidate.forUser(ctx, id)
	}
	return usr, added, nil
}

func (u *User) GetResume(ctx context.Context, fileID uuid.UUID) (user.File, error) {
	f, err := u.userSvc.GetResume(ctx, fileID)
	return f, mapUserErr(err)
}

func (u *User) DeleteUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.userSvc.DeleteUser(ctx, id)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	u.invalidate.forUser(ctx, id)
	return usr, nil
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ucuser.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, ucuser.ErrFileNotFound):
		return ErrFileNotFound
	case errors.Is(err, ucuser.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ucuser.ErrNotJobSeeker):
		return ErrNotJobSeeker
	default:
		return ErrInternal
	}
}
