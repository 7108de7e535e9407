package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrFileNotFound = errors.New("user file not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	ListUsers(ctx context.Context) ([]User, error)
	ListJobSeekers(ctx context.Context) ([]User, error)
	CountJobSeekers(ctx context.Context) (int, error)

	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
	AppendInteraction(ctx context.Context, id uuid.UUID, jobID uuid.UUID) (bool, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (User, error)

	UpsertResume(ctx context.Context, f File) (File, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (File, error)
	GetFileByUserID(ctx context.Context, userID uuid.UUID) (File, error)
}
