package application

import (
	"context"

	"github.com/google/uuid"
)

// NewFile is an upload attached to an application at submission time.
type NewFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	JobID       uuid.UUID
	UserID      uuid.UUID
	Applicant   Applicant
	Resume      *NewFile
	CoverLetter *NewFile
}

type Repository interface {
	CreateApplication(ctx context.Context, in CreateInput) (Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (View, error)
	ListApplications(ctx context.Context) ([]View, error)
	ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]View, error)
	ListApplicationsByJobs(ctx context.Context, jobIDs []uuid.UUID) ([]View, error)
	FindApplication(ctx context.Context, userID, jobID uuid.UUID) (Application, error)
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Application, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) (Application, error)
	CountApplications(ctx context.Context) (int, error)

	GetFile(ctx context.Context, id uuid.UUID) (File, error)
}
