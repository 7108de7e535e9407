package job

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateJob(ctx context.Context, j Job) (Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Job, error)
	SearchJobs(ctx context.Context, f SearchFilter) ([]Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, in Update) (Job, error)
	// DeleteJob removes the job. A non-nil ownerID restricts the delete to
	// jobs owned by that user.
	DeleteJob(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (Job, error)
	CountJobs(ctx context.Context) (int, error)
}
