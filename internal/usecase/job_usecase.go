package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notifyTimeout = 2 * time.Minute

type JobInput struct {
	Title            string
	Description      string
	Company          string
	Location         string
	Industry         string
	JobType          string
	Salary           *float64
	Skills           []string
	Requirements     []string
	Responsibilities []string
	Deadline         *time.Time
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, error)
	ListEmployerJobs(ctx context.Context, actor Actor, employerID uuid.UUID) ([]job.Job, error)
	CreateJob(ctx context.Context, actor Actor, in JobInput) (job.Job, error)
	UpdateJob(ctx context.Context, actor Actor, id uuid.UUID, in job.Update) (job.Job, error)
	DeleteJob(ctx context.Context, actor Actor, id uuid.UUID) (job.Job, error)
}

type Job struct {
	jobs       job.Repository
	users      user.Repository
	notifier   JobNotifier
	invalidate recommendationInvalidator
	logger     *zap.Logger

	pending sync.WaitGroup
}

func NewJobUsecase(jobs job.Repository, users user.Repository, notifier JobNotifier, cache RecommendationCache, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		jobs:       jobs,
		users:      users,
		notifier:   notifier,
		invalidate: newRecommendationInvalidator(cache, logger),
		logger:     logger,
	}
}

func (u *Job) ListJobs(ctx context.Context) ([]job.Job, error) {
	jobs, err := u.jobs.ListJobs(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *Job) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		return job.Job{}, mapJobErr(err)
	}
	return j, nil
}

func (u *Job) SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, error) {
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return nil, ErrInvalidInput
	}
	jobs, err := u.jobs.SearchJobs(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

// ListEmployerJobs returns an employer's postings. Employers only see their own.
func (u *Job) ListEmployerJobs(ctx context.Context, actor Actor, employerID uuid.UUID) ([]job.Job, error) {
	if !actor.CanActFor(employerID) {
		return nil, ErrForbidden
	}
	owner, err := u.users.GetUserByID(ctx, employerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}
	if !owner.IsEmployer {
		return nil, ErrNotEmployer
	}

	jobs, err := u.jobs.ListJobsByOwner(ctx, employerID)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

func (u *Job) CreateJob(ctx context.Context, actor Actor, in JobInput) (job.Job, error) {
	if !actor.Employer && !actor.Admin {
		return job.Job{}, ErrForbidden
	}
	j, err := newJob(actor.UserID, in)
	if err != nil {
		return job.Job{}, err
	}

	created, err := u.jobs.CreateJob(ctx, j)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidate.all(ctx)
	u.notifyAsync(ctx, created)
	return created, nil
}

func (u *Job) notifyAsync(ctx context.Context, j job.Job) {
	if u.notifier == nil {
		return
	}
	u.pending.Add(1)
	go func() {
		defer u.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if _, err := u.notifier.NotifyNewJob(nctx, j); err != nil {
			u.logger.Error("new job notification failed", zap.String("job_id", j.ID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight new-job notifications finish.
func (u *Job) Wait() {
	u.pending.Wait()
}

// UpdateJob applies a partial change. Employers may only touch their own
// postings; a foreign job reads as not found.
func (u *Job) UpdateJob(ctx context.Context, actor Actor, id uuid.UUID, in job.Update) (job.Job, error) {
	if !actor.Employer && !actor.Admin {
		return job.Job{}, ErrForbidden
	}
	if err := validateUpdate(in); err != nil {
		return job.Job{}, err
	}
	if !actor.Admin {
		current, err := u.jobs.GetJobByID(ctx, id)
		if err != nil {
			return job.Job{}, mapJobErr(err)
		}
		if current.OwnerID != actor.UserID {
			return job.Job{}, ErrJobNotFound
		}
	}

	updated, err := u.jobs.UpdateJob(ctx, id, in)
	if err != nil {
		return job.Job{}, mapJobErr(err)
	}
	u.invalidate.all(ctx)
	return updated, nil
}

func (u *Job) DeleteJob(ctx context.Context, actor Actor, id uuid.UUID) (job.Job, error) {
	if !actor.Employer && !actor.Admin {
		return job.Job{}, ErrForbidden
	}
	var owner *uuid.UUID
	if !actor.Admin {
		owner = &actor.UserID
	}
	deleted, err := u.jobs.DeleteJob(ctx, id, owner)
	if err != nil {
		return job.Job{}, mapJobErr(err)
	}
	u.invalidate.all(ctx)
	return deleted, nil
}

func newJob(ownerID uuid.UUID, in JobInput) (job.Job, error) {
	j := job.Job{
		OwnerID:          ownerID,
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		Company:          strings.TrimSpace(in.Company),
		Location:         strings.TrimSpace(in.Location),
		Industry:         strings.TrimSpace(in.Industry),
		JobType:          strings.TrimSpace(in.JobType),
		Salary:           in.Salary,
		Skills:           trimAll(in.Skills),
		Requirements:     trimAll(in.Requirements),
		Responsibilities: trimAll(in.Responsibilities),
		Deadline:         in.Deadline,
	}
	if j.Title == "" || j.Company == "" || j.Location == "" || j.Industry == "" || j.JobType == "" {
		return job.Job{}, ErrInvalidInput
	}
	if j.Salary != nil && *j.Salary < 0 {
		return job.Job{}, ErrInvalidInput
	}
	return j, nil
}

func validateUpdate(in job.Update) error {
	for _, s := range []*string{in.Title, in.Company, in.Location, in.Industry, in.JobType} {
		if s != nil && strings.TrimSpace(*s) == "" {
			return ErrInvalidInput
		}
	}
	if in.Salary != nil && *in.Salary < 0 {
		return ErrInvalidInput
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mapJobErr(err error) error {
	if errors.Is(err, job.ErrNotFound) {
		return ErrJobNotFound
	}
	return ErrInternal
}
