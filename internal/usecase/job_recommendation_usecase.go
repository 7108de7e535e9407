package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, actor Actor, userID uuid.UUID) ([]job.Job, error)
}

type JobRecommendation struct {
	jobs         job.Repository
	users        user.Repository
	applications application.Repository
	cache        RecommendationCache
	opts         matching.Options
	logger       *zap.Logger
}

func NewJobRecommendationUsecase(
	jobs job.Repository,
	users user.Repository,
	applications application.Repository,
	c RecommendationCache,
	opts matching.Options,
	logger *zap.Logger,
) *JobRecommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRecommendation{jobs: jobs, users: users, applications: applications, cache: c, opts: opts, logger: logger}
}

// GetRecommendations returns up to opts.Limit jobs for a job seeker, served
// from the cache when a fresh list exists.
func (u *JobRecommendation) GetRecommendations(ctx context.Context, actor Actor, userID uuid.UUID) ([]job.Job, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	key := cache.RecommendedJobsKey(userID)
	if u.cache != nil {
		var cached []job.Job
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("recommendation cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	var (
		seeker  user.User
		catalog []job.Job
		applied []uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seeker, err = u.users.GetUserByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = u.jobs.ListJobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		applied, err = u.applications.AppliedJobIDs(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}
	if !seeker.IsJobSeeker() {
		return nil, ErrNotJobSeeker
	}

	appliedSet := make(map[uuid.UUID]struct{}, len(applied))
	for _, id := range applied {
		appliedSet[id] = struct{}{}
	}
	out := matching.Recommend(seeker, catalog, func(id uuid.UUID) bool {
		_, ok := appliedSet[id]
		return ok
	}, u.opts)
	if out == nil {
		out = []job.Job{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Warn("recommendation cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return out, nil
}
