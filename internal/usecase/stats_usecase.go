package usecase

import (
	"context"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"golang.org/x/sync/errgroup"
)

type StatsUsecase interface {
	Counts(ctx context.Context) (user.Counts, error)
}

type Stats struct {
	users        user.Repository
	jobs         job.Repository
	applications application.Repository
}

func NewStatsUsecase(users user.Repository, jobs job.Repository, applications application.Repository) *Stats {
	return &Stats{users: users, jobs: jobs, applications: applications}
}

func (u *Stats) Counts(ctx context.Context) (user.Counts, error) {
	var c user.Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.JobSeekers, err = u.users.CountJobSeekers(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Jobs, err = u.jobs.CountJobs(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Applications, err = u.applications.CountApplications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return user.Counts{}, ErrInternal
	}
	return c, nil
}
