package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/mail"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goJobInput() JobInput {
	return JobInput{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Company:     "Acme",
		Location:    "Berlin",
		Industry:    "Software",
		JobType:     "Full-time",
		Salary:      ptr(70000.0),
		Skills:      []string{"Go", "PostgreSQL"},
	}
}

func TestJob_CreateNotifiesMatchingSeekers(t *testing.T) {
	boss := employer("boss@example.com")
	fit := seeker("fit@example.com", "go", "postgresql")
	partial := seeker("partial@example.com", "go")
	users := newFakeUsers(boss, fit, partial)
	mailer := &fakeMailer{}
	pusher := &fakePusher{}
	c := newFakeCache()

	notifier := NewNotificationUsecase(NotificationDeps{
		Users:       users,
		Mailer:      mailer,
		Pusher:      pusher,
		FrontEndURL: "https://jobs.example.com",
	})
	uc := NewJobUsecase(newFakeJobs(), users, notifier, c, nil)

	created, err := uc.CreateJob(context.Background(), actorFor(boss), goJobInput())
	require.NoError(t, err)
	uc.Wait()

	assert.Equal(t, boss.ID, created.OwnerID)
	assert.Equal(t, []string{"fit@example.com"}, mailer.recipients())
	assert.Equal(t, mail.SubjectNewJobPost, mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTML, "https://jobs.example.com/jobs/"+created.ID.String())

	require.Contains(t, pusher.pushed, fit.ID)
	assert.Equal(t, created.ID, pusher.pushed[fit.ID].JobID)
	assert.NotContains(t, pusher.pushed, partial.ID)

	assert.Equal(t, []string{cache.RecommendedJobsPattern()}, c.patterns)
}

func TestJob_CreateRequiresEmployerAndFields(t *testing.T) {
	boss := employer("boss@example.com")
	ana := seeker("ana@example.com")
	uc := NewJobUsecase(newFakeJobs(), newFakeUsers(boss, ana), nil, nil, nil)

	_, err := uc.CreateJob(context.Background(), actorFor(ana), goJobInput())
	assert.ErrorIs(t, err, ErrForbidden)

	in := goJobInput()
	in.Title = "  "
	_, err = uc.CreateJob(context.Background(), actorFor(boss), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = goJobInput()
	in.Salary = ptr(-1.0)
	_, err = uc.CreateJob(context.Background(), actorFor(boss), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJob_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	boss := employer("boss@example.com")
	rival := employer("rival@example.com")
	admin := user.User{ID: uuid.New(), IsAdmin: true}
	posting := job.Job{ID: uuid.New(), OwnerID: boss.ID, Title: "Go Dev"}
	jobs := newFakeJobs(posting)
	uc := NewJobUsecase(jobs, newFakeUsers(boss, rival, admin), nil, newFakeCache(), nil)

	_, err := uc.UpdateJob(context.Background(), actorFor(rival), posting.ID, job.Update{Title: ptr("Mine now")})
	assert.ErrorIs(t, err, ErrJobNotFound)

	updated, err := uc.UpdateJob(context.Background(), actorFor(boss), posting.ID, job.Update{Title: ptr("Senior Go Dev")})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Dev", updated.Title)

	_, err = uc.UpdateJob(context.Background(), actorFor(boss), posting.ID, job.Update{Title: ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.DeleteJob(context.Background(), actorFor(rival), posting.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = uc.DeleteJob(context.Background(), actorFor(admin), posting.ID)
	require.NoError(t, err)

	_, err = uc.GetJob(context.Background(), posting.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJob_ListEmployerJobs(t *testing.T) {
	boss := employer("boss@example.com")
	ana := seeker("ana@example.com")
	admin := user.User{ID: uuid.New(), IsAdmin: true}
	jobs := newFakeJobs(
		job.Job{ID: uuid.New(), OwnerID: boss.ID, Title: "A"},
		job.Job{ID: uuid.New(), OwnerID: uuid.New(), Title: "B"},
	)
	uc := NewJobUsecase(jobs, newFakeUsers(boss, ana, admin), nil, nil, nil)

	out, err := uc.ListEmployerJobs(context.Background(), actorFor(boss), boss.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Title)

	_, err = uc.ListEmployerJobs(context.Background(), actorFor(ana), boss.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.ListEmployerJobs(context.Background(), actorFor(admin), ana.ID)
	assert.ErrorIs(t, err, ErrNotEmployer)

	_, err = uc.ListEmployerJobs(context.Background(), actorFor(admin), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJob_SearchRejectsInvertedSalaryRange(t *testing.T) {
	uc := NewJobUsecase(newFakeJobs(), newFakeUsers(), nil, nil, nil)
	_, err := uc.SearchJobs(context.Background(), job.SearchFilter{SalaryMin: ptr(90.0), SalaryMax: ptr(10.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	out, err := uc.SearchJobs(context.Background(), job.SearchFilter{JobTypes: []string{"remote"}})
	require.NoError(t, err)
	assert.Empty(t, out)
}
