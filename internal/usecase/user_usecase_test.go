package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/cache"
	ucuser "jobboard/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UpdateProfileSelfOrAdmin(t *testing.T) {
	ana := seeker("ana@example.com")
	bob := seeker("bob@example.com")
	admin := user.User{ID: uuid.New(), Email: "root@example.com", IsAdmin: true}
	users := newFakeUsers(ana, bob, admin)
	c := newFakeCache()
	uc := NewUserUsecase(users, newFakeJobs(), c, nil)

	in := ucuser.UpdateProfileInput{
		Skills:      []string{" Go ", "go", "SQL"},
		Preferences: &user.Preferences{Locations: []string{"Berlin"}, Salary: ptr(50000.0)},
	}

	_, err := uc.UpdateProfile(context.Background(), actorFor(bob), ana.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.UpdateProfile(context.Background(), actorFor(ana), ana.ID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, updated.Skills)
	assert.Equal(t, []string{"Berlin"}, updated.Preferences.Locations)
	assert.Contains(t, c.deleted, cache.RecommendedJobsKey(ana.ID))

	_, err = uc.UpdateProfile(context.Background(), actorFor(admin), ana.ID, ucuser.UpdateProfileInput{Name: ptr("Ana B")})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", users.byID[ana.ID].Name)
}

func TestUser_UpdateProfileStoresResume(t *testing.T) {
	ana := seeker("ana@example.com")
	users := newFakeUsers(ana)
	uc := NewUserUsecase(users, newFakeJobs(), nil, nil)

	updated, err := uc.UpdateProfile(context.Background(), actorFor(ana), ana.ID, ucuser.UpdateProfileInput{
		Resume: &ucuser.Resume{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Resume)
	assert.Equal(t, "cv.pdf", updated.Resume.Name)

	f, err := uc.GetResume(context.Background(), updated.Resume.FileID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)

	_, err = uc.GetResume(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestUser_RecordInteraction(t *testing.T) {
	ana := seeker("ana@example.com")
	boss := employer("boss@example.com")
	posting := job.Job{ID: uuid.New(), Title: "Go Dev"}
	users := newFakeUsers(ana, boss)
	uc := NewUserUsecase(users, newFakeJobs(posting), newFakeCache(), nil)

	_, added, err := uc.RecordInteraction(context.Background(), actorFor(ana), ana.ID, posting.ID)
	require.NoError(t, err)
	assert.True(t, added)

	u, added, err := uc.RecordInteraction(context.Background(), actorFor(ana), ana.ID, posting.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []uuid.UUID{posting.ID}, u.Interactions)

	_, _, err = uc.RecordInteraction(context.Background(), actorFor(boss), boss.ID, posting.ID)
	assert.ErrorIs(t, err, ErrNotJobSeeker)

	_, _, err = uc.RecordInteraction(context.Background(), actorFor(ana), ana.ID, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, _, err = uc.RecordInteraction(context.Background(), actorFor(boss), ana.ID, posting.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUser_ChangePassword(t *testing.T) {
	ana := seeker("ana@example.com")
	users := newFakeUsers(ana)
	uc := NewUserUsecase(users, newFakeJobs(), nil, nil)

	require.NoError(t, uc.ChangePassword(context.Background(), actorFor(ana), "first-password"))
	assert.ErrorIs(t, uc.ChangePassword(context.Background(), actorFor(ana), "first-password"), ucuser.ErrSamePassword)
	assert.ErrorIs(t, uc.ChangePassword(context.Background(), actorFor(ana), "short"), ErrInvalidInput)
	assert.ErrorIs(t, uc.ChangePassword(context.Background(), Actor{}, "first-password"), ErrUnauthorized)
}

func TestUser_DeleteUser(t *testing.T) {
	ana := seeker("ana@example.com")
	uc := NewUserUsecase(newFakeUsers(ana), newFakeJobs(), nil, nil)

	deleted, err := uc.DeleteUser(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, deleted.ID)

	_, err = uc.GetUser(context.Background(), ana.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
