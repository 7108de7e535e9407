package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/mail"
	"jobboard/internal/ws"

	"github.com/google/uuid"
)

type fakeUsers struct {
	user.Repository
	mu    sync.Mutex
	byID  map[uuid.UUID]user.User
	files map[uuid.UUID]user.File
	err   error
}

func newFakeUsers(users ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]user.User{}, files: map[uuid.UUID]user.File{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) GetUserByResetToken(_ context.Context, token string, now time.Time) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) ListJobSeekers(ctx context.Context) ([]user.User, error) {
	all, _ := f.ListUsers(ctx)
	out := make([]user.User, 0, len(all))
	for _, u := range all {
		if u.IsJobSeeker() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) CountJobSeekers(ctx context.Context) (int, error) {
	seekers, _ := f.ListJobSeekers(ctx)
	return len(seekers), nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Location != nil {
		u.Location = in.Location
	}
	if in.Experience != nil {
		u.Experience = in.Experience
	}
	if in.Skills != nil {
		u.Skills = in.Skills
	}
	if in.Preferences != nil {
		u.Preferences = in.Preferences
	}
	if in.Resume != nil {
		u.Resume = in.Resume
	}
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.PasswordHash = hash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) SetResetToken(_ context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiresAt
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) ClearResetToken(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) AppendInteraction(_ context.Context, id, jobID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return false, user.ErrNotFound
	}
	if u.HasInteracted(jobID) {
		return false, nil
	}
	u.Interactions = append(u.Interactions, jobID)
	f.byID[id] = u
	return true, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	delete(f.byID, id)
	return u, nil
}

func (f *fakeUsers) UpsertResume(_ context.Context, file user.File) (user.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.files {
		if existing.UserID == file.UserID {
			delete(f.files, id)
		}
	}
	f.files[file.ID] = file
	return file, nil
}

func (f *fakeUsers) GetFile(_ context.Context, id uuid.UUID) (user.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return user.File{}, user.ErrFileNotFound
	}
	return file, nil
}

type fakeJobs struct {
	job.Repository
	mu   sync.Mutex
	byID map[uuid.UUID]job.Job
	list []uuid.UUID
}

func newFakeJobs(jobs ...job.Job) *fakeJobs {
	f := &fakeJobs{byID: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		f.byID[j.ID] = j
		f.list = append(f.list, j.ID)
	}
	return f
}

func (f *fakeJobs) CreateJob(_ context.Context, j job.Job) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	f.byID[j.ID] = j
	f.list = append(f.list, j.ID)
	return j, nil
}

func (f *fakeJobs) GetJobByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) ListJobs(context.Context) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]job.Job, 0, len(f.list))
	for _, id := range f.list {
		if j, ok := f.byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobs) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Job, error) {
	all, _ := f.ListJobs(ctx)
	out := make([]job.Job, 0)
	for _, j := range all {
		if j.OwnerID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobs) SearchJobs(ctx context.Context, sf job.SearchFilter) ([]job.Job, error) {
	all, _ := f.ListJobs(ctx)
	out := make([]job.Job, 0)
	for _, j := range all {
		if len(sf.JobTypes) > 0 && !containsFold(sf.JobTypes, j.JobType) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobs) UpdateJob(_ context.Context, id uuid.UUID, in job.Update) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Salary != nil {
		j.Salary = in.Salary
	}
	f.byID[id] = j
	return j, nil
}

func (f *fakeJobs) DeleteJob(_ context.Context, id uuid.UUID, ownerID *uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok || (ownerID != nil && j.OwnerID != *ownerID) {
		return job.Job{}, job.ErrNotFound
	}
	delete(f.byID, id)
	return j, nil
}

func (f *fakeJobs) CountJobs(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

type fakeApplications struct {
	application.Repository
	mu    sync.Mutex
	byID  map[uuid.UUID]application.Application
	files map[uuid.UUID]application.File
	jobs  *fakeJobs
}

func newFakeApplications(jobs *fakeJobs) *fakeApplications {
	return &fakeApplications{
		byID:  map[uuid.UUID]application.Application{},
		files: map[uuid.UUID]application.File{},
		jobs:  jobs,
	}
}

func (f *fakeApplications) CreateApplication(_ context.Context, in application.CreateInput) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.UserID == in.UserID && a.JobID == in.JobID {
			return application.Application{}, application.ErrDuplicate
		}
	}
	a := application.Application{
		ID:        uuid.New(),
		JobID:     in.JobID,
		UserID:    in.UserID,
		Applicant: in.Applicant,
		Status:    application.StatusPending,
		AppliedAt: time.Now().UTC(),
	}
	attach := func(nf *application.NewFile) *application.FileRef {
		if nf == nil {
			return nil
		}
		id := uuid.New()
		f.files[id] = application.File{ID: id, ApplicationID: a.ID, UserID: in.UserID, Name: nf.Name, ContentType: nf.ContentType, Data: nf.Data}
		return &application.FileRef{FileID: id, Name: nf.Name}
	}
	a.Applicant.Resume = attach(in.Resume)
	a.Applicant.CoverLetter = attach(in.CoverLetter)
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeApplications) view(a application.Application) application.View {
	j, _ := f.jobs.GetJobByID(context.Background(), a.JobID)
	return application.View{
		ApplicationID: a.ID, JobID: a.JobID, UserID: a.UserID,
		JobTitle: j.Title, JobCompany: j.Company,
		Status: a.Status, AppliedAt: a.AppliedAt, Applicant: a.Applicant,
	}
}

func (f *fakeApplications) GetApplication(_ context.Context, id uuid.UUID) (application.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.View{}, application.ErrNotFound
	}
	return f.view(a), nil
}

func (f *fakeApplications) filter(keep func(application.Application) bool) []application.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]application.View, 0)
	for _, a := range f.byID {
		if keep(a) {
			out = append(out, f.view(a))
		}
	}
	return out
}

func (f *fakeApplications) ListApplications(context.Context) ([]application.View, error) {
	return f.filter(func(application.Application) bool { return true }), nil
}

func (f *fakeApplications) ListApplicationsByUser(_ context.Context, userID uuid.UUID) ([]application.View, error) {
	return f.filter(func(a application.Application) bool { return a.UserID == userID }), nil
}

func (f *fakeApplications) ListApplicationsByJobs(_ context.Context, jobIDs []uuid.UUID) ([]application.View, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range jobIDs {
		set[id] = true
	}
	return f.filter(func(a application.Application) bool { return set[a.JobID] }), nil
}

func (f *fakeApplications) FindApplication(_ context.Context, userID, jobID uuid.UUID) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.UserID == userID && a.JobID == jobID {
			return a, nil
		}
	}
	return application.Application{}, application.ErrNotFound
}

func (f *fakeApplications) AppliedJobIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uuid.UUID, 0)
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, a.JobID)
		}
	}
	return out, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, id uuid.UUID, status string) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	f.byID[id] = a
	return a, nil
}

func (f *fakeApplications) DeleteApplication(_ context.Context, id uuid.UUID) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	delete(f.byID, id)
	return a, nil
}

func (f *fakeApplications) CountApplications(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeApplications) GetFile(_ context.Context, id uuid.UUID) (application.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return application.File{}, application.ErrFileNotFound
	}
	return file, nil
}

type fakeCache struct {
	mu       sync.Mutex
	data     map[string][]job.Job
	deleted  []string
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]job.Job{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]job.Job)) = v
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.([]job.Job)
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]job.Job{}
	c.patterns = append(c.patterns, pattern)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To)
	}
	return out
}

type fakePusher struct {
	mu     sync.Mutex
	pushed map[uuid.UUID]ws.JobMatchedEvent
}

func (p *fakePusher) PushJobMatched(userID uuid.UUID, evt ws.JobMatchedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = map[uuid.UUID]ws.JobMatchedEvent{}
	}
	p.pushed[userID] = evt
	return nil
}

func seeker(email string, skills ...string) user.User {
	return user.User{ID: uuid.New(), Email: email, Name: email, Phone: "555", Skills: skills}
}

func employer(email string) user.User {
	return user.User{ID: uuid.New(), Email: email, Name: email, Phone: "555", IsEmployer: true}
}

func actorFor(u user.User) Actor {
	return Actor{UserID: u.ID, Admin: u.IsAdmin, Employer: u.IsEmployer}
}

func ptr[T any](v T) *T { return &v }
