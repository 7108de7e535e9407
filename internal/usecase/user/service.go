package user

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrNotFound     = errors.New("user not found")
	ErrFileNotFound = errors.New("file not found")
	ErrSamePassword = errors.New("new password matches the current one")
	ErrNotJobSeeker = errors.New("user is not a job seeker")
)

// Resume is an uploaded resume waiting to be stored.
type Resume struct {
	Name        string
	ContentType string
	Data        []byte
}

type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	Location    *string
	Experience  *int
	Skills      []string
	Preferences *user.Preferences
	Resume      *Resume
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	return users, nil
}

// UpdateProfile applies a partial profile change. A resume upload replaces
// the user's stored file before the profile fields are written.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (user.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return user.User{}, err
	}

	upd := user.ProfileUpdate{
		Location:   trimmedPtr(in.Location),
		Experience: in.Experience,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		upd.Name = &name
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			return user.User{}, ErrInvalidInput
		}
		upd.Phone = &phone
	}
	if in.Experience != nil && *in.Experience < 0 {
		return user.User{}, ErrInvalidInput
	}
	if in.Skills != nil {
		upd.Skills = cleanLabels(in.Skills)
	}
	if in.Preferences != nil {
		if in.Preferences.Salary != nil && *in.Preferences.Salary < 0 {
			return user.User{}, ErrInvalidInput
		}
		upd.Preferences = &user.Preferences{
			JobTypes:   cleanLabels(in.Preferences.JobTypes),
			Industries: cleanLabels(in.Preferences.Industries),
			Locations:  cleanLabels(in.Preferences.Locations),
			Salary:     in.Preferences.Salary,
		}
	}

	if in.Resume != nil {
		if in.Resume.Name == "" || len(in.Resume.Data) == 0 {
			return user.User{}, ErrInvalidInput
		}
		ct := in.Resume.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		f, err := s.users.UpsertResume(ctx, user.File{
			ID:          uuid.New(),
			UserID:      id,
			Name:        in.Resume.Name,
			ContentType: ct,
			Data:        in.Resume.Data,
		})
		if err != nil {
			return user.User{}, ErrInternal
		}
		upd.Resume = &user.FileRef{FileID: f.ID, Name: f.Name}
	}

	updated, err := s.users.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	if !isValidPassword(password) {
		return ErrInvalidInput
	}
	usr, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) == nil {
		return ErrSamePassword
	}

	hash, err := hashPassword(password)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return ErrInternal
	}
	return nil
}

// RecordInteraction remembers that a job seeker opened a job. added is false
// when the job was already recorded.
func (s *Service) RecordInteraction(ctx context.Context, id, jobID uuid.UUID) (user.User, bool, error) {
	usr, err := s.GetUser(ctx, id)
	if err != nil {
		return user.User{}, false, err
	}
	if !usr.IsJobSeeker() {
		return user.User{}, false, ErrNotJobSeeker
	}
	if usr.HasInteracted(jobID) {
		return usr, false, nil
	}

	added, err := s.users.AppendInteraction(ctx, id, jobID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, false, ErrNotFound
		}
		return user.User{}, false, ErrInternal
	}
	if !added {
		return usr, false, nil
	}
	usr.Interactions = append(usr.Interactions, jobID)
	return usr, true, nil
}

func (s *Service) GetResume(ctx context.Context, fileID uuid.UUID) (user.File, error) {
	f, err := s.users.GetFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, user.ErrFileNotFound) {
			return user.File{}, ErrFileNotFound
		}
		return user.File{}, ErrInternal
	}
	return f, nil
}

func (s *Service) GetResumeByUser(ctx context.Context, userID uuid.UUID) (user.File, error) {
	f, err := s.users.GetFileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrFileNotFound) {
			return user.File{}, ErrFileNotFound
		}
		return user.File{}, ErrInternal
	}
	return f, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return u
}
