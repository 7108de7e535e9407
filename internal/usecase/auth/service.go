package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"jobboard/internal/domain/user"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ResetTokenBytes = 30
	ResetTokenTTL   = 30 * time.Minute
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidAccessCode      = errors.New("invalid employer access code")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
	ErrUserNotFound           = errors.New("user not found")
	ErrResetLinkExpired       = errors.New("reset link expired")
	ErrPasswordReused         = errors.New("password already used")
)

var validate = validator.New()

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Phone      string
	IsEmployer bool
	AccessCode string
}

type LoginInput struct {
	Email    string
	Password string
}

// ResetTicket is a freshly issued password reset token.
type ResetTicket struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	users              user.Repository
	employerAccessCode string
	now                func() time.Time
}

func NewService(users user.Repository, employerAccessCode string) *Service {
	return &Service{users: users, employerAccessCode: employerAccessCode, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if !isValidEmail(email) {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return user.User{}, ErrInvalidInput
	}
	if in.IsEmployer && !s.accessCodeMatches(in.AccessCode) {
		return user.User{}, ErrInvalidAccessCode
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		IsEmployer:   in.IsEmployer,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return SanitizeUser(created), nil
}

func (s *Service) accessCodeMatches(code string) bool {
	if s.employerAccessCode == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.employerAccessCode)) == 1
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return SanitizeUser(u), nil
}

// IssueResetToken stores a new single-use reset token on the account.
func (s *Service) IssueResetToken(ctx context.Context, email string) (ResetTicket, error) {
	email = normalizeEmail(email)
	if email == "" {
		return ResetTicket{}, ErrInvalidInput
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ResetTicket{}, ErrUserNotFound
		}
		return ResetTicket{}, ErrInternal
	}

	token, err := newResetToken()
	if err != nil {
		return ResetTicket{}, ErrInternal
	}
	expiresAt := s.now().UTC().Add(ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, token, expiresAt); err != nil {
		return ResetTicket{}, ErrInternal
	}

	return ResetTicket{User: SanitizeUser(u), Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if strings.TrimSpace(token) == "" {
		return ErrResetLinkExpired
	}
	if !isValidPassword(password) {
		return ErrInvalidInput
	}

	u, err := s.users.GetUserByResetToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrResetLinkExpired
		}
		return ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
		return ErrPasswordReused
	}

	hash, err := HashPassword(password)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return ErrInternal
	}
	if err := s.users.ClearResetToken(ctx, u.ID); err != nil {
		return ErrInternal
	}
	return nil
}

// ResetTokenExpired reports whether token no longer opens a reset.
func (s *Service) ResetTokenExpired(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return true, nil
	}
	_, err := s.users.GetUserByResetToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return true, nil
		}
		return false, ErrInternal
	}
	return false, nil
}

func newResetToken() (string, error) {
	b := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func SanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return u
}
