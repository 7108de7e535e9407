package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/mail"
	"jobboard/internal/pkg/jwt"
	ucauth "jobboard/internal/usecase/auth"

	"go.uber.org/zap"
)

// Session is what a successful signup, login or refresh hands back.
type Session struct {
	User         user.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	ResetTokenExpired(ctx context.Context, token string) (bool, error)
}

type Auth struct {
	authSvc     *ucauth.Service
	users       user.Repository
	jwt         jwt.Service
	mailer      mail.Sender
	frontEndURL string
	logger      *zap.Logger
}

type AuthDeps struct {
	Users              user.Repository
	JWT                jwt.Service
	Mailer             mail.Sender
	FrontEndURL        string
	EmployerAccessCode string
	Logger             *zap.Logger
}

func NewAuthUsecase(d AuthDeps) *Auth {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authSvc:     ucauth.NewService(d.Users, d.EmployerAccessCode),
		users:       d.Users,
		jwt:         d.JWT,
		mailer:      d.Mailer,
		frontEndURL: d.FrontEndURL,
		logger:      logger,
	}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.session(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.session(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrUnauthorized
	}

	claims, err := u.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrRefreshTokenExpired
		}
		return Session{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, ErrInternal
	}
	return u.session(ucauth.SanitizeUser(usr))
}

// ForgotPassword mails a reset link; the link stays valid for ucauth.ResetTokenTTL.
func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	ticket, err := u.authSvc.IssueResetToken(ctx, email)
	if err != nil {
		return err
	}

	msg, err := mail.ResetPassword(ticket.User.Email, mail.ResetPasswordData{
		URL:              u.frontEndURL + "/reset-password/" + ticket.Token,
		ExpiresInMinutes: int(ucauth.ResetTokenTTL / time.Minute),
	})
	if err != nil {
		return ErrInternal
	}
	if u.mailer == nil {
		return ErrInternal
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.logger.Error("reset password mail failed", zap.String("user_id", ticket.User.ID.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *Auth) ResetPassword(ctx context.Context, token, password string) error {
	return u.authSvc.ResetPassword(ctx, token, password)
}

func (u *Auth) ResetTokenExpired(ctx context.Context, token string) (bool, error) {
	return u.authSvc.ResetTokenExpired(ctx, token)
}

func (u *Auth) session(usr user.User) (Session, error) {
	pair, err := u.jwt.IssuePair(jwt.Identity{UserID: usr.ID, Email: usr.Email, Role: RoleOf(usr)})
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{User: usr, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, ExpiresAt: pair.ExpiresAt}, nil
}

// RoleOf maps the account flags onto the token role claim.
func RoleOf(u user.User) string {
	switch {
	case u.IsAdmin:
		return jwt.RoleAdmin
	case u.IsEmployer:
		return jwt.RoleEmployer
	default:
		return jwt.RoleSeeker
	}
}
