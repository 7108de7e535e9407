package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobboard/internal/infrastructure/mail"
	"jobboard/internal/pkg/jwt"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(users *fakeUsers, mailer mail.Sender) (*Auth, jwt.Service) {
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour, "jobboard-test")
	return NewAuthUsecase(AuthDeps{
		Users:              users,
		JWT:                jwtSvc,
		Mailer:             mailer,
		FrontEndURL:        "https://jobs.example.com",
		EmployerAccessCode: "hire-me",
	}), jwtSvc
}

func signupInput(email string) ucauth.RegisterInput {
	return ucauth.RegisterInput{Email: email, Password: "password123", Name: "Test", Phone: "555-0101"}
}

func TestAuth_SignupIssuesRoleScopedTokens(t *testing.T) {
	auth, jwtSvc := newTestAuth(newFakeUsers(), &fakeMailer{})

	s, err := auth.Signup(context.Background(), signupInput("seeker@example.com"))
	require.NoError(t, err)
	assert.Empty(t, s.User.PasswordHash)

	claims, err := jwtSvc.ParseAccessToken(s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, claims.UserID)
	assert.Equal(t, jwt.RoleSeeker, claims.Role)

	in := signupInput("boss@example.com")
	in.IsEmployer = true
	in.AccessCode = "hire-me"
	s, err = auth.Signup(context.Background(), in)
	require.NoError(t, err)
	claims, err = jwtSvc.ParseAccessToken(s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleEmployer, claims.Role)
}

func TestAuth_Refresh(t *testing.T) {
	users := newFakeUsers()
	auth, _ := newTestAuth(users, &fakeMailer{})

	s, err := auth.Signup(context.Background(), signupInput("a@example.com"))
	require.NoError(t, err)

	refreshed, err := auth.Refresh(context.Background(), s.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = auth.Refresh(context.Background(), s.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = auth.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	delete(users.byID, s.User.ID)
	_, err = auth.Refresh(context.Background(), s.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ForgotPasswordMailsResetLink(t *testing.T) {
	users := newFakeUsers()
	mailer := &fakeMailer{}
	auth, _ := newTestAuth(users, mailer)

	s, err := auth.Signup(context.Background(), signupInput("a@example.com"))
	require.NoError(t, err)

	require.NoError(t, auth.ForgotPassword(context.Background(), "A@example.com"))
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "a@example.com", msg.To)
	assert.Equal(t, mail.SubjectResetPassword, msg.Subject)

	token := *users.byID[s.User.ID].ResetToken
	assert.True(t, strings.Contains(msg.HTML, "https://jobs.example.com/reset-password/"+token))

	expired, err := auth.ResetTokenExpired(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, expired)

	require.NoError(t, auth.ResetPassword(context.Background(), token, "a-new-password"))
	_, err = auth.Login(context.Background(), ucauth.LoginInput{Email: "a@example.com", Password: "a-new-password"})
	assert.NoError(t, err)
}

func TestAuth_ForgotPasswordErrors(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	auth, _ := newTestAuth(newFakeUsers(), mailer)

	err := auth.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ucauth.ErrUserNotFound)

	_, err = auth.Signup(context.Background(), signupInput("a@example.com"))
	require.NoError(t, err)
	assert.ErrorIs(t, auth.ForgotPassword(context.Background(), "a@example.com"), ErrInternal)
}
