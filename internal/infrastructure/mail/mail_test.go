package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewJobPost_EscapesFields(t *testing.T) {
	msg, err := NewJobPost("seeker@example.com", NewJobData{
		Title:    "Go <Engineer>",
		Company:  "Acme",
		Location: "Remote",
		URL:      "https://jobs.example.com/jobs/42",
	})
	require.NoError(t, err)

	assert.Equal(t, SubjectNewJobPost, msg.Subject)
	assert.Contains(t, msg.HTML, "Go &lt;Engineer&gt;")
	assert.Contains(t, msg.HTML, `href="https://jobs.example.com/jobs/42"`)
}

func TestResetPassword(t *testing.T) {
	msg, err := ResetPassword("a@b.co", ResetPasswordData{URL: "https://x/reset-password/abc", ExpiresInMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, SubjectResetPassword, msg.Subject)
	assert.Contains(t, msg.HTML, "30 minutes")
}

func TestSMTPSender_Send(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotBody string
	)
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 2525, From: "noreply@example.com"})
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotBody = string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{To: "u@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"u@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Subject: Hi\r\n")
	assert.Contains(t, gotBody, "Content-Type: text/html")
	assert.Contains(t, gotBody, "\r\n\r\n<p>x</p>")
}

func TestSMTPSender_WrapsError(t *testing.T) {
	boom := errors.New("relay down")
	s := NewSMTPSender(SMTPConfig{Host: "h", Port: 25, From: "f@h"})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := s.Send(context.Background(), Message{To: "u@h", Subject: "s"})
	assert.ErrorIs(t, err, boom)
}

func TestSend_RejectsHeaderInjection(t *testing.T) {
	s := NewLogSender(zap.NewNop())
	err := s.Send(context.Background(), Message{To: "u@h\r\nBcc: x@y", Subject: "s"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	assert.NoError(t, s.Send(context.Background(), Message{To: "u@h", Subject: "s"}))
}
