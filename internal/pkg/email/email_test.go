package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPasswordReset_SkipsWithoutSMTP(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	called := false
	impl.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	require.NoError(t, svc.SendPasswordReset("jane@example.com", "http://app/reset?token=abc", "2026-10-16 10:00"))
	assert.False(t, called)
}

func TestSendPasswordReset_RendersTemplate(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Host: "smtp.test", Port: 25, From: "hr@example.com", FromName: "HR"})
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	var sent []byte
	var rcpt []string
	impl.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.test:25", addr)
		assert.Equal(t, "hr@example.com", from)
		rcpt = to
		sent = msg
		return nil
	}

	require.NoError(t, svc.SendPasswordReset("jane@example.com", "http://app/reset?token=abc", "2026-10-16 10:00"))
	assert.Equal(t, []string{"jane@example.com"}, rcpt)
	assert.Contains(t, string(sent), "Subject: Reset your password")
	assert.Contains(t, string(sent), "http://app/reset?token=abc")
	assert.Contains(t, string(sent), "2026-10-16 10:00")
}

func TestSendPasswordReset_FirstAttemptFailsThenSucceeds(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{Host: "smtp.test", Port: 25})
	require.NoError(t, err)

	impl := svc.(*emailServiceImpl)
	attempts := 0
	impl.send = func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		if attempts == 1 {
			return errors.New("connection refused")
		}
		return nil
	}

	require.NoError(t, svc.SendPasswordReset("jane@example.com", "link", "soon"))
	assert.Equal(t, 2, attempts)
}
