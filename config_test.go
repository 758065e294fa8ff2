package enquiry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/enquiry"
	"github.com/dmitrymomot/enquiry/pkg/mailer/smtp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("EMAIL_USER", "owner@gmail.com")
	t.Setenv("EMAIL_PASS", "app-password")

	cfg, err := enquiry.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, ":5001", cfg.Addr())
	assert.Equal(t, enquiry.ProviderSMTP, cfg.MailProvider)
	assert.Equal(t, "email_errors.log", cfg.DispatchLogFile)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.EqualValues(t, 64<<10, cfg.BodyLimit)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "owner@gmail.com", cfg.SMTP.Username)
	assert.Equal(t, []string{"owner@gmail.com"}, cfg.Recipients())
	assert.Empty(t, cfg.CORSOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"ENQUIRY_TEST_UNUSED=1\nRESEND_FROM_NAME=Studio Desk\nEMAIL_TO=a@example.com, b@example.com\n",
	), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ENQUIRY_TEST_UNUSED")
		os.Unsetenv("RESEND_FROM_NAME")
		os.Unsetenv("EMAIL_TO")
	})
	t.Setenv("MAIL_PROVIDER", " Resend ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://studio.dev,https://www.studio.dev")

	cfg, err := enquiry.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, enquiry.ProviderResend, cfg.MailProvider)
	assert.Equal(t, "Studio Desk", cfg.Resend.SenderName)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients())
	assert.Equal(t, []string{"https://studio.dev", "https://www.studio.dev"}, cfg.CORSOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "pigeon")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_TO", "")

	_, err := enquiry.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, enquiry.ErrInvalidConfig)
	assert.ErrorIs(t, err, enquiry.ErrUnknownProvider)
	assert.ErrorIs(t, err, enquiry.ErrNoRecipient)
}

func TestConfig_Recipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  enquiry.Config
		want []string
	}{
		{"explicit", enquiry.Config{EmailTo: []string{"ops@example.com"}, SMTP: smtp.Config{Username: "me@gmail.com"}}, []string{"ops@example.com"}},
		{"falls back to smtp user", enquiry.Config{SMTP: smtp.Config{Username: "me@gmail.com"}}, []string{"me@gmail.com"}},
		{"blank entries dropped", enquiry.Config{EmailTo: []string{" ", ""}, SMTP: smtp.Config{Username: "me@gmail.com"}}, []string{"me@gmail.com"}},
		{"none", enquiry.Config{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Recipients())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := enquiry.Config{
		Port:            5001,
		MailProvider:    enquiry.ProviderSMTP,
		EmailTo:         []string{"ops@example.com"},
		DispatchLogFile: "email_errors.log",
	}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Port = 0
	assert.ErrorIs(t, bad.Validate(), enquiry.ErrInvalidConfig)

	bad = cfg
	bad.MailProvider = "fax"
	err := bad.Validate()
	assert.True(t, errors.Is(err, enquiry.ErrUnknownProvider))
}
