package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsUnprefixedMailVariables(t *testing.T) {
	t.Setenv("CLUB_JWT_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "smtp.club.test")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "hunter2")
	t.Setenv("SMTP_FROM", "club@club.test")
	t.Setenv("CONTACT_EMAIL", "hello@club.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "smtp.club.test", cfg.SMTPHost)
	require.Equal(t, 465, cfg.SMTPPort)
	require.True(t, cfg.SMTPSecure)
	require.Equal(t, "mailer", cfg.SMTPUsername)
	require.Equal(t, "hunter2", cfg.SMTPPassword)
	require.Equal(t, "club@club.test", cfg.SMTPFrom)
	require.Equal(t, "hello@club.test", cfg.ContactEmail)
}

func TestLoadPrefixedMailVariablesWin(t *testing.T) {
	t.Setenv("CLUB_JWT_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "smtp.unprefixed.test")
	t.Setenv("CLUB_SMTP_HOST", "smtp.prefixed.test")
	t.Setenv("SMTP_USER", "unprefixed")
	t.Setenv("CLUB_SMTP_USERNAME", "prefixed")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "smtp.prefixed.test", cfg.SMTPHost)
	require.Equal(t, "prefixed", cfg.SMTPUsername)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("CLUB_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFallsBackToUsernameAsFrom(t *testing.T) {
	t.Setenv("CLUB_JWT_SECRET", "test-secret")
	t.Setenv("SMTP_USER", "sender@club.test")
	t.Setenv("SMTP_FROM", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sender@club.test", cfg.SMTPFrom)
}
