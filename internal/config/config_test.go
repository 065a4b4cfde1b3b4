package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Defaults(t *testing.T) {
	for _, key := range []string{"TIMEZONE", "CALENDAR_ID", "MAIL_TRANSPORT", "SMTP_HOST", "SMTP_PORT", "HTTP_ADDR", "MAIL_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := DefaultConfig()

	assert.Equal(t, DefaultTimeZone, cfg.TimeZone)
	assert.Equal(t, DefaultCalendarID, cfg.CalendarID)
	assert.Equal(t, TransportSMTP, cfg.MailTransport)
	assert.Equal(t, DefaultSMTPHost, cfg.SMTPHost)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTPPort)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Zero(t, cfg.MailConcurrency)
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("CLIENT_ID", "client")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("REDIRECT_URL", "http://localhost:4000/google/redirect")
	t.Setenv("API_KEY", "key")
	t.Setenv("EMAIL", "sender@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("MAIL_TRANSPORT", "GMAIL")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("MAIL_CONCURRENCY", "4")

	cfg := DefaultConfig()

	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:4000/google/redirect", cfg.RedirectURL)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "sender@example.com", cfg.Email)
	assert.Equal(t, "app-password", cfg.EmailPassword)
	assert.Equal(t, "Europe/Berlin", cfg.TimeZone)
	assert.Equal(t, TransportGmail, cfg.MailTransport)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 4, cfg.MailConcurrency)
}

func TestDefaultConfig_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	assert.Equal(t, DefaultSMTPPort, DefaultConfig().SMTPPort)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			TimeZone:      DefaultTimeZone,
			CalendarID:    DefaultCalendarID,
			MailTransport: TransportSMTP,
			SMTPPort:      DefaultSMTPPort,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "gmail transport", mutate: func(c *Config) { c.MailTransport = TransportGmail }},
		{name: "unknown transport", mutate: func(c *Config) { c.MailTransport = "pigeon" }, wantErr: "invalid mail transport"},
		{name: "bad zone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, wantErr: "invalid time zone"},
		{name: "bad port", mutate: func(c *Config) { c.SMTPPort = 70000 }, wantErr: "invalid SMTP port"},
		{name: "negative mail concurrency", mutate: func(c *Config) { c.MailConcurrency = -1 }, wantErr: "invalid mail concurrency"},
		{name: "empty calendar", mutate: func(c *Config) { c.CalendarID = "" }, wantErr: "calendar id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_IgnoresMissingCredentials(t *testing.T) {
	cfg := Config{TimeZone: "UTC", CalendarID: "primary", MailTransport: TransportSMTP, SMTPPort: 587}
	assert.NoError(t, cfg.Validate())
	assert.ElementsMatch(t, []string{"CLIENT_ID", "CLIENT_SECRET", "REDIRECT_URL", "EMAIL", "EMAIL_PASSWORD"}, cfg.Missing())
}

func TestConfig_Missing_GmailSkipsSMTPCredentials(t *testing.T) {
	cfg := Config{ClientID: "a", ClientSecret: "b", RedirectURL: "c", MailTransport: TransportGmail}
	assert.Empty(t, cfg.Missing())
}

func TestConfig_WarnMissing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := Config{MailTransport: TransportGmail}
	cfg.WarnMissing(logger)

	assert.Contains(t, buf.String(), "CLIENT_ID")
	assert.Contains(t, buf.String(), "level=WARN")
}
