// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mail transports.
const (
	TransportSMTP  = "smtp"
	TransportGmail = "gmail"
)

// Defaults.
const (
	DefaultTimeZone   = "Asia/Kolkata"
	DefaultCalendarID = "primary"
	DefaultSMTPHost   = "smtp.gmail.com"
	DefaultSMTPPort   = 587
	DefaultHTTPAddr   = ":4000"
)

// Config holds the settings read from the environment.
type Config struct {
	// Google OAuth client
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// APIKey is attached to Calendar API calls when set.
	APIKey string

	// Sender mailbox credentials for the SMTP transport.
	Email         string
	EmailPassword string

	TimeZone      string
	CalendarID    string
	MailTransport string
	SMTPHost      string
	SMTPPort      int
	HTTPAddr      string

	// MailConcurrency caps the invitations sent at once per event. Zero means no cap.
	MailConcurrency int
}

// DefaultConfig reads the configuration from environment variables.
// Missing credentials are not an error here; they surface when the
// provider rejects a request.
func DefaultConfig() Config {
	return Config{
		ClientID:      os.Getenv("CLIENT_ID"),
		ClientSecret:  os.Getenv("CLIENT_SECRET"),
		RedirectURL:   os.Getenv("REDIRECT_URL"),
		APIKey:        os.Getenv("API_KEY"),
		Email:         os.Getenv("EMAIL"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		TimeZone:      getEnvOrDefault("TIMEZONE", DefaultTimeZone),
		CalendarID:    getEnvOrDefault("CALENDAR_ID", DefaultCalendarID),
		MailTransport: strings.ToLower(getEnvOrDefault("MAIL_TRANSPORT", TransportSMTP)),
		SMTPHost:      getEnvOrDefault("SMTP_HOST", DefaultSMTPHost),
		SMTPPort:      getEnvIntOrDefault("SMTP_PORT", DefaultSMTPPort),
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", DefaultHTTPAddr),

		MailConcurrency: getEnvIntOrDefault("MAIL_CONCURRENCY", 0),
	}
}

// Validate checks the format of the configuration. Presence of credentials
// is not checked.
func (c *Config) Validate() error {
	switch c.MailTransport {
	case TransportSMTP, TransportGmail:
	default:
		return fmt.Errorf("invalid mail transport %q (must be %s or %s)", c.MailTransport, TransportSMTP, TransportGmail)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port %d", c.SMTPPort)
	}

	if c.MailConcurrency < 0 {
		return fmt.Errorf("invalid mail concurrency %d", c.MailConcurrency)
	}

	if c.CalendarID == "" {
		return fmt.Errorf("calendar id must not be empty")
	}

	return nil
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Missing returns the names of unset credential variables.
func (c *Config) Missing() []string {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	check("CLIENT_ID", c.ClientID)
	check("CLIENT_SECRET", c.ClientSecret)
	check("REDIRECT_URL", c.RedirectURL)
	if c.MailTransport == TransportSMTP {
		check("EMAIL", c.Email)
		check("EMAIL_PASSWORD", c.EmailPassword)
	}

	return missing
}

// WarnMissing logs one warning listing unset credential variables.
func (c *Config) WarnMissing(logger *slog.Logger) {
	if missing := c.Missing(); len(missing) > 0 {
		logger.Warn("configuration incomplete, affected requests will fail",
			"missing", strings.Join(missing, ","))
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
