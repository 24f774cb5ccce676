package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

const maxRetries = 3

type smtpRelay struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPRelay returns nil when no SMTP host is configured.
func NewSMTPRelay(cfg config.SMTPConfig) Relay {
	if cfg.Host == "" {
		slog.Warn("SMTP not configured, mail is only kept in the in-memory log")
		return nil
	}
	return &smtpRelay{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpRelay) Deliver(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.dialer.DialAndSend(m)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			select {
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
