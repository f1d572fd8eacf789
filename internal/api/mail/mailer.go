// Package mail is the outbound boundary for passwordless login codes. Real
// delivery transport is an external concern; the service only sees the
// Mailer interface.
package mail

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

type Mailer interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

// LogMailer writes codes to the log instead of sending mail. Delivery is
// throttled so a burst of login requests cannot flood the transport.
type LogMailer struct {
	logger  *slog.Logger
	limiter *rate.Limiter
}

func NewLogMailer(logger *slog.Logger, perMinute int) *LogMailer {
	return &LogMailer{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
	}
}

func (m *LogMailer) SendLoginCode(ctx context.Context, email, code string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}
	m.logger.Info("login code issued", "email", email, "code", code)
	return nil
}
