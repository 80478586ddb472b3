package notifier

import (
	"context"
	"log/slog"

	"github.com/adk-labs/platform/internal/log"
)

// Mailer delivers credential lifecycle mail to end users. The raw reset
// token passes through here exactly once and must never be persisted.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}

// LogMailer is the default delivery backend for environments without an
// outbound mail relay. It records that a reset was requested without
// ever logging the token itself.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, _ string) error {
	log.Info(ctx, "Password reset requested", slog.String("email", email))

	return nil
}
