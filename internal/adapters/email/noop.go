package email

import (
	"context"
	"log/slog"
)

// NoopSender logs instead of sending. Used in development and whenever
// no API key is configured.
type NoopSender struct{}

// Compile-time check that NoopSender satisfies Sender.
var _ Sender = NoopSender{}

// Send logs the email and drops it.
func (NoopSender) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("email_noop", "to", to, "subject", subject)
	return nil
}
