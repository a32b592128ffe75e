// Package email sends transactional notifications via an external
// provider. The only consumer today is the schedule-saved notification.
package email

import "context"

// Sender is the interface for sending a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
