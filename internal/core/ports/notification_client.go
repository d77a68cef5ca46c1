package ports

import "context"

// NotificationClient sends a rendered notification to a set of recipients.
// Implementations deliver over a concrete channel (the HTTP mail relay in
// production); failures affect only the audience being sent to.
type NotificationClient interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}
