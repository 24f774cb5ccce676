package notification

import "context"

// NotificationService exposes the mail log to API callers.
type NotificationService interface {
	// ListMails returns the whole log for admins, the caller's own mail otherwise
	ListMails(ctx context.Context) (MailListResponse, error)

	// GenerateSSEToken issues a short-lived token for EventSource clients
	GenerateSSEToken(ctx context.Context) (SSETokenResponse, error)

	// StreamKeys validates a stream token and returns the hub keys its owner
	// listens on
	StreamKeys(ctx context.Context, token string) ([]string, error)
}
