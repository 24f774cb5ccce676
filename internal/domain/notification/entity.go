package notification

import (
	"context"
	"time"
)

// Category classifies a mail for filtering on the client.
type Category string

const (
	CategoryLeave       Category = "leave"
	CategoryAttendance  Category = "attendance"
	CategorySystem      Category = "system"
	CategoryPerformance Category = "performance"
)

// Mail is one outbound message as kept in the rolling history.
type Mail struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Category  Category  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivers mail and remembers the most recent messages.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string, category Category) Mail

	// History returns a copy of the log, newest first
	History() []Mail
}
