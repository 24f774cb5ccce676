package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// EventMail is the SSE event name carrying a notification.Mail.
const EventMail = "mail"

// Relay hands a message to a real mail transport.
type Relay interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

// Publisher fans a mail out to live streams.
type Publisher interface {
	Publish(event sse.Event, keys ...string)
}

// Notifier keeps a rolling, newest-first history of outbound mail, streams
// each mail to subscribers and optionally relays it over SMTP.
type Notifier struct {
	mu      sync.Mutex
	history []notification.Mail
	limit   int

	relay     Relay
	publisher Publisher
	relays    sync.WaitGroup

	now   func() time.Time
	newID func() string
}

type Option func(*Notifier)

func WithRelay(r Relay) Option {
	return func(n *Notifier) { n.relay = r }
}

func WithPublisher(p Publisher) Option {
	return func(n *Notifier) { n.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func NewNotifier(limit int, opts ...Option) *Notifier {
	if limit <= 0 {
		limit = 50
	}
	n := &Notifier{
		limit: limit,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send implements notification.Notifier. Relay failures are logged, never
// returned: the mail is already in the history.
func (n *Notifier) Send(ctx context.Context, to, subject, body string, category notification.Category) notification.Mail {
	mail := notification.Mail{
		ID:        n.newID(),
		To:        to,
		Subject:   subject,
		Body:      body,
		Category:  category,
		Timestamp: n.now(),
	}

	n.mu.Lock()
	n.history = append([]notification.Mail{mail}, n.history...)
	if len(n.history) > n.limit {
		n.history = n.history[:n.limit]
	}
	n.mu.Unlock()

	slog.Info("Mail dispatched", "to", to, "subject", subject, "category", category)

	if n.publisher != nil {
		n.publisher.Publish(sse.Event{Event: EventMail, Data: mail}, to, sse.BroadcastKey)
	}

	if n.relay != nil {
		n.relays.Add(1)
		go func() {
			defer n.relays.Done()
			if err := n.relay.Deliver(context.WithoutCancel(ctx), to, subject, body); err != nil {
				slog.Error("Mail relay failed", "to", to, "subject", subject, "error", err)
			}
		}()
	}

	return mail
}

// History implements notification.Notifier.
func (n *Notifier) History() []notification.Mail {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]notification.Mail, len(n.history))
	copy(out, n.history)
	return out
}

// Wait blocks until in-flight relays finish or ctx ends.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.relays.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for mail relays: %w", ctx.Err())
	}
}
