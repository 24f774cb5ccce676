package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	store    state.Store
	notifier notification.Notifier
	jwt      jwt.Service
}

func NewNotificationService(store state.Store, notifier notification.Notifier, jwtService jwt.Service) *NotificationServiceImpl {
	return &NotificationServiceImpl{store: store, notifier: notifier, jwt: jwtService}
}

// ListMails implements notification.NotificationService.
func (s *NotificationServiceImpl) ListMails(ctx context.Context) (notification.MailListResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return notification.MailListResponse{}, auth.ErrUnauthenticated
	}

	history := s.notifier.History()
	if user.HasPermission(claims.Role, user.PermissionMailViewAll) {
		return notification.MailListResponse{Mails: history, Total: len(history)}, nil
	}

	own := []notification.Mail{}
	for _, m := range history {
		if strings.EqualFold(m.To, claims.Email) {
			own = append(own, m)
		}
	}
	return notification.MailListResponse{Mails: own, Total: len(own)}, nil
}

// GenerateSSEToken implements notification.NotificationService.
func (s *NotificationServiceImpl) GenerateSSEToken(ctx context.Context) (notification.SSETokenResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return notification.SSETokenResponse{}, auth.ErrUnauthenticated
	}

	token, expiresIn, err := s.jwt.GenerateSSEToken(claims.EmployeeID)
	if err != nil {
		return notification.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return notification.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// StreamKeys implements notification.NotificationService. Employees hear
// their own mail; admins also hear the broadcast key.
func (s *NotificationServiceImpl) StreamKeys(ctx context.Context, token string) ([]string, error) {
	employeeID, err := s.jwt.ValidateSSEToken(token)
	if err != nil {
		return nil, notification.ErrInvalidSSEToken
	}

	snap := s.store.Snapshot()
	emp, ok := snap.FindEmployee(employeeID)
	if !ok || !emp.IsActive() {
		return nil, notification.ErrInvalidSSEToken
	}

	keys := []string{emp.Email}
	if emp.Role.IsAdmin() {
		keys = append(keys, sse.BroadcastKey)
	}
	return keys, nil
}
