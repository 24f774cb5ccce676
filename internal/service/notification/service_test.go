package notification

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/email"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/sse"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	statesvc "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, notifier *email.Notifier) (*NotificationServiceImpl, *jwt.JWTService) {
	t.Helper()
	store, err := statesvc.Open(context.Background(), memory.NewDocumentRepository(), func() (state.AppState, error) {
		return state.AppState{
			Employees: []employee.Employee{
				{ID: "EMP001", Email: "admin@geoattend.com", Role: user.RoleAdmin, Status: employee.StatusActive},
				{ID: "EMP002", Email: "sarah@example.com", Role: user.RoleEmployee, Status: employee.StatusActive},
				{ID: "EMP003", Email: "former@example.com", Role: user.RoleEmployee, Status: employee.StatusInactive},
			},
		}, nil
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService("secret", time.Hour)
	return NewNotificationService(store, notifier, jwtService), jwtService
}

func TestListMails_Scoping(t *testing.T) {
	notifier := email.NewNotifier(50)
	ctx := context.Background()
	notifier.Send(ctx, "sarah@example.com", "Attendance: Clocked In", "in", notification.CategoryAttendance)
	notifier.Send(ctx, "admin@geoattend.com", "Action Required: New Leave Request", "leave", notification.CategoryLeave)

	svc, _ := newTestService(t, notifier)

	admin := jwt.ContextWithClaims(ctx, jwt.Claims{EmployeeID: "EMP001", Email: "admin@geoattend.com", Role: user.RoleAdmin})
	all, err := svc.ListMails(admin)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	sarah := jwt.ContextWithClaims(ctx, jwt.Claims{EmployeeID: "EMP002", Email: "Sarah@Example.com", Role: user.RoleEmployee})
	own, err := svc.ListMails(sarah)
	require.NoError(t, err)
	require.Equal(t, 1, own.Total)
	assert.Equal(t, "Attendance: Clocked In", own.Mails[0].Subject)

	_, err = svc.ListMails(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestGenerateSSEToken(t *testing.T) {
	svc, jwtService := newTestService(t, email.NewNotifier(10))

	ctx := jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP002", Role: user.RoleEmployee})
	resp, err := svc.GenerateSSEToken(ctx)
	require.NoError(t, err)
	assert.Positive(t, resp.ExpiresIn)

	id, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "EMP002", id)
}

func TestStreamKeys(t *testing.T) {
	svc, jwtService := newTestService(t, email.NewNotifier(10))
	ctx := context.Background()

	token := func(id string) string {
		tok, _, err := jwtService.GenerateSSEToken(id)
		require.NoError(t, err)
		return tok
	}

	keys, err := svc.StreamKeys(ctx, token("EMP002"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sarah@example.com"}, keys)

	keys, err = svc.StreamKeys(ctx, token("EMP001"))
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@geoattend.com", sse.BroadcastKey}, keys)

	_, err = svc.StreamKeys(ctx, token("EMP003"))
	assert.ErrorIs(t, err, notification.ErrInvalidSSEToken)

	_, err = svc.StreamKeys(ctx, "garbage")
	assert.ErrorIs(t, err, notification.ErrInvalidSSEToken)

	access, _, err := jwtService.GenerateAccessToken("EMP002", "sarah@example.com", user.RoleEmployee)
	require.NoError(t, err)
	_, err = svc.StreamKeys(ctx, access)
	assert.ErrorIs(t, err, notification.ErrInvalidSSEToken)
}
