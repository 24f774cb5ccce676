package settings

import (
	"context"
	"testing"

	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	statesvc "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *SettingsServiceImpl {
	t.Helper()
	store, err := statesvc.Open(context.Background(), memory.NewDocumentRepository(), func() (state.AppState, error) {
		return state.AppState{Config: geofence.Config{Latitude: 40.7128, Longitude: -74.0060, Radius: 200}}, nil
	})
	require.NoError(t, err)
	return NewSettingsService(store)
}

func TestGet(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Geofence.Radius)
	assert.Equal(t, settings.ThemeLight, resp.Theme)
}

func TestUpdateGeofence(t *testing.T) {
	svc := newTestService(t)
	admin := jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP001", Role: user.RoleAdmin})
	employee := jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP002", Role: user.RoleEmployee})

	zone := settings.UpdateGeofenceRequest{Config: geofence.Config{Latitude: 51.5074, Longitude: -0.1278, Radius: 150}}

	_, err := svc.UpdateGeofence(employee, zone)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	resp, err := svc.UpdateGeofence(admin, zone)
	require.NoError(t, err)
	assert.Equal(t, zone.Config, resp.Geofence)

	_, err = svc.UpdateGeofence(admin, settings.UpdateGeofenceRequest{Config: geofence.Config{Latitude: 95, Radius: 10}})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateTheme(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.UpdateTheme(context.Background(), settings.UpdateThemeRequest{Theme: settings.ThemeDark})
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, resp.Theme)

	_, err = svc.UpdateTheme(context.Background(), settings.UpdateThemeRequest{Theme: "neon"})
	assert.Error(t, err)
}
