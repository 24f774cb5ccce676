package settings

import (
	"context"
	"log/slog"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
)

type SettingsServiceImpl struct {
	store state.Store
}

func NewSettingsService(store state.Store) *SettingsServiceImpl {
	return &SettingsServiceImpl{store: store}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	snap := s.store.Snapshot()
	return settings.SettingsResponse{Geofence: snap.Config, Theme: snap.Theme}, nil
}

// UpdateGeofence implements settings.SettingsService. The new zone applies
// to the next punch.
func (s *SettingsServiceImpl) UpdateGeofence(ctx context.Context, req settings.UpdateGeofenceRequest) (settings.SettingsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionSettingsManage) {
		return settings.SettingsResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	st, err := s.store.Update(ctx, func(st *state.AppState) error {
		st.Config = req.Config
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	slog.Info("Geofence updated", "latitude", st.Config.Latitude, "longitude", st.Config.Longitude, "radius_m", st.Config.Radius, "updated_by", claims.EmployeeID)
	return settings.SettingsResponse{Geofence: st.Config, Theme: st.Theme}, nil
}

// UpdateTheme implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateTheme(ctx context.Context, req settings.UpdateThemeRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	st, err := s.store.Update(ctx, func(st *state.AppState) error {
		st.Theme = req.Theme
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return settings.SettingsResponse{Geofence: st.Config, Theme: st.Theme}, nil
}
