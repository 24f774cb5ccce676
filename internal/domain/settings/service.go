package settings

import "context"

type SettingsService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	UpdateGeofence(ctx context.Context, req UpdateGeofenceRequest) (SettingsResponse, error)
	UpdateTheme(ctx context.Context, req UpdateThemeRequest) (SettingsResponse, error)
}
