package settings

import (
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

type SettingsResponse struct {
	Geofence geofence.Config `json:"geofence"`
	Theme    Theme           `json:"theme"`
}

type UpdateGeofenceRequest struct {
	geofence.Config
}

func (r *UpdateGeofenceRequest) Validate() error {
	return r.Config.Validate()
}

type UpdateThemeRequest struct {
	Theme Theme `json:"theme"`
}

func (r *UpdateThemeRequest) Validate() error {
	if !r.Theme.IsValid() {
		return validator.ValidationErrors{{
			Field:   "theme",
			Message: "theme must be light or dark",
		}}
	}
	return nil
}
