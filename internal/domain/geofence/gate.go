package geofence

import (
	"github.com/geoattend/geoattend-backend-go/internal/pkg/utils"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// Check measures the distance from pos to the zone center and returns a
// *BreachError when it exceeds the radius. A reading exactly on the
// boundary is inside.
func Check(cfg Config, pos Position) (float64, error) {
	distance := utils.CalculateHaversineDistance(pos.Latitude, pos.Longitude, cfg.Latitude, cfg.Longitude)
	if distance > cfg.Radius {
		return distance, &BreachError{Distance: distance, Radius: cfg.Radius}
	}
	return distance, nil
}

// Validate checks the zone center and radius.
func (c Config) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(c.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(c.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if c.Radius <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius",
			Message: "radius must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
