package geofence

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutsideGeofence     = errors.New("you are outside the allowed radius")
	ErrLocationUnavailable = errors.New("location is unavailable")
)

// BreachError is returned when a reading lies beyond the configured radius.
type BreachError struct {
	Distance float64
	Radius   float64
}

func (e *BreachError) Error() string {
	return fmt.Sprintf("Out of bounds (%dm).", e.RoundedDistance())
}

func (e *BreachError) Is(target error) bool {
	return target == ErrOutsideGeofence
}

// RoundedDistance is the distance in whole meters, as shown to users.
func (e *BreachError) RoundedDistance() int {
	return int(math.Round(e.Distance))
}

// LocationError wraps the reason a position could not be obtained
// (permission denied, timeout, missing coordinates).
type LocationError struct {
	Reason string
}

func (e *LocationError) Error() string {
	if e.Reason == "" {
		return "Geo access denied"
	}
	return e.Reason
}

func (e *LocationError) Is(target error) bool {
	return target == ErrLocationUnavailable
}
