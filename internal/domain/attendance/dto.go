package attendance

import (
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

// PunchRequest carries the live reading taken by the client. When the client
// could not obtain one it sends LocationError instead of coordinates.
type PunchRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	LocationError string   `json:"location_error,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Position returns the reading, or a *geofence.LocationError when the client
// reported a failure or left out a coordinate.
func (r *PunchRequest) Position() (geofence.Position, error) {
	if strings.TrimSpace(r.LocationError) != "" {
		return geofence.Position{}, &geofence.LocationError{Reason: strings.TrimSpace(r.LocationError)}
	}
	if r.Latitude == nil || r.Longitude == nil {
		return geofence.Position{}, &geofence.LocationError{}
	}
	return geofence.Position{Latitude: *r.Latitude, Longitude: *r.Longitude}, nil
}

type PunchResponse struct {
	Action   Action  `json:"action"`
	Record   Record  `json:"record"`
	Distance float64 `json:"distance"`
}

type TodayResponse struct {
	Date       string  `json:"date"`
	Record     *Record `json:"record"`
	NextAction Action  `json:"next_action"`
}

// ========================================
// RECORD DTOs
// ========================================

type ListFilter struct {
	Month  string `json:"month"` // YYYY-MM, defaults to the current month
	Search string `json:"search"`
	Date   string `json:"date"` // YYYY-MM-DD

	// Set by the service for non-admin callers.
	EmployeeID string `json:"-"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, err := time.Parse("2006-01", f.Month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordResponse struct {
	Month   string   `json:"month"`
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

type UpdateRecordRequest struct {
	ID       string  `json:"-"`
	CheckIn  string  `json:"check_in"`
	CheckOut *string `json:"check_out"`

	checkIn  time.Time
	checkOut *time.Time
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an ISO8601 timestamp",
		})
	} else {
		r.checkIn = t
	}

	r.checkOut = nil
	if r.CheckOut != nil && !validator.IsEmpty(*r.CheckOut) {
		if t, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		} else {
			r.checkOut = &t
		}
	}

	if len(errs) == 0 && r.checkOut != nil && r.checkOut.Before(r.checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must not be before check_in",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Times returns the parsed timestamps. Only meaningful after Validate succeeded.
func (r *UpdateRecordRequest) Times() (time.Time, *time.Time) {
	return r.checkIn, r.checkOut
}
