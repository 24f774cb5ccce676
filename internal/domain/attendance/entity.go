package attendance

import (
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
)

// Record is one check-in/check-out pair. CheckOut is nil while the record is open.
type Record struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employeeId"`
	EmployeeName string             `json:"employeeName"`
	Date         string             `json:"date"` // YYYY-MM-DD in the service time zone
	CheckIn      *time.Time         `json:"checkIn"`
	CheckOut     *time.Time         `json:"checkOut"`
	TotalHours   float64            `json:"totalHours"`
	Location     *geofence.Position `json:"location,omitempty"`
}

// IsOpen reports whether the record has a check-in but no check-out.
func (r Record) IsOpen() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// Action is the outcome of a punch.
type Action string

const (
	ActionPunchIn  Action = "PUNCH_IN"
	ActionPunchOut Action = "PUNCH_OUT"
)
