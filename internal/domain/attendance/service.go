package attendance

import (
	"context"
	"io"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Punch checks the reading against the geofence and toggles the caller's attendance
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// Today reports the caller's latest record today and the next punch action
	Today(ctx context.Context) (TodayResponse, error)

	// List returns a month of records; employees only see their own
	List(ctx context.Context, filter ListFilter) (ListRecordResponse, error)

	// ExportCSV writes the filtered records as CSV
	ExportCSV(ctx context.Context, filter ListFilter, w io.Writer) error

	// Update corrects a record's times (admin)
	Update(ctx context.Context, req UpdateRecordRequest) (Record, error)

	// Delete removes a record (admin, confirmation required)
	Delete(ctx context.Context, id string, confirmed bool) error
}
