package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound        = errors.New("attendance record not found")
	ErrPunchInProgress       = errors.New("a punch is already being processed for this employee")
	ErrOpenRecordExists      = errors.New("employee already has an open record on this day")
	ErrCheckOutBeforeCheckIn = errors.New("check_out must not be before check_in")
	ErrInvalidMonth          = errors.New("month must be in YYYY-MM format")
	ErrConfirmationRequired  = errors.New("deleting an attendance record requires confirmation")
	ErrEmployeeNotFound      = errors.New("employee not found")
)
