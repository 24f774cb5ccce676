package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/domain/leave"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence gate
	var breach *geofence.BreachError
	if errors.As(err, &breach) {
		ForbiddenWithDetails(w, CodeOutsideGeofence, breach.Error(), map[string]string{
			"distance": strconv.Itoa(breach.RoundedDistance()),
			"radius":   strconv.FormatFloat(breach.Radius, 'f', -1, 64),
		})
		return
	}
	var locErr *geofence.LocationError
	if errors.As(err, &locErr) {
		BadRequest(w, locErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		ForbiddenWithDetails(w, CodeAccountInactive, err.Error(), nil)
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		ForbiddenWithDetails(w, CodeAccountInactive, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrPunchInProgress),
		errors.Is(err, attendance.ErrOpenRecordExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Destructive operations
	case errors.Is(err, employee.ErrConfirmationRequired),
		errors.Is(err, attendance.ErrConfirmationRequired):
		PreconditionRequired(w, err.Error())

	// Notifications
	case errors.Is(err, notification.ErrInvalidSSEToken):
		Unauthorized(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
