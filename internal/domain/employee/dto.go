package employee

import (
	"strings"

	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	Designation  string  `json:"designation"`
	Department   string  `json:"department"`
	Status       string  `json:"status"`
	LeaveBalance *int    `json:"leave_balance"`
	JoinedDate   *string `json:"joined_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if r.Status == "" {
		r.Status = string(StatusActive)
	}

	errs = append(errs, validateProfile(r.Name, r.Email, r.Role, r.Status, r.Designation, r.Department)...)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if r.LeaveBalance != nil && *r.LeaveBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_balance",
			Message: "leave_balance must not be negative",
		})
	}

	if r.JoinedDate != nil {
		if _, ok := validator.IsValidDate(*r.JoinedDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joined_date",
				Message: "joined_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest replaces the profile. Password changes only when set;
// leave balance and joined date are never touched here.
type UpdateEmployeeRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    *string `json:"password"`
	Role        string  `json:"role"`
	Designation string  `json:"designation"`
	Department  string  `json:"department"`
	Status      string  `json:"status"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateProfile(r.Name, r.Email, r.Role, r.Status, r.Designation, r.Department)...)

	if r.Password != nil && len(*r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateProfile(name, email, role, status, designation, department string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if !user.Role(role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be ADMIN or EMPLOYEE",
		})
	}

	if !Status(status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Active or Inactive",
		})
	}

	if len(designation) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation must not exceed 255 characters",
		})
	}

	if len(department) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 255 characters",
		})
	}

	return errs
}

type UpdateNotificationSettingsRequest struct {
	NotificationSettings
}

type EmployeeResponse struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Email                string                `json:"email"`
	Role                 user.Role             `json:"role"`
	Designation          string                `json:"designation"`
	Department           string                `json:"department"`
	Status               Status                `json:"status"`
	JoinedDate           string                `json:"joined_date"`
	LeaveBalance         int                   `json:"leave_balance"`
	NotificationSettings *NotificationSettings `json:"notification_settings,omitempty"`
}

type ListEmployeeResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

// NewEmployeeResponse strips the credential.
func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Role:         e.Role,
		Designation:  e.Designation,
		Department:   e.Department,
		Status:       e.Status,
		JoinedDate:   e.JoinedDate,
		LeaveBalance: e.LeaveBalance,
	}
	if e.NotificationSettings != nil {
		s := *e.NotificationSettings
		resp.NotificationSettings = &s
	}
	return resp
}
