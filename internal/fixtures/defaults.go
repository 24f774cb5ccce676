package fixtures

import (
	"fmt"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/domain/leave"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
)

// ==========================================
// DEFAULT ACCOUNTS
// ==========================================

type seedAccount struct {
	employee employee.Employee
	password string
}

func defaultAccounts() []seedAccount {
	return []seedAccount{
		{
			employee: employee.Employee{
				ID:           "EMP001",
				Name:         "Admin User",
				Email:        "admin@geoattend.com",
				Role:         user.RoleAdmin,
				Designation:  "System Administrator",
				Department:   "IT",
				Status:       employee.StatusActive,
				JoinedDate:   "2023-01-01",
				LeaveBalance: 20,
			},
			password: "admin",
		},
		{
			employee: employee.Employee{
				ID:           "EMP002",
				Name:         "Sarah Connor",
				Email:        "sarah@example.com",
				Role:         user.RoleEmployee,
				Designation:  "Software Engineer",
				Department:   "Engineering",
				Status:       employee.StatusActive,
				JoinedDate:   "2023-05-20",
				LeaveBalance: 15,
			},
			password: "password123",
		},
	}
}

// DefaultState builds the document written on first start: two demo
// accounts, an empty attendance log and the configured geofence.
func DefaultState(hasher auth.CredentialHasher, zone geofence.Config) (state.AppState, error) {
	accounts := defaultAccounts()
	employees := make([]employee.Employee, 0, len(accounts))

	for _, acc := range accounts {
		hash, err := hasher.Hash(acc.password)
		if err != nil {
			return state.AppState{}, fmt.Errorf("seed %s: %w", acc.employee.ID, err)
		}
		emp := acc.employee
		emp.PasswordHash = hash
		emp.NotificationSettings = employee.DefaultNotificationSettings()
		employees = append(employees, emp)
	}

	return state.AppState{
		Employees:  employees,
		Attendance: map[string][]attendance.Record{},
		Leaves:     []leave.Request{},
		Config:     zone,
		Theme:      settings.ThemeLight,
	}, nil
}
