package employee

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// NotificationSettings are the per-employee mail preferences.
type NotificationSettings struct {
	LeaveRequests            bool `json:"leaveRequests"`
	AttendanceUpdates        bool `json:"attendanceUpdates"`
	CompanyAnnouncements     bool `json:"companyAnnouncements"`
	PerformanceNotifications bool `json:"performanceNotifications"`
	EmailDelivery            bool `json:"emailDelivery"`
	PushDelivery             bool `json:"pushDelivery"`
}

func DefaultNotificationSettings() *NotificationSettings {
	return &NotificationSettings{
		LeaveRequests:            true,
		AttendanceUpdates:        true,
		CompanyAnnouncements:     true,
		PerformanceNotifications: true,
		EmailDelivery:            true,
		PushDelivery:             false,
	}
}

type Employee struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Email                string                `json:"email"`
	PasswordHash         string                `json:"passwordHash"`
	Role                 user.Role             `json:"role"`
	Designation          string                `json:"designation"`
	Department           string                `json:"department"`
	Status               Status                `json:"status"`
	JoinedDate           string                `json:"joinedDate"` // YYYY-MM-DD
	LeaveBalance         int                   `json:"leaveBalance"`
	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// WantsMail reports whether e accepts email for a category gated by pref.
// Employees without stored settings receive no mail.
func (e Employee) WantsMail(pref func(NotificationSettings) bool) bool {
	if e.NotificationSettings == nil {
		return false
	}
	s := *e.NotificationSettings
	return s.EmailDelivery && pref(s)
}

func WantsLeaveMail(s NotificationSettings) bool      { return s.LeaveRequests }
func WantsAttendanceMail(s NotificationSettings) bool { return s.AttendanceUpdates }
func AnyMail(NotificationSettings) bool               { return true }

// Matches is a case-insensitive search over name, id and department.
func (e Employee) Matches(search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.ID), q) ||
		strings.Contains(strings.ToLower(e.Department), q)
}

// NextID returns the next free EMPnnn id after the highest numeric suffix in use.
func NextID(employees []Employee) string {
	highest := 0
	for _, e := range employees {
		n, err := strconv.Atoi(strings.TrimPrefix(e.ID, "EMP"))
		if err != nil || !strings.HasPrefix(e.ID, "EMP") {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("EMP%03d", highest+1)
}
