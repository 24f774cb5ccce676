package state

import (
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/domain/leave"
	"github.com/geoattend/geoattend-backend-go/internal/domain/settings"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
)

// Document keys in durable storage.
const (
	StateKey   = "geoattend_state"
	SessionKey = "geoattend_current_user"
)

// AppState is the whole persisted application document. Attendance is
// partitioned by MM_YYYY month key.
type AppState struct {
	Employees  []employee.Employee            `json:"employees"`
	Attendance map[string][]attendance.Record `json:"attendance"`
	Leaves     []leave.Request                `json:"leaves"`
	Config     geofence.Config                `json:"config"`
	Theme      settings.Theme                 `json:"theme"`
}

// Session identifies the most recently logged-in employee.
type Session struct {
	EmployeeID string    `json:"employeeId"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Clone returns a deep copy so a failed update never leaks into the live state.
func (s AppState) Clone() AppState {
	out := AppState{
		Config: s.Config,
		Theme:  s.Theme,
	}

	out.Employees = make([]employee.Employee, len(s.Employees))
	for i, e := range s.Employees {
		if e.NotificationSettings != nil {
			ns := *e.NotificationSettings
			e.NotificationSettings = &ns
		}
		out.Employees[i] = e
	}

	out.Attendance = make(map[string][]attendance.Record, len(s.Attendance))
	for key, records := range s.Attendance {
		copied := make([]attendance.Record, len(records))
		for i, r := range records {
			copied[i] = cloneRecord(r)
		}
		out.Attendance[key] = copied
	}

	out.Leaves = make([]leave.Request, len(s.Leaves))
	copy(out.Leaves, s.Leaves)

	return out
}

func cloneRecord(r attendance.Record) attendance.Record {
	if r.CheckIn != nil {
		t := *r.CheckIn
		r.CheckIn = &t
	}
	if r.CheckOut != nil {
		t := *r.CheckOut
		r.CheckOut = &t
	}
	if r.Location != nil {
		p := *r.Location
		r.Location = &p
	}
	return r
}

// Normalize fills nil collections after decoding a sparse document.
func (s *AppState) Normalize() {
	if s.Employees == nil {
		s.Employees = []employee.Employee{}
	}
	if s.Attendance == nil {
		s.Attendance = map[string][]attendance.Record{}
	}
	if s.Leaves == nil {
		s.Leaves = []leave.Request{}
	}
	if !s.Theme.IsValid() {
		s.Theme = settings.ThemeLight
	}
}

// ========================================
// LOOKUPS
// ========================================

// FindEmployee returns a pointer into the slice so callers can mutate in place.
func (s *AppState) FindEmployee(id string) (*employee.Employee, bool) {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i], true
		}
	}
	return nil, false
}

func (s *AppState) EmployeeByEmail(email string) (*employee.Employee, bool) {
	for i := range s.Employees {
		if s.Employees[i].Email == email {
			return &s.Employees[i], true
		}
	}
	return nil, false
}

func (s *AppState) FindLeave(id string) (*leave.Request, bool) {
	for i := range s.Leaves {
		if s.Leaves[i].ID == id {
			return &s.Leaves[i], true
		}
	}
	return nil, false
}

// FindRecord searches every month bucket for id.
func (s *AppState) FindRecord(id string) (monthKey string, index int, ok bool) {
	for key, records := range s.Attendance {
		for i, r := range records {
			if r.ID == id {
				return key, i, true
			}
		}
	}
	return "", -1, false
}

// RemoveRecord drops the record at index from a month bucket.
func (s *AppState) RemoveRecord(monthKey string, index int) attendance.Record {
	records := s.Attendance[monthKey]
	removed := records[index]
	records = append(records[:index:index], records[index+1:]...)
	if len(records) == 0 {
		delete(s.Attendance, monthKey)
	} else {
		s.Attendance[monthKey] = records
	}
	return removed
}

func (s *AppState) Admins() []employee.Employee {
	var admins []employee.Employee
	for _, e := range s.Employees {
		if e.Role == user.RoleAdmin {
			admins = append(admins, e)
		}
	}
	return admins
}
