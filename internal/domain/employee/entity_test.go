package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	assert.Equal(t, "EMP001", NextID(nil))
	assert.Equal(t, "EMP003", NextID([]Employee{{ID: "EMP001"}, {ID: "EMP002"}}))
	assert.Equal(t, "EMP011", NextID([]Employee{{ID: "EMP010"}, {ID: "EMP002"}, {ID: "legacy"}}))
	assert.Equal(t, "EMP1000", NextID([]Employee{{ID: "EMP999"}}))
}

func TestMatches(t *testing.T) {
	e := Employee{ID: "EMP002", Name: "Sarah Connor", Department: "Engineering"}
	assert.True(t, e.Matches(""))
	assert.True(t, e.Matches("sarah"))
	assert.True(t, e.Matches("emp002"))
	assert.True(t, e.Matches("ENGINEER"))
	assert.False(t, e.Matches("finance"))
}

func TestWantsMail(t *testing.T) {
	e := Employee{}
	assert.False(t, e.WantsMail(AnyMail), "no settings means no mail")

	e.NotificationSettings = DefaultNotificationSettings()
	assert.True(t, e.WantsMail(WantsLeaveMail))
	assert.True(t, e.WantsMail(WantsAttendanceMail))

	e.NotificationSettings.AttendanceUpdates = false
	assert.False(t, e.WantsMail(WantsAttendanceMail))
	assert.True(t, e.WantsMail(WantsLeaveMail))

	e.NotificationSettings.EmailDelivery = false
	assert.False(t, e.WantsMail(WantsLeaveMail))
	assert.False(t, e.WantsMail(AnyMail))
}

func TestDefaultNotificationSettings(t *testing.T) {
	s := DefaultNotificationSettings()
	assert.True(t, s.LeaveRequests)
	assert.True(t, s.AttendanceUpdates)
	assert.True(t, s.CompanyAnnouncements)
	assert.True(t, s.PerformanceNotifications)
	assert.True(t, s.EmailDelivery)
	assert.False(t, s.PushDelivery)
}

func TestNewEmployeeResponse_CopiesSettings(t *testing.T) {
	e := Employee{ID: "EMP001", PasswordHash: "secret", NotificationSettings: DefaultNotificationSettings()}
	resp := NewEmployeeResponse(e)
	resp.NotificationSettings.EmailDelivery = false
	assert.True(t, e.NotificationSettings.EmailDelivery)
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{Name: "John", Email: " John@Example.com ", Password: "pw"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "john@example.com", req.Email)
	assert.Equal(t, "EMPLOYEE", req.Role)
	assert.Equal(t, "Active", req.Status)

	bad := CreateEmployeeRequest{Name: "", Email: "nope", Password: "", Role: "BOSS"}
	assert.Error(t, bad.Validate())

	negative := -1
	neg := CreateEmployeeRequest{Name: "x", Email: "x@example.com", Password: "p", LeaveBalance: &negative}
	assert.Error(t, neg.Validate())
}
