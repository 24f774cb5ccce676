package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

var sarah = Record{ID: "rec-1", EmployeeID: "EMP002", EmployeeName: "Sarah Connor"}

func TestPunch_InThenOut(t *testing.T) {
	in := at(t, "2024-03-04T09:00:00Z")
	out := at(t, "2024-03-04T17:30:00Z")

	records, rec, action := Punch(nil, sarah, in, time.UTC)
	require.Len(t, records, 1)
	assert.Equal(t, ActionPunchIn, action)
	assert.True(t, rec.IsOpen())
	assert.Equal(t, "2024-03-04", rec.Date)
	assert.Equal(t, 0.0, rec.TotalHours)

	records, rec, action = Punch(records, sarah, out, time.UTC)
	require.Len(t, records, 1)
	assert.Equal(t, ActionPunchOut, action)
	assert.False(t, rec.IsOpen())
	assert.Equal(t, 8.5, rec.TotalHours)
	assert.Equal(t, 8.5, records[0].TotalHours)
}

func TestPunch_TogglesStartingClosed(t *testing.T) {
	base := at(t, "2024-03-04T08:00:00Z")
	var records []Record
	for n := 1; n <= 6; n++ {
		tmpl := sarah
		tmpl.ID = "rec-" + string(rune('0'+n))
		var action Action
		records, _, action = Punch(records, tmpl, base.Add(time.Duration(n)*time.Hour), time.UTC)
		if n%2 == 1 {
			assert.Equal(t, ActionPunchIn, action, "punch %d", n)
			assert.Equal(t, ActionPunchOut, NextAction(records, "EMP002", "2024-03-04"))
		} else {
			assert.Equal(t, ActionPunchOut, action, "punch %d", n)
			assert.Equal(t, ActionPunchIn, NextAction(records, "EMP002", "2024-03-04"))
		}
	}
	// closed records are kept; a new one is opened after each close
	assert.Len(t, records, 3)
	for _, r := range records {
		assert.False(t, r.IsOpen())
		assert.Equal(t, 1.0, r.TotalHours)
	}
}

func TestPunch_DoesNotModifyInput(t *testing.T) {
	records, _, _ := Punch(nil, sarah, at(t, "2024-03-04T09:00:00Z"), time.UTC)
	_, _, _ = Punch(records, sarah, at(t, "2024-03-04T10:00:00Z"), time.UTC)
	assert.True(t, records[0].IsOpen())
}

func TestPunch_OpenRecordOfOtherDayIsIgnored(t *testing.T) {
	records, _, _ := Punch(nil, sarah, at(t, "2024-03-04T09:00:00Z"), time.UTC)
	records, rec, action := Punch(records, sarah, at(t, "2024-03-05T09:00:00Z"), time.UTC)
	assert.Equal(t, ActionPunchIn, action)
	assert.Equal(t, "2024-03-05", rec.Date)
	assert.Len(t, records, 2)
}

func TestPunch_OtherEmployeeIsIndependent(t *testing.T) {
	records, _, _ := Punch(nil, sarah, at(t, "2024-03-04T09:00:00Z"), time.UTC)
	admin := Record{ID: "rec-a", EmployeeID: "EMP001", EmployeeName: "Admin User"}
	_, _, action := Punch(records, admin, at(t, "2024-03-04T09:05:00Z"), time.UTC)
	assert.Equal(t, ActionPunchIn, action)
}

func TestDateAndMonthKey_UseLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := at(t, "2024-01-31T20:00:00Z") // 03:00 on Feb 1st in UTC+7
	assert.Equal(t, "2024-02-01", DateKey(ts, loc))
	assert.Equal(t, "02_2024", MonthKey(ts, loc))
	assert.Equal(t, "01_2024", MonthKey(ts, time.UTC))
}

func TestMonthKeyFromMonth(t *testing.T) {
	key, err := MonthKeyFromMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "03_2024", key)

	_, err = MonthKeyFromMonth("03-2024")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestWorkedHours(t *testing.T) {
	in := at(t, "2024-03-04T09:00:00Z")
	out := at(t, "2024-03-04T09:45:00Z")
	assert.Equal(t, 0.75, WorkedHours(in, &out))
	assert.Equal(t, 0.0, WorkedHours(in, nil))
}

func TestReschedule(t *testing.T) {
	rec, _, _ := Punch(nil, sarah, at(t, "2024-03-04T09:00:00Z"), time.UTC)
	in := at(t, "2024-03-02T22:00:00Z")
	out := at(t, "2024-03-03T02:00:00Z")

	moved, err := Reschedule(rec[0], in, &out, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", moved.Date)
	assert.Equal(t, 4.0, moved.TotalHours)
	assert.Equal(t, sarah.ID, moved.ID)

	reopened, err := Reschedule(moved, in, nil, time.UTC)
	require.NoError(t, err)
	assert.True(t, reopened.IsOpen())
	assert.Equal(t, 0.0, reopened.TotalHours)

	_, err = Reschedule(moved, out, &in, time.UTC)
	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestSortByCheckInDesc(t *testing.T) {
	a := at(t, "2024-03-04T09:00:00Z")
	b := at(t, "2024-03-05T09:00:00Z")
	records := []Record{{ID: "a", CheckIn: &a}, {ID: "none"}, {ID: "b", CheckIn: &b}}
	SortByCheckInDesc(records)
	assert.Equal(t, []string{"b", "a", "none"}, []string{records[0].ID, records[1].ID, records[2].ID})
}

func TestPunchRequest_Position(t *testing.T) {
	lat, lng := 40.7128, -74.0060

	pos, err := (&PunchRequest{Latitude: &lat, Longitude: &lng}).Position()
	require.NoError(t, err)
	assert.Equal(t, lat, pos.Latitude)

	_, err = (&PunchRequest{Latitude: &lat}).Position()
	assert.Error(t, err)

	_, err = (&PunchRequest{Latitude: &lat, Longitude: &lng, LocationError: "timeout"}).Position()
	require.Error(t, err)
	assert.Equal(t, "timeout", err.Error())
}

func TestUpdateRecordRequest_Validate(t *testing.T) {
	out := "2024-03-04T08:00:00Z"
	req := UpdateRecordRequest{ID: "rec-1", CheckIn: "2024-03-04T09:00:00Z", CheckOut: &out}
	assert.Error(t, req.Validate())

	out = "2024-03-04T17:00:00Z"
	require.NoError(t, req.Validate())
	in, co := req.Times()
	require.NotNil(t, co)
	assert.Equal(t, 8.0, co.Sub(in).Hours())

	empty := ""
	req = UpdateRecordRequest{ID: "rec-1", CheckIn: "2024-03-04T09:00:00Z", CheckOut: &empty}
	require.NoError(t, req.Validate())
	_, co = req.Times()
	assert.Nil(t, co)
}
