package attendance

import (
	"sort"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	monthKeyLayout = "01_2006"
)

// MonthKey returns the MM_YYYY bucket for t in loc.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(monthKeyLayout)
}

// MonthKeyFromMonth converts a YYYY-MM month into its MM_YYYY bucket.
func MonthKeyFromMonth(month string) (string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.Format(monthKeyLayout), nil
}

// DateKey returns the calendar date of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// WorkedHours is the fractional number of hours between in and out.
// An open record has zero hours.
func WorkedHours(checkIn time.Time, checkOut *time.Time) float64 {
	if checkOut == nil {
		return 0
	}
	return checkOut.Sub(checkIn).Hours()
}

// LatestForDay returns the index of the employee's most recent record on
// date, or -1 when there is none.
func LatestForDay(records []Record, employeeID, date string) int {
	latest := -1
	for i, r := range records {
		if r.EmployeeID != employeeID || r.Date != date {
			continue
		}
		if latest == -1 || checkInAfter(r, records[latest]) {
			latest = i
		}
	}
	return latest
}

func checkInAfter(a, b Record) bool {
	if a.CheckIn == nil {
		return false
	}
	if b.CheckIn == nil {
		return true
	}
	return !a.CheckIn.Before(*b.CheckIn)
}

// NextAction tells which punch the employee would perform next on date.
func NextAction(records []Record, employeeID, date string) Action {
	if i := LatestForDay(records, employeeID, date); i >= 0 && records[i].IsOpen() {
		return ActionPunchOut
	}
	return ActionPunchIn
}

// Punch toggles the employee's attendance for the day containing now.
// With no record for the day, or a closed latest record, a new open record
// is appended. Otherwise the open record is closed and its hours computed.
// The input slice is not modified.
func Punch(records []Record, template Record, now time.Time, loc *time.Location) ([]Record, Record, Action) {
	date := DateKey(now, loc)
	out := make([]Record, len(records), len(records)+1)
	copy(out, records)

	if i := LatestForDay(out, template.EmployeeID, date); i >= 0 && out[i].IsOpen() {
		checkOut := now
		out[i].CheckOut = &checkOut
		out[i].TotalHours = WorkedHours(*out[i].CheckIn, &checkOut)
		return out, out[i], ActionPunchOut
	}

	checkIn := now
	rec := template
	rec.Date = date
	rec.CheckIn = &checkIn
	rec.CheckOut = nil
	rec.TotalHours = 0
	out = append(out, rec)
	return out, rec, ActionPunchIn
}

// Reschedule applies an admin correction: new times, recomputed hours and a
// date re-derived from the check-in.
func Reschedule(rec Record, checkIn time.Time, checkOut *time.Time, loc *time.Location) (Record, error) {
	if checkOut != nil && checkOut.Before(checkIn) {
		return Record{}, ErrCheckOutBeforeCheckIn
	}
	in := checkIn
	rec.CheckIn = &in
	if checkOut != nil {
		out := *checkOut
		rec.CheckOut = &out
	} else {
		rec.CheckOut = nil
	}
	rec.TotalHours = WorkedHours(in, rec.CheckOut)
	rec.Date = DateKey(in, loc)
	return rec, nil
}

// SortByCheckInDesc orders records newest check-in first.
func SortByCheckInDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return checkInAfterStrict(records[i], records[j])
	})
}

func checkInAfterStrict(a, b Record) bool {
	if a.CheckIn == nil || b.CheckIn == nil {
		return a.CheckIn != nil && b.CheckIn == nil
	}
	return a.CheckIn.After(*b.CheckIn)
}
