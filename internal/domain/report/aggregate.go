package report

import (
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Build computes a report from the month's records. date is only used by
// day-scoped reports and month is echoed back as YYYY-MM.
func Build(t Type, date, month string, employees []employee.Employee, monthRecords []attendance.Record, loc *time.Location) Report {
	rep := Report{Type: t, Month: month}
	if t.DayScoped() {
		rep.Date = date
	}

	switch t {
	case TypeDaily:
		rep.Records = Daily(monthRecords, date)
	case TypeMonthly:
		rep.Monthly = Monthly(employees, monthRecords)
	case TypeOvertime:
		rep.Records = Overtime(monthRecords)
	case TypeLate:
		rep.Records = Late(monthRecords, loc)
	case TypeAbsence:
		rep.Absentees = Absence(employees, monthRecords, date)
	}

	scope := monthRecords
	if t.DayScoped() {
		scope = Daily(monthRecords, date)
	}
	rep.Analytics = Analyze(scope, employees)

	return rep
}

func Daily(records []attendance.Record, date string) []attendance.Record {
	return filter(records, func(r attendance.Record) bool { return r.Date == date })
}

// Monthly totals hours and present days for every employee in the directory.
func Monthly(employees []employee.Employee, records []attendance.Record) []MonthlySummary {
	out := make([]MonthlySummary, 0, len(employees))
	for _, emp := range employees {
		total := decimal.Zero
		days := 0
		for _, r := range records {
			if r.EmployeeID != emp.ID {
				continue
			}
			total = total.Add(decimal.NewFromFloat(r.TotalHours))
			days++
		}
		out = append(out, MonthlySummary{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Department:   emp.Department,
			TotalHours:   total.Round(2),
			PresentDays:  days,
		})
	}
	return out
}

func Overtime(records []attendance.Record) []attendance.Record {
	return filter(records, func(r attendance.Record) bool { return r.TotalHours > OvertimeThresholdHours })
}

// Late keeps records whose local check-in time is after 09:30.
func Late(records []attendance.Record, loc *time.Location) []attendance.Record {
	return filter(records, func(r attendance.Record) bool {
		if r.CheckIn == nil {
			return false
		}
		in := r.CheckIn.In(loc)
		return in.Hour() > lateHour || (in.Hour() == lateHour && in.Minute() > lateMinute)
	})
}

// Absence lists Active employees without a record on date. Weekends have no absences.
func Absence(employees []employee.Employee, records []attendance.Record, date string) []Absentee {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return []Absentee{}
	}
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return []Absentee{}
	}

	present := make(map[string]struct{})
	for _, r := range records {
		if r.Date == date {
			present[r.EmployeeID] = struct{}{}
		}
	}

	out := []Absentee{}
	for _, emp := range employees {
		if !emp.IsActive() {
			continue
		}
		if _, ok := present[emp.ID]; ok {
			continue
		}
		out = append(out, Absentee{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Department:   emp.Department,
		})
	}
	return out
}

func Analyze(records []attendance.Record, employees []employee.Employee) Analytics {
	total := decimal.Zero
	overtime := 0
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.TotalHours))
		if r.TotalHours > OvertimeThresholdHours {
			overtime++
		}
	}

	avg := decimal.Zero
	if len(records) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(records))))
	}

	workforce := 0
	for _, e := range employees {
		if e.IsActive() {
			workforce++
		}
	}

	return Analytics{
		TotalHours:     total.Round(2),
		AverageHours:   avg.Round(2),
		OvertimeCount:  overtime,
		WorkforceCount: workforce,
	}
}

func filter(records []attendance.Record, keep func(attendance.Record) bool) []attendance.Record {
	out := []attendance.Record{}
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
