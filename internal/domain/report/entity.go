package report

import (
	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDaily    Type = "daily"
	TypeMonthly  Type = "monthly"
	TypeOvertime Type = "overtime"
	TypeLate     Type = "late"
	TypeAbsence  Type = "absence"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDaily, TypeMonthly, TypeOvertime, TypeLate, TypeAbsence:
		return true
	}
	return false
}

// DayScoped reports whether the report covers a single date rather than a month.
func (t Type) DayScoped() bool {
	return t == TypeDaily || t == TypeAbsence
}

const (
	// OvertimeThresholdHours is the shift length above which a record counts as overtime.
	OvertimeThresholdHours = 8.0

	lateHour   = 9
	lateMinute = 30
)

type MonthlySummary struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	PresentDays  int             `json:"present_days"`
}

type Absentee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
}

type Analytics struct {
	TotalHours     decimal.Decimal `json:"total_hours"`
	AverageHours   decimal.Decimal `json:"average_hours"`
	OvertimeCount  int             `json:"overtime_count"`
	WorkforceCount int             `json:"workforce_count"`
}

// Report is recomputed on every request; nothing here is stored.
type Report struct {
	Type      Type      `json:"type"`
	Date      string    `json:"date,omitempty"`
	Month     string    `json:"month"`
	Analytics Analytics `json:"analytics"`

	Records   []attendance.Record `json:"records,omitempty"`
	Monthly   []MonthlySummary    `json:"monthly,omitempty"`
	Absentees []Absentee          `json:"absentees,omitempty"`
}

// Len is the number of rows the report renders.
func (r Report) Len() int {
	switch r.Type {
	case TypeMonthly:
		return len(r.Monthly)
	case TypeAbsence:
		return len(r.Absentees)
	default:
		return len(r.Records)
	}
}
