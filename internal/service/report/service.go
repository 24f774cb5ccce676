package report

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/report"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/export"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
)

type ReportServiceImpl struct {
	store state.Store
	loc   *time.Location
	now   func() time.Time
}

func NewReportService(store state.Store, loc *time.Location) *ReportServiceImpl {
	return &ReportServiceImpl{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.ReportRequest) (report.Report, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return report.Report{}, auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionReportsView) {
		return report.Report{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	month := req.Resolve(s.now().In(s.loc))
	key, err := attendance.MonthKeyFromMonth(month)
	if err != nil {
		return report.Report{}, err
	}

	snap := s.store.Snapshot()
	rep := report.Build(req.Type, req.Date, month, snap.Employees, snap.Attendance[key], s.loc)

	slog.Info("Report generated", "type", rep.Type, "date", rep.Date, "month", rep.Month, "rows", rep.Len())
	return rep, nil
}

// ExportCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, req report.ReportRequest, w io.Writer) error {
	rep, err := s.Generate(ctx, req)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, s.table(rep))
}

// ExportXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportXLSX(ctx context.Context, req report.ReportRequest, w io.Writer) error {
	rep, err := s.Generate(ctx, req)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, s.table(rep))
}

func (s *ReportServiceImpl) table(rep report.Report) export.Table {
	t := export.Table{Sheet: sheetName(rep)}

	switch rep.Type {
	case report.TypeMonthly:
		t.Headers = []string{"ID", "Name", "Dept", "Total Hours", "Days Present"}
		for _, m := range rep.Monthly {
			t.Rows = append(t.Rows, []string{
				m.EmployeeID,
				m.EmployeeName,
				m.Department,
				m.TotalHours.StringFixed(2),
				strconv.Itoa(m.PresentDays),
			})
		}

	case report.TypeAbsence:
		t.Headers = []string{"ID", "Name", "Dept", "Status"}
		for _, a := range rep.Absentees {
			t.Rows = append(t.Rows, []string{a.EmployeeID, a.EmployeeName, a.Department, "Absent"})
		}

	default:
		t.Headers = []string{"ID", "Name", "Date/Time", "In", "Out", "Hours"}
		for _, r := range rep.Records {
			t.Rows = append(t.Rows, []string{
				r.EmployeeID,
				r.EmployeeName,
				export.FormatDateTime(r.CheckIn, s.loc, "-"),
				export.FormatTime(r.CheckIn, s.loc, "-"),
				export.FormatTime(r.CheckOut, s.loc, "-"),
				export.FormatHours(r.TotalHours),
			})
		}
	}

	return t
}

func sheetName(rep report.Report) string {
	if rep.Type.DayScoped() {
		return string(rep.Type) + " " + rep.Date
	}
	return string(rep.Type) + " " + rep.Month
}
