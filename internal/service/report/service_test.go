package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/report"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	statesvc "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newTestService(t *testing.T) *ReportServiceImpl {
	t.Helper()
	store, err := statesvc.Open(context.Background(), memory.NewDocumentRepository(), func() (state.AppState, error) {
		return state.AppState{
			Employees: []employee.Employee{
				{ID: "EMP001", Name: "Admin User", Department: "IT", Role: user.RoleAdmin, Status: employee.StatusActive},
				{ID: "EMP002", Name: "Sarah Connor", Department: "Engineering", Role: user.RoleEmployee, Status: employee.StatusActive},
			},
			Attendance: map[string][]attendance.Record{
				"03_2024": {
					{ID: "r1", EmployeeID: "EMP002", EmployeeName: "Sarah Connor", Date: "2024-03-04", CheckIn: at("2024-03-04T09:45:00Z"), CheckOut: at("2024-03-04T19:00:00Z"), TotalHours: 9.25},
					{ID: "r2", EmployeeID: "EMP002", EmployeeName: "Sarah Connor", Date: "2024-03-05", CheckIn: at("2024-03-05T09:00:00Z")},
				},
			},
		}, nil
	})
	require.NoError(t, err)

	svc := NewReportService(store, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC) }
	return svc
}

func asAdmin() context.Context {
	return jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP001", Role: user.RoleAdmin})
}

func TestGenerate_DefaultsToToday(t *testing.T) {
	svc := newTestService(t)

	rep, err := svc.Generate(asAdmin(), report.ReportRequest{Type: report.TypeDaily})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", rep.Date)
	require.Len(t, rep.Records, 1)
	assert.Equal(t, "r1", rep.Records[0].ID)
	assert.Equal(t, 1, rep.Analytics.OvertimeCount)
	assert.Equal(t, 2, rep.Analytics.WorkforceCount)
}

func TestGenerate_RequiresAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP002", Role: user.RoleEmployee})

	_, err := svc.Generate(ctx, report.ReportRequest{Type: report.TypeDaily})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestExportCSV_Absence(t *testing.T) {
	svc := newTestService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(asAdmin(), report.ReportRequest{Type: report.TypeAbsence, Date: "2024-03-04"}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Name", "Dept", "Status"}, rows[0])
	assert.Equal(t, []string{"EMP001", "Admin User", "IT", "Absent"}, rows[1])
}

func TestExportCSV_MissingCheckOut(t *testing.T) {
	svc := newTestService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(asAdmin(), report.ReportRequest{Type: report.TypeDaily, Date: "2024-03-05"}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"EMP002", "Sarah Connor", "2024-03-05 09:00:00", "09:00:00", "-", "0.00"}, rows[1])
}

func TestExportXLSX_Monthly(t *testing.T) {
	svc := newTestService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(asAdmin(), report.ReportRequest{Type: report.TypeMonthly, Month: "2024-03"}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("monthly 2024-03")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, []string{"ID", "Name", "Dept", "Total Hours", "Days Present"}, rows[0])
}
