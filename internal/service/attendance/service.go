package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/attendance"
	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/export"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

var csvHeaders = []string{"Employee ID", "Employee Name", "Date & Time", "Check In", "Check Out", "Total Hours"}

type AttendanceServiceImpl struct {
	store    state.Store
	notifier notification.Notifier
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewAttendanceService(store state.Store, notifier notification.Notifier, loc *time.Location) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// SetClock replaces the time source.
func (s *AttendanceServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *AttendanceServiceImpl) acquire(employeeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[employeeID]; busy {
		return false
	}
	s.inFlight[employeeID] = struct{}{}
	return true
}

func (s *AttendanceServiceImpl) release(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, employeeID)
}

// Punch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.PunchResponse{}, auth.ErrUnauthenticated
	}

	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	if !s.acquire(claims.EmployeeID) {
		return attendance.PunchResponse{}, attendance.ErrPunchInProgress
	}
	defer s.release(claims.EmployeeID)

	snap := s.store.Snapshot()
	emp, ok := snap.FindEmployee(claims.EmployeeID)
	if !ok {
		return attendance.PunchResponse{}, attendance.ErrEmployeeNotFound
	}
	if !emp.IsActive() {
		return attendance.PunchResponse{}, auth.ErrAccountInactive
	}

	pos, err := req.Position()
	if err != nil {
		slog.Warn("Punch without location", "employee_id", emp.ID, "reason", err.Error())
		return attendance.PunchResponse{}, err
	}

	distance, err := geofence.Check(snap.Config, pos)
	if err != nil {
		var breach *geofence.BreachError
		if errors.As(err, &breach) {
			slog.Warn("Geofence breach", "employee_id", emp.ID, "distance_m", breach.RoundedDistance(), "radius_m", breach.Radius)
			if emp.WantsMail(employee.AnyMail) {
				s.notifier.Send(ctx, emp.Email, "Security Alert: Geo-Fence Breach",
					fmt.Sprintf("An unsuccessful clock-in attempt was recorded outside the office zone. Distance: %dm.", breach.RoundedDistance()),
					notification.CategorySystem)
			}
		}
		return attendance.PunchResponse{}, err
	}

	now := s.now()
	var (
		rec    attendance.Record
		action attendance.Action
	)
	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		current, ok := st.FindEmployee(emp.ID)
		if !ok {
			return attendance.ErrEmployeeNotFound
		}
		key := attendance.MonthKey(now, s.loc)
		template := attendance.Record{
			ID:           uuid.NewString(),
			EmployeeID:   current.ID,
			EmployeeName: current.Name,
			Location:     &geofence.Position{Latitude: pos.Latitude, Longitude: pos.Longitude},
		}
		st.Attendance[key], rec, action = attendance.Punch(st.Attendance[key], template, now, s.loc)
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("record punch: %w", err)
	}

	slog.Info("Punch recorded", "employee_id", emp.ID, "action", action, "record_id", rec.ID, "distance_m", math.Round(distance))

	if emp.WantsMail(employee.WantsAttendanceMail) {
		display := now.In(s.loc).Format(export.TimeLayout)
		if action == attendance.ActionPunchIn {
			s.notifier.Send(ctx, emp.Email, "Attendance: Clocked In",
				fmt.Sprintf("You have successfully clocked in at %s.", display),
				notification.CategoryAttendance)
		} else {
			s.notifier.Send(ctx, emp.Email, "Attendance: Clocked Out",
				fmt.Sprintf("You have successfully clocked out at %s. Total hours: %sh", display, export.FormatHours(rec.TotalHours)),
				notification.CategoryAttendance)
		}
	}

	return attendance.PunchResponse{Action: action, Record: rec, Distance: distance}, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, auth.ErrUnauthenticated
	}

	now := s.now()
	date := attendance.DateKey(now, s.loc)
	records := s.store.Snapshot().Attendance[attendance.MonthKey(now, s.loc)]

	resp := attendance.TodayResponse{
		Date:       date,
		NextAction: attendance.NextAction(records, claims.EmployeeID, date),
	}
	if i := attendance.LatestForDay(records, claims.EmployeeID, date); i >= 0 {
		rec := records[i]
		resp.Record = &rec
	}
	return resp, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordResponse{}, auth.ErrUnauthenticated
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListRecordResponse{}, err
	}
	if filter.Month == "" {
		filter.Month = s.now().In(s.loc).Format("2006-01")
	}
	if !user.HasPermission(claims.Role, user.PermissionAttendanceViewAll) {
		filter.EmployeeID = claims.EmployeeID
	}

	records, err := s.filtered(filter)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}

	return attendance.ListRecordResponse{
		Month:   filter.Month,
		Records: records,
		Total:   len(records),
	}, nil
}

func (s *AttendanceServiceImpl) filtered(filter attendance.ListFilter) ([]attendance.Record, error) {
	key, err := attendance.MonthKeyFromMonth(filter.Month)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := []attendance.Record{}
	for _, r := range s.store.Snapshot().Attendance[key] {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.EmployeeName), q) && !strings.Contains(strings.ToLower(r.EmployeeID), q) {
			continue
		}
		out = append(out, r)
	}
	attendance.SortByCheckInDesc(out)
	return out, nil
}

// ExportCSV implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportCSV(ctx context.Context, filter attendance.ListFilter, w io.Writer) error {
	list, err := s.List(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, s.Table(list.Records))
}

// Table lays records out in the attendance export format.
func (s *AttendanceServiceImpl) Table(records []attendance.Record) export.Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.EmployeeID,
			r.EmployeeName,
			export.FormatDateTime(r.CheckIn, s.loc, "N/A"),
			export.FormatTime(r.CheckIn, s.loc, "N/A"),
			export.FormatTime(r.CheckOut, s.loc, "N/A"),
			export.FormatHours(r.TotalHours),
		})
	}
	return export.Table{Sheet: "Attendance", Headers: csvHeaders, Rows: rows}
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.Record, error) {
	if err := s.requireManage(ctx); err != nil {
		return attendance.Record{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	checkIn, checkOut := req.Times()

	var updated attendance.Record
	_, err := s.store.Update(ctx, func(st *state.AppState) error {
		key, idx, ok := st.FindRecord(req.ID)
		if !ok {
			return attendance.ErrRecordNotFound
		}

		rec, err := attendance.Reschedule(st.Attendance[key][idx], checkIn, checkOut, s.loc)
		if err != nil {
			return err
		}

		newKey := attendance.MonthKey(checkIn, s.loc)
		if rec.IsOpen() {
			for _, other := range st.Attendance[newKey] {
				if other.ID != rec.ID && other.EmployeeID == rec.EmployeeID && other.Date == rec.Date && other.IsOpen() {
					return attendance.ErrOpenRecordExists
				}
			}
		}
		if newKey == key {
			st.Attendance[key][idx] = rec
		} else {
			st.RemoveRecord(key, idx)
			st.Attendance[newKey] = append(st.Attendance[newKey], rec)
		}
		updated = rec
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("Attendance record updated", "record_id", updated.ID, "date", updated.Date, "hours", updated.TotalHours)
	return updated, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := s.requireManage(ctx); err != nil {
		return err
	}
	if !confirmed {
		return attendance.ErrConfirmationRequired
	}

	_, err := s.store.Update(ctx, func(st *state.AppState) error {
		key, idx, ok := st.FindRecord(id)
		if !ok {
			return attendance.ErrRecordNotFound
		}
		st.RemoveRecord(key, idx)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Attendance record deleted", "record_id", id)
	return nil
}

func (s *AttendanceServiceImpl) requireManage(ctx context.Context) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionAttendanceManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
