package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/leave"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	store    state.Store
	notifier notification.Notifier
	loc      *time.Location
	now      func() time.Time
}

func NewLeaveService(store state.Store, notifier notification.Notifier, loc *time.Location) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionLeaveCreate) {
		return leave.LeaveResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var (
		created leave.Request
		admins  []employee.Employee
	)
	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		emp, ok := st.FindEmployee(claims.EmployeeID)
		if !ok {
			return leave.ErrEmployeeNotFound
		}
		if !emp.IsActive() {
			return auth.ErrAccountInactive
		}

		created = leave.Request{
			ID:           uuid.NewString(),
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Reason:       strings.TrimSpace(req.Reason),
			Status:       leave.StatusPending,
			RequestDate:  s.now().In(s.loc).Format("2006-01-02"),
		}
		st.Leaves = append([]leave.Request{created}, st.Leaves...)
		admins = st.Admins()
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("Leave request submitted", "leave_id", created.ID, "employee_id", created.EmployeeID, "start_date", created.StartDate, "end_date", created.EndDate)

	for _, admin := range admins {
		if !admin.WantsMail(employee.WantsLeaveMail) {
			continue
		}
		s.notifier.Send(ctx, admin.Email, "Action Required: New Leave Request",
			fmt.Sprintf("%s has requested leave from %s to %s. Reason: %s", created.EmployeeName, created.StartDate, created.EndDate, created.Reason),
			notification.CategoryLeave)
	}

	return leave.NewLeaveResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context) (leave.ListLeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, auth.ErrUnauthenticated
	}
	viewAll := user.HasPermission(claims.Role, user.PermissionLeaveViewAll)

	requests := []leave.LeaveResponse{}
	for _, r := range s.store.Snapshot().Leaves {
		if !viewAll && r.EmployeeID != claims.EmployeeID {
			continue
		}
		requests = append(requests, leave.NewLeaveResponse(r))
	}

	return leave.ListLeaveResponse{Requests: requests, Total: len(requests)}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.DecisionResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.DecisionResponse, error) {
	return s.decide(ctx, id, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, to leave.Status) (leave.DecisionResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.DecisionResponse{}, auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionLeaveApprove) {
		return leave.DecisionResponse{}, user.ErrAdminPrivilegeRequired
	}

	var (
		decided   leave.Request
		requester employee.Employee
	)
	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		req, ok := st.FindLeave(id)
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		if err := req.Transition(to); err != nil {
			return err
		}

		// The requester may have been deleted; only approval needs them.
		emp, ok := st.FindEmployee(req.EmployeeID)
		if !ok && to == leave.StatusApproved {
			return leave.ErrEmployeeNotFound
		}
		if to == leave.StatusApproved {
			days, err := req.Days()
			if err != nil {
				return err
			}
			emp.LeaveBalance = leave.DeductBalance(emp.LeaveBalance, days)
		}

		decided = *req
		if ok {
			requester = *emp
		}
		return nil
	})
	if err != nil {
		return leave.DecisionResponse{}, err
	}

	slog.Info("Leave request decided", "leave_id", decided.ID, "status", decided.Status, "decided_by", claims.EmployeeID, "remaining_balance", requester.LeaveBalance)

	if requester.ID != "" && requester.WantsMail(employee.WantsLeaveMail) {
		s.notifier.Send(ctx, requester.Email, fmt.Sprintf("Leave Application: %s", decided.Status),
			fmt.Sprintf("Your leave request for %s to %s has been %s.", decided.StartDate, decided.EndDate, strings.ToLower(string(decided.Status))),
			notification.CategoryLeave)
	}

	return leave.DecisionResponse{
		Request:          leave.NewLeaveResponse(decided),
		RemainingBalance: requester.LeaveBalance,
	}, nil
}
