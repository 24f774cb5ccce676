package leave

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/leave"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/email"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	statesvc "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*LeaveServiceImpl, *statesvc.StoreImpl, *email.Notifier) {
	t.Helper()

	store, err := statesvc.Open(context.Background(), memory.NewDocumentRepository(), func() (state.AppState, error) {
		return state.AppState{
			Employees: []employee.Employee{
				{ID: "EMP001", Name: "Admin User", Email: "admin@geoattend.com", Role: user.RoleAdmin, Status: employee.StatusActive, LeaveBalance: 20, NotificationSettings: employee.DefaultNotificationSettings()},
				{ID: "EMP002", Name: "Sarah Connor", Email: "sarah@example.com", Role: user.RoleEmployee, Status: employee.StatusActive, LeaveBalance: 15, NotificationSettings: employee.DefaultNotificationSettings()},
			},
		}, nil
	})
	require.NoError(t, err)

	notifier := email.NewNotifier(50)
	svc := NewLeaveService(store, notifier, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, store, notifier
}

func asSarah() context.Context {
	return jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP002", Email: "sarah@example.com", Role: user.RoleEmployee})
}

func asAdmin() context.Context {
	return jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP001", Email: "admin@geoattend.com", Role: user.RoleAdmin})
}

func submit(t *testing.T, svc *LeaveServiceImpl) leave.LeaveResponse {
	t.Helper()
	resp, err := svc.Create(asSarah(), leave.CreateLeaveRequest{StartDate: "2024-03-11", EndDate: "2024-03-13", Reason: "Family trip"})
	require.NoError(t, err)
	return resp
}

func TestCreate(t *testing.T) {
	svc, store, notifier := newTestService(t)

	resp := submit(t, svc)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "EMP002", resp.EmployeeID)
	assert.Equal(t, "Sarah Connor", resp.EmployeeName)
	assert.Equal(t, "2024-03-01", resp.RequestDate)
	assert.Equal(t, 3, resp.Days)

	assert.Len(t, store.Snapshot().Leaves, 1)

	mails := notifier.History()
	require.Len(t, mails, 1)
	assert.Equal(t, "admin@geoattend.com", mails[0].To)
	assert.Equal(t, "Action Required: New Leave Request", mails[0].Subject)
	assert.Equal(t, "Sarah Connor has requested leave from 2024-03-11 to 2024-03-13. Reason: Family trip", mails[0].Body)
}

func TestCreate_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Create(asSarah(), leave.CreateLeaveRequest{StartDate: "2024-03-13", EndDate: "2024-03-11", Reason: "x"})
	assert.Error(t, err)
}

func TestList_Scoping(t *testing.T) {
	svc, _, _ := newTestService(t)
	submit(t, svc)
	_, err := svc.Create(asAdmin(), leave.CreateLeaveRequest{StartDate: "2024-04-01", EndDate: "2024-04-01", Reason: "Errand"})
	require.NoError(t, err)

	own, err := svc.List(asSarah())
	require.NoError(t, err)
	assert.Equal(t, 1, own.Total)

	all, err := svc.List(asAdmin())
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, "EMP001", all.Requests[0].EmployeeID)
}

func TestApprove_DeductsBalance(t *testing.T) {
	svc, store, notifier := newTestService(t)
	created := submit(t, svc)

	decision, err := svc.Approve(asAdmin(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decision.Request.Status)
	assert.Equal(t, 12, decision.RemainingBalance)

	emp, ok := func() (employee.Employee, bool) {
		snap := store.Snapshot()
		e, ok := snap.FindEmployee("EMP002")
		if !ok {
			return employee.Employee{}, false
		}
		return *e, true
	}()
	require.True(t, ok)
	assert.Equal(t, 12, emp.LeaveBalance)

	mails := notifier.History()
	assert.Equal(t, "Leave Application: APPROVED", mails[0].Subject)
	assert.Equal(t, "Your leave request for 2024-03-11 to 2024-03-13 has been approved.", mails[0].Body)
}

func TestApprove_Twice(t *testing.T) {
	svc, store, _ := newTestService(t)
	created := submit(t, svc)

	_, err := svc.Approve(asAdmin(), created.ID)
	require.NoError(t, err)

	_, err = svc.Approve(asAdmin(), created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.Reject(asAdmin(), created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	snap := store.Snapshot()
	emp, _ := snap.FindEmployee("EMP002")
	assert.Equal(t, 12, emp.LeaveBalance)
}

func TestReject_KeepsBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := submit(t, svc)

	decision, err := svc.Reject(asAdmin(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, decision.Request.Status)
	assert.Equal(t, 15, decision.RemainingBalance)
}

func TestDecide_Guards(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := submit(t, svc)

	_, err := svc.Approve(asSarah(), created.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.Approve(asAdmin(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func removeSarah(t *testing.T, store *statesvc.StoreImpl) {
	t.Helper()
	_, err := store.Update(context.Background(), func(st *state.AppState) error {
		st.Employees = st.Employees[:1]
		return nil
	})
	require.NoError(t, err)
}

func TestReject_DeletedRequester(t *testing.T) {
	svc, store, notifier := newTestService(t)
	created := submit(t, svc)
	removeSarah(t, store)

	resp, err := svc.Reject(asAdmin(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Request.Status)
	assert.Equal(t, leave.StatusRejected, store.Snapshot().Leaves[0].Status)
	assert.Len(t, notifier.History(), 1)
}

func TestApprove_DeletedRequester(t *testing.T) {
	svc, store, _ := newTestService(t)
	created := submit(t, svc)
	removeSarah(t, store)

	_, err := svc.Approve(asAdmin(), created.ID)
	assert.ErrorIs(t, err, leave.ErrEmployeeNotFound)
	assert.Equal(t, leave.StatusPending, store.Snapshot().Leaves[0].Status)
}

func TestCreate_InactiveAccount(t *testing.T) {
	svc, store, notifier := newTestService(t)
	_, err := store.Update(context.Background(), func(st *state.AppState) error {
		emp, _ := st.FindEmployee("EMP002")
		emp.Status = employee.StatusInactive
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Create(asSarah(), leave.CreateLeaveRequest{StartDate: "2024-03-11", EndDate: "2024-03-13", Reason: "Family trip"})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
	assert.Empty(t, store.Snapshot().Leaves)
	assert.Empty(t, notifier.History())
}
