package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
)

const DefaultLeaveBalance = 20

type EmployeeServiceImpl struct {
	store  state.Store
	hasher auth.CredentialHasher
	loc    *time.Location
	now    func() time.Time
}

func NewEmployeeService(store state.Store, hasher auth.CredentialHasher, loc *time.Location) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		store:  store,
		hasher: hasher,
		loc:    loc,
		now:    time.Now,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, search string) (employee.ListEmployeeResponse, error) {
	if err := requirePermission(ctx, user.PermissionEmployeeViewAll); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	out := []employee.EmployeeResponse{}
	for _, e := range s.store.Snapshot().Employees {
		if e.Matches(search) {
			out = append(out, employee.NewEmployeeResponse(e))
		}
	}
	return employee.ListEmployeeResponse{Employees: out, Total: len(out)}, nil
}

// Get implements employee.EmployeeService. Employees may read their own record.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, auth.ErrUnauthenticated
	}
	if claims.EmployeeID != id && !user.HasPermission(claims.Role, user.PermissionEmployeeViewAll) {
		return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
	}

	snap := s.store.Snapshot()
	emp, ok := snap.FindEmployee(id)
	if !ok {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.NewEmployeeResponse(*emp), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requirePermission(ctx, user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("hash password: %w", err)
	}

	emp := employee.Employee{
		Name:                 strings.TrimSpace(req.Name),
		Email:                req.Email,
		PasswordHash:         hash,
		Role:                 user.Role(req.Role),
		Designation:          strings.TrimSpace(req.Designation),
		Department:           strings.TrimSpace(req.Department),
		Status:               employee.Status(req.Status),
		JoinedDate:           s.now().In(s.loc).Format("2006-01-02"),
		LeaveBalance:         DefaultLeaveBalance,
		NotificationSettings: employee.DefaultNotificationSettings(),
	}
	if req.LeaveBalance != nil {
		emp.LeaveBalance = *req.LeaveBalance
	}
	if req.JoinedDate != nil {
		emp.JoinedDate = *req.JoinedDate
	}

	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		if _, taken := st.EmployeeByEmail(emp.Email); taken {
			return employee.ErrEmailExists
		}
		emp.ID = employee.NextID(st.Employees)
		st.Employees = append(st.Employees, emp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", emp.ID, "role", emp.Role)
	return employee.NewEmployeeResponse(emp), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requirePermission(ctx, user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var hash string
	if req.Password != nil && *req.Password != "" {
		h, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	var updated employee.Employee
	_, err := s.store.Update(ctx, func(st *state.AppState) error {
		emp, ok := st.FindEmployee(req.ID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		if other, taken := st.EmployeeByEmail(req.Email); taken && other.ID != emp.ID {
			return employee.ErrEmailExists
		}

		emp.Name = strings.TrimSpace(req.Name)
		emp.Email = req.Email
		emp.Role = user.Role(req.Role)
		emp.Designation = strings.TrimSpace(req.Designation)
		emp.Department = strings.TrimSpace(req.Department)
		emp.Status = employee.Status(req.Status)
		if hash != "" {
			emp.PasswordHash = hash
		}
		updated = *emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID, "status", updated.Status, "password_changed", hash != "")
	return employee.NewEmployeeResponse(updated), nil
}

// Delete implements employee.EmployeeService. Attendance and leave history
// of the removed employee is kept.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string, confirmed bool) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, user.PermissionEmployeeManage) {
		return user.ErrAdminPrivilegeRequired
	}
	if claims.EmployeeID == id {
		return employee.ErrCannotDeleteSelf
	}
	if !confirmed {
		return employee.ErrConfirmationRequired
	}

	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		for i := range st.Employees {
			if st.Employees[i].ID == id {
				st.Employees = append(st.Employees[:i:i], st.Employees[i+1:]...)
				return nil
			}
		}
		return employee.ErrEmployeeNotFound
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id, "deleted_by", claims.EmployeeID)
	return nil
}

// UpdateMyNotificationSettings implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateMyNotificationSettings(ctx context.Context, req employee.UpdateNotificationSettingsRequest) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, auth.ErrUnauthenticated
	}

	var updated employee.Employee
	_, err = s.store.Update(ctx, func(st *state.AppState) error {
		emp, ok := st.FindEmployee(claims.EmployeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		settings := req.NotificationSettings
		emp.NotificationSettings = &settings
		updated = *emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Notification settings updated", "employee_id", updated.ID, "email_delivery", req.EmailDelivery)
	return employee.NewEmployeeResponse(updated), nil
}

func requirePermission(ctx context.Context, perm user.Permission) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return auth.ErrUnauthenticated
	}
	if !user.HasPermission(claims.Role, perm) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
