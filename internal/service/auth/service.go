package auth

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

const TokenTypeBearer = "Bearer"

type AuthServiceImpl struct {
	store  state.Store
	hasher auth.CredentialHasher
	jwt.Service
	now func() time.Time
}

func NewAuthService(store state.Store, hasher auth.CredentialHasher, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:   store,
		hasher:  hasher,
		Service: jwtService,
		now:     time.Now,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	snap := a.store.Snapshot()
	emp, ok := snap.EmployeeByEmail(req.Email)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if emp.PasswordHash == "" || !a.hasher.Verify(emp.PasswordHash, req.Password) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(ctx, *emp, "password")
}

// LoginWithGoogle implements auth.AuthService. Only existing employees can
// sign in this way; no account is created.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string) (auth.TokenResponse, error) {
	snap := a.store.Snapshot()
	emp, ok := snap.EmployeeByEmail(strings.ToLower(strings.TrimSpace(googleEmail)))
	if !ok {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	return a.issue(ctx, *emp, "google")
}

func (a *AuthServiceImpl) issue(ctx context.Context, emp employee.Employee, method string) (auth.TokenResponse, error) {
	if !emp.IsActive() {
		slog.Warn("Login refused for inactive account", "employee_id", emp.ID, "method", method)
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	session := state.Session{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       emp.Role,
		LoggedInAt: a.now(),
	}
	if err := a.store.SaveSession(ctx, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("Employee logged in", "employee_id", emp.ID, "role", emp.Role, "method", method)

	return auth.TokenResponse{
		AccessToken:          token,
		TokenType:            TokenTypeBearer,
		AccessTokenExpiresIn: expiresAt,
		Employee:             employee.NewEmployeeResponse(emp),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)

	if err := a.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, auth.ErrUnauthenticated
	}

	snap := a.store.Snapshot()
	emp, ok := snap.FindEmployee(claims.EmployeeID)
	if !ok {
		return employee.EmployeeResponse{}, auth.ErrUserNotFound
	}
	if !emp.IsActive() {
		return employee.EmployeeResponse{}, auth.ErrAccountInactive
	}
	return employee.NewEmployeeResponse(*emp), nil
}

// VerifyAccount reports whether employeeID still exists, is active and holds
// role. Tokens outlive status and role changes, so every request re-checks.
func (a *AuthServiceImpl) VerifyAccount(ctx context.Context, employeeID string, role user.Role) error {
	snap := a.store.Snapshot()
	emp, ok := snap.FindEmployee(employeeID)
	if !ok {
		return auth.ErrUnauthenticated
	}
	if !emp.IsActive() {
		return auth.ErrAccountInactive
	}
	if emp.Role != role {
		return auth.ErrInvalidToken
	}
	return nil
}
