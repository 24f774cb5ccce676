package auth

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/credential"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	statesvc "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T) (*AuthServiceImpl, *statesvc.StoreImpl, *jwt.JWTService) {
	t.Helper()
	hasher := credential.NewBcryptHasher(bcrypt.MinCost)

	hash := func(pw string) string {
		h, err := hasher.Hash(pw)
		require.NoError(t, err)
		return h
	}

	store, err := statesvc.Open(context.Background(), memory.NewDocumentRepository(), func() (state.AppState, error) {
		return state.AppState{
			Employees: []employee.Employee{
				{ID: "EMP001", Name: "Admin User", Email: "admin@geoattend.com", PasswordHash: hash("admin"), Role: user.RoleAdmin, Status: employee.StatusActive},
				{ID: "EMP002", Name: "Sarah Connor", Email: "sarah@example.com", PasswordHash: hash("password123"), Role: user.RoleEmployee, Status: employee.StatusActive},
				{ID: "EMP003", Name: "Former Staff", Email: "former@example.com", PasswordHash: hash("password123"), Role: user.RoleEmployee, Status: employee.StatusInactive},
			},
		}, nil
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return NewAuthService(store, hasher, jwtService), store, jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: " Sarah@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, TokenTypeBearer, resp.TokenType)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
	assert.Equal(t, "EMP002", resp.Employee.ID)

	session, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP002", session.EmployeeID)
	assert.Equal(t, user.RoleEmployee, session.Role)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "sarah@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password.", err.Error())
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_Inactive(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "former@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	_, err = store.LoadSession(context.Background())
	assert.ErrorIs(t, err, state.ErrNoSession)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.LoginWithGoogle(context.Background(), "ADMIN@geoattend.com")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", resp.Employee.ID)

	_, err = svc.LoginWithGoogle(context.Background(), "stranger@gmail.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = svc.LoginWithGoogle(context.Background(), "former@example.com")
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, store, jwtService := newTestService(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@geoattend.com", Password: "admin"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	_, err = store.LoadSession(ctx)
	assert.ErrorIs(t, err, state.ErrNoSession)

	assert.ErrorIs(t, svc.Logout(ctx, ""), auth.ErrInvalidToken)
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newTestService(t)

	ctx := jwt.ContextWithClaims(context.Background(), jwt.Claims{EmployeeID: "EMP002", Role: user.RoleEmployee})
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Connor", me.Name)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthService_VerifyAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	assert.NoError(t, svc.VerifyAccount(ctx, "EMP002", user.RoleEmployee))
	assert.ErrorIs(t, svc.VerifyAccount(ctx, "EMP003", user.RoleEmployee), auth.ErrAccountInactive)
	assert.ErrorIs(t, svc.VerifyAccount(ctx, "EMP002", user.RoleAdmin), auth.ErrInvalidToken)
	assert.ErrorIs(t, svc.VerifyAccount(ctx, "EMP404", user.RoleEmployee), auth.ErrUnauthenticated)
}
