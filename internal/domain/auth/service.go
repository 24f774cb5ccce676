package auth

import (
	"context"

	"github.com/geoattend/geoattend-backend-go/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle signs in the Active employee owning a verified Google email
	LoginWithGoogle(ctx context.Context, googleEmail string) (TokenResponse, error)

	// Logout revokes the access token and clears the stored session
	Logout(ctx context.Context, token string) error

	Me(ctx context.Context) (employee.EmployeeResponse, error)
}
