package jwt

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimEmployeeID = "employee_id"
	ClaimEmail      = "email"
	ClaimRole       = "role"
	ClaimType       = "type"

	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

var ErrMissingClaims = errors.New("missing or invalid token claims")

// Claims is the caller identity carried by an access token.
type Claims struct {
	EmployeeID string
	Email      string
	Role       user.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role.IsAdmin()
}

// ClaimsFromContext reads the identity placed on the request by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMissingClaims, err)
	}

	employeeID, _ := claims[ClaimEmployeeID].(string)
	email, _ := claims[ClaimEmail].(string)
	role, _ := claims[ClaimRole].(string)
	if employeeID == "" || !user.Role(role).IsValid() {
		return Claims{}, ErrMissingClaims
	}

	return Claims{EmployeeID: employeeID, Email: email, Role: user.Role(role)}, nil
}

// ContextWithClaims builds a context as jwtauth.Verifier would after
// accepting an access token for c. Used by background callers and tests.
func ContextWithClaims(ctx context.Context, c Claims) context.Context {
	token := jwt.New()
	_ = token.Set(ClaimEmployeeID, c.EmployeeID)
	_ = token.Set(ClaimEmail, c.Email)
	_ = token.Set(ClaimRole, string(c.Role))
	_ = token.Set(ClaimType, TokenTypeAccess)
	return jwtauth.NewContext(ctx, token, nil)
}
