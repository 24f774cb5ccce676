package middleware

import (
	"context"
	"net/http"

	"github.com/geoattend/geoattend-backend-go/internal/domain/auth"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/handler/http/response"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AccountVerifier confirms the employee behind a token can still act with
// the role the token was issued for.
type AccountVerifier interface {
	VerifyAccount(ctx context.Context, employeeID string, role user.Role) error
}

// AuthRequired accepts only unrevoked access tokens whose employee is still
// active with the same role. It runs after jwtauth.Verifier has placed the
// token on the context.
func AuthRequired(jwtService jwt.Service, accounts AccountVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.Unauthorized(w, "Token revoked")
				return
			}

			identity, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if err := accounts.VerifyAccount(r.Context(), identity.EmployeeID, identity.Role); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
