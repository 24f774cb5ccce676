package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrAccountInactive    = errors.New("Your account is inactive.")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")

	// Google sign-in
	ErrGoogleLoginDisabled      = errors.New("google sign-in is not configured")
	ErrGoogleAccessDeniedByUser = errors.New("google access denied by user")
	ErrGoogleEmailNotVerified   = errors.New("google email is not verified")
	ErrStateCookieEmpty         = errors.New("state cookie is empty")
	ErrStateParamEmpty          = errors.New("state parameter is empty")
	ErrStateMismatch            = errors.New("state mismatch")
	ErrCodeValueEmpty           = errors.New("code value is empty")
)
