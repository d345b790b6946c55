package auth

import "errors"

// Login and guard outcomes. All of these are expected results the caller
// maps to a response; only ErrInternal signals a fault in the signing or
// hashing subsystem itself.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive or blocked")
	ErrAccountLocked      = errors.New("account locked after too many failed attempts")
	ErrEmailUnverified    = errors.New("email address not verified")
	ErrAppTokenRequired   = errors.New("application token required for APP_USER login")
	ErrAppTokenInvalid    = errors.New("invalid application token")
	ErrRoleMismatch       = errors.New("requested role does not match account role")
	ErrPrincipalNotFound  = errors.New("principal no longer resolves")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal auth error")
)

// Token verification failures.
var (
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenSignature      = errors.New("token signature invalid")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMissingSubject = errors.New("token has no subject claim")
)

// ErrMisconfigured is returned by constructors when the auth environment
// is invalid. It is a startup failure, never a request-time one.
var ErrMisconfigured = errors.New("auth config invalid")
