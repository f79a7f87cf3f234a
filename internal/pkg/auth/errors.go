package auth

import (
	"fmt"
	"net/http"
)

// Error codes returned to clients
const (
	CodeHeaderMissing   = "authorization_header_missing"
	CodeInvalidHeader   = "invalid_header"
	CodeTokenExpired    = "token_expired"
	CodeInvalidClaims   = "invalid_claims"
	CodeUnauthorized    = "unauthorized"
	CodeJWKSUnavailable = "jwks_unavailable"
)

// Error is an authentication or authorization failure. Status is the HTTP
// status the failure is reported with.
type Error struct {
	Code        string
	Description string
	Status      int
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.cause)
	}
	return e.Code + ": " + e.Description
}

func (e *Error) Unwrap() error { return e.cause }

func newError(code, description string, status int) *Error {
	return &Error{Code: code, Description: description, Status: status}
}

func wrapError(code, description string, status int, cause error) *Error {
	return &Error{Code: code, Description: description, Status: status, cause: cause}
}

// Failures raised before any network access
var (
	ErrHeaderMissing = newError(CodeHeaderMissing, "Authorization header is expected.", http.StatusUnauthorized)
	ErrNotBearer     = newError(CodeInvalidHeader, `Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	ErrTokenNotFound = newError(CodeInvalidHeader, "Token not found.", http.StatusUnauthorized)
	ErrTooManyParts  = newError(CodeInvalidHeader, "Authorization header must be bearer token.", http.StatusUnauthorized)
	ErrMissingKeyID  = newError(CodeInvalidHeader, "Authorization malformed.", http.StatusUnauthorized)
)

// Failures raised while resolving keys and verifying the token
var (
	ErrKeyNotFound        = newError(CodeInvalidHeader, "Unable to find the appropriate key.", http.StatusBadRequest)
	ErrExpired            = newError(CodeTokenExpired, "Token expired.", http.StatusUnauthorized)
	ErrIncorrectClaims    = newError(CodeInvalidClaims, "Incorrect claims. Check audience and issuer.", http.StatusUnauthorized)
	ErrUnparsable         = newError(CodeInvalidHeader, "Unable to parse authentication token.", http.StatusBadRequest)
	ErrPermissionsMissing = newError(CodeInvalidClaims, "Permissions not included in JWT.", http.StatusBadRequest)
	ErrPermissionDenied   = newError(CodeUnauthorized, "Permission not found.", http.StatusUnauthorized)
)
