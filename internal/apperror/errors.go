// Package apperror defines the typed errors returned by services and mapped to HTTP responses.
package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// Error codes shared across resource modules.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInactiveAccount    = "INACTIVE_ACCOUNT"
	CodeInvalidResetToken  = "INVALID_RESET_TOKEN"
	CodeResetTokenExpired  = "RESET_TOKEN_EXPIRED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// MessageInternal is returned for every unclassified failure.
const MessageInternal = "An internal error occured."

// Error is a classified failure carrying everything needed to render an error response.
type Error struct {
	Code    string
	Status  int
	Message string
	Errors  []string
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Errors, "; "))
}

// Is matches errors by code so callers can compare against the constructors below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an error with the given code, status and message.
func New(code string, status int, message string, errs ...string) *Error {
	return &Error{Code: code, Status: status, Message: message, Errors: errs}
}

// Unauthenticated reports a missing, invalid or expired credential.
func Unauthenticated() *Error {
	return New(CodeUnauthenticated, http.StatusUnauthorized, "You must be signed in to perform this action.")
}

// Unauthorized reports a caller lacking the permission a route requires.
func Unauthorized() *Error {
	return New(CodeUnauthorized, http.StatusForbidden, "You are not authorized to perform this action.")
}

// InvalidCredentials reports a failed login.
func InvalidCredentials() *Error {
	return New(CodeInvalidCredentials, http.StatusBadRequest, "Invalid email or password.")
}

// InactiveAccount reports a login for an account that is not active.
func InactiveAccount() *Error {
	return New(CodeInactiveAccount, http.StatusUnauthorized, "This account is not active.")
}

// InvalidResetToken reports an unknown or already used reset/invite token.
func InvalidResetToken() *Error {
	return New(CodeInvalidResetToken, http.StatusBadRequest, "The token is invalid.")
}

// ResetTokenExpired reports a reset/invite token past its expiry.
func ResetTokenExpired() *Error {
	return New(CodeResetTokenExpired, http.StatusBadRequest, "The token has expired.")
}

// InvalidRequest reports schema validation failures, one entry per failing field.
func InvalidRequest(errs ...string) *Error {
	return New(CodeInvalidRequest, http.StatusBadRequest, "Invalid request.", errs...)
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return New(CodeConflict, http.StatusConflict, message)
}

// RateLimited reports a client exceeding the request window.
func RateLimited() *Error {
	return New(CodeRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later.")
}

// Internal wraps nothing on purpose: internal details never leave the process.
func Internal() *Error {
	return New(CodeInternal, http.StatusInternalServerError, MessageInternal)
}

// NotFound builds the resource specific not found error, e.g. NotFound("therapy service")
// yields THERAPY_SERVICE_NOT_FOUND.
func NotFound(resource string, missing ...string) *Error {
	label := strings.TrimSpace(resource)
	code := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(label)) + "_NOT_FOUND"
	message := fmt.Sprintf("%s not found.", capitalize(label))
	return New(code, http.StatusNotFound, message, missing...)
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// Resource labels used with NotFound.
const (
	ResourceUser           = "user"
	ResourceRole           = "role"
	ResourceSchool         = "school"
	ResourceStudent        = "student"
	ResourceProvider       = "provider"
	ResourceTherapist      = "therapist"
	ResourceTherapyService = "therapy service"
	ResourceReport         = "report"
	ResourceInvoice        = "invoice"
	ResourceDocument       = "document"
	ResourceContract       = "contract"
	ResourceContact        = "contact"
)
