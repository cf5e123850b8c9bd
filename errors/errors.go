package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with an HTTP status code attached.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a 400 error with a request-specific message.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Error taxonomy. Services return these sentinels (or Validation errors);
// controllers map them to responses via Respond.
var (
	// Auth guard: missing credential is distinct from a credential that
	// fails verification.
	ErrMissingCredential = New(http.StatusUnauthorized, "Authorization token missing or invalid", nil)
	ErrInvalidCredential = New(http.StatusForbidden, "Invalid or expired token", nil)

	// Login failure is deliberately generic: the response never reveals
	// whether the username exists.
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)

	ErrDuplicateUsername = New(http.StatusBadRequest, "Username already exists", nil)

	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
	ErrCartNotFound    = New(http.StatusNotFound, "Cart not found", nil)
	ErrItemNotFound    = New(http.StatusNotFound, "Product not in cart", nil)

	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Respond writes err as a JSON error response. Unknown errors are surfaced
// uniformly as 500 with a generic message; internal details never reach the
// client.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !stderrors.As(err, &appErr) {
		appErr = ErrInternalServer
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
