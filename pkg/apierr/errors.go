package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is an externally visible API failure. The Kind discriminates failure
// modes for logging and tests; Status and Message are what the caller sees.
type Error struct {
	Kind    string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Failure kinds. Authentication-class failures all surface as 401; the
// distinct kinds stay visible server-side for diagnostics.
var (
	ErrMissingCredential = &Error{Kind: "missing_credential", Status: http.StatusUnauthorized, Message: "Authentication required"}
	ErrInvalidToken      = &Error{Kind: "invalid_token", Status: http.StatusUnauthorized, Message: "Invalid token"}
	ErrTokenExpired      = &Error{Kind: "token_expired", Status: http.StatusUnauthorized, Message: "Token expired"}

	// ErrIdentityNotFound reuses the invalid-token message externally so a 401
	// never confirms whether an account exists.
	ErrIdentityNotFound = &Error{Kind: "identity_not_found", Status: http.StatusUnauthorized, Message: "Invalid token"}

	ErrInvalidCredentials = &Error{Kind: "invalid_credentials", Status: http.StatusUnauthorized, Message: "Incorrect email or password"}
	ErrEmailTaken         = &Error{Kind: "email_taken", Status: http.StatusBadRequest, Message: "Email already registered"}
	ErrNotFound           = &Error{Kind: "not_found", Status: http.StatusNotFound, Message: "Resource not found"}
	ErrForbidden          = &Error{Kind: "forbidden", Status: http.StatusForbidden, Message: "Not authorized to access this resource"}
	ErrBadRequest         = &Error{Kind: "bad_request", Status: http.StatusBadRequest, Message: "Malformed request body"}
	ErrInternal           = &Error{Kind: "internal_error", Status: http.StatusInternalServerError, Message: "An unexpected error occurred. Please try again later."}
)

// AsError unwraps err to an *Error, or returns ErrInternal for anything that
// is not part of the taxonomy. Unknown errors must never leak their text.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorDetail struct {
	Type       string       `json:"type"`
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// Write renders e as the standard JSON error envelope.
func Write(w http.ResponseWriter, e *Error) {
	typ := "http_error"
	if e.Status == http.StatusInternalServerError {
		typ = "internal_error"
	}
	writeBody(w, e.Status, errorDetail{
		Type:       typ,
		StatusCode: e.Status,
		Message:    e.Message,
	})
}

// WriteValidation renders a 422 with per-field details.
func WriteValidation(w http.ResponseWriter, details []FieldError) {
	writeBody(w, http.StatusUnprocessableEntity, errorDetail{
		Type:       "validation_error",
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Validation failed",
		Details:    details,
	})
}

func writeBody(w http.ResponseWriter, status int, detail errorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: detail})
}
