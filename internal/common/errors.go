package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("not authenticated")
	ErrBadRequest   = errors.New("bad request")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource conflict") // e.g. email already registered

	// ErrInvalidCredentials is shared by the unknown-email and wrong-password
	// login paths so both serialize to the exact same response.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUpstream       = errors.New("upstream fetch failed")   // scrape target unreachable or non-2xx
	ErrGeneration     = errors.New("post generation failed")  // generation call or response parsing failed
	ErrConfiguration  = errors.New("server is misconfigured") // required secret/key absent
	ErrInternalServer = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
//
// Conflicts and invalid credentials map to 400 rather than 409/401: 401 is
// reserved for missing or invalid sessions, and duplicate-email registration
// is treated as a plain bad request.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation),
		errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUpstream):
		return http.StatusBadRequest
	case errors.Is(err, ErrGeneration), errors.Is(err, ErrConfiguration):
		return http.StatusInternalServerError
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
