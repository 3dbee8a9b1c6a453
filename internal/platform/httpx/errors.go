// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Services wrap these with context;
// handlers map them onto HTTP status codes via RespondError.
var (
	// ErrNotFound indicates a referenced company, client, employee, item or
	// quotation does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates missing or malformed required fields.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a lost race, such as a failed conditional counter
	// update or a delete blocked by referencing rows.
	ErrConflict = errors.New("conflict")
	// ErrAssembly indicates document construction failed.
	ErrAssembly = errors.New("document assembly failed")
	// ErrDependency indicates an unreachable or timed-out backing service.
	ErrDependency = errors.New("dependency unavailable")
)

// RespondError maps domain errors to RFC7807 problem responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrAssembly):
		Problem(w, http.StatusUnprocessableEntity, "Assembly Failed", err.Error())
	case errors.Is(err, ErrDependency):
		Problem(w, http.StatusBadGateway, "Dependency Unavailable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
