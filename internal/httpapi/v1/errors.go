package v1

import (
	"errors"
	"net/http"

	"github.com/tinoosan/bank/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "account_not_found", "account_not_found")
}
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeServiceError maps sentinel service errors onto distinct status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrInsufficientFunds):
		unprocessable(w, "insufficient_funds", "insufficient_funds")
	case errors.Is(err, errs.ErrNoAccounts):
		writeErr(w, http.StatusNotFound, "no_accounts_found", "no_accounts_found")
	case errors.Is(err, errs.ErrConstraint):
		unprocessable(w, "constraint_violation", "constraint_violation")
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, "invalid")
	default:
		s.log.Error("operation failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "internal_error", "")
	}
}
