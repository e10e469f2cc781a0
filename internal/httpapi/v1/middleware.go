// Validation middleware for the mutating endpoints. Each middleware decodes
// the body into a typed request struct, rejects malformed or missing fields,
// and stores the validated struct in the request context for the handler.
package v1

import (
	"context"
	"encoding/json"
	"net/http"
)

type ctxKey string

const ctxKeyDeposit ctxKey = "validatedDeposit"
const ctxKeyWithdraw ctxKey = "validatedWithdraw"
const ctxKeyTransfer ctxKey = "validatedTransfer"

// validateDeposit parses and validates PUT /accounts/deposit.
func (s *Server) validateDeposit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req depositRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				toJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
				return
			}
			if req.Agency <= 0 || req.Account <= 0 {
				badRequest(w, "agency and account are required")
				return
			}
			if req.AmountMinor <= 0 {
				badRequest(w, "amount_minor must be > 0")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyDeposit, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateWithdraw parses and validates PUT /accounts/withdraw.
func (s *Server) validateWithdraw() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req withdrawRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				toJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
				return
			}
			if req.Agency <= 0 || req.Account <= 0 {
				badRequest(w, "agency and account are required")
				return
			}
			if req.AmountMinor <= 0 {
				badRequest(w, "amount_minor must be > 0")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyWithdraw, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateTransfer parses and validates PUT /accounts/transfer.
func (s *Server) validateTransfer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req transferRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				toJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
				return
			}
			if req.FromAgency <= 0 || req.FromAccount <= 0 || req.ToAgency <= 0 || req.ToAccount <= 0 {
				badRequest(w, "from and to agency/account are required")
				return
			}
			if req.ValueMinor <= 0 {
				badRequest(w, "value_minor must be > 0")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyTransfer, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
