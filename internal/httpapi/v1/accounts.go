package v1

import (
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// listAccounts handles GET /v1/accounts.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accs, err := s.svc.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponses(accs))
}

// getAccount handles GET /v1/accounts/{id} (lookup by record identity).
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	acc, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// getBalance handles GET /v1/accounts/{agency}/{account}/balance.
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	agency, number, ok := agencyAccountParams(w, r)
	if !ok {
		return
	}
	balance, err := s.svc.Balance(r.Context(), agency, number)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, balanceResponse{BalanceMinor: balance, Balance: minorToDisplay(balance)})
}

// removeAccount handles DELETE /v1/accounts/{agency}/{account}.
// The response carries the post-deletion count of accounts in the agency.
func (s *Server) removeAccount(w http.ResponseWriter, r *http.Request) {
	agency, number, ok := agencyAccountParams(w, r)
	if !ok {
		return
	}
	remaining, err := s.svc.RemoveAccount(r.Context(), agency, number)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, removeResponse{Accounts: remaining})
}

// agencyAccountParams parses the {agency}/{account} path pair. On failure it
// writes a 400 and returns ok=false.
func agencyAccountParams(w http.ResponseWriter, r *http.Request) (agency, number int, ok bool) {
	agency, err := strconv.Atoi(chi.URLParam(r, "agency"))
	if err != nil || agency <= 0 {
		badRequest(w, "invalid agency")
		return 0, 0, false
	}
	number, err = strconv.Atoi(chi.URLParam(r, "account"))
	if err != nil || number <= 0 {
		badRequest(w, "invalid account")
		return 0, 0, false
	}
	return agency, number, true
}
