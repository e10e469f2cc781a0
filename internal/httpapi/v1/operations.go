package v1

import "net/http"

// deposit handles PUT /v1/accounts/deposit.
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyDeposit).(depositRequest)
	if !ok {
		badRequest(w, "missing validated request")
		return
	}
	acc, err := s.svc.Deposit(r.Context(), req.Agency, req.Account, req.AmountMinor)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// withdraw handles PUT /v1/accounts/withdraw. The flat withdrawal fee is
// charged on top of the requested amount.
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyWithdraw).(withdrawRequest)
	if !ok {
		badRequest(w, "missing validated request")
		return
	}
	acc, err := s.svc.Withdraw(r.Context(), req.Agency, req.Account, req.AmountMinor)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// transfer handles PUT /v1/accounts/transfer and responds with the updated
// origin account.
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyTransfer).(transferRequest)
	if !ok {
		badRequest(w, "missing validated request")
		return
	}
	origin, err := s.svc.Transfer(r.Context(), req.FromAgency, req.FromAccount, req.ToAgency, req.ToAccount, req.ValueMinor)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(origin))
}
