package v1

import (
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
)

// averageBalance handles GET /v1/agencies/{agency}/average-balance.
func (s *Server) averageBalance(w http.ResponseWriter, r *http.Request) {
	agency, err := strconv.Atoi(chi.URLParam(r, "agency"))
	if err != nil || agency <= 0 {
		badRequest(w, "invalid agency")
		return
	}
	avg, err := s.svc.AverageBalance(r.Context(), agency)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, averageResponse{Average: avg})
}

// lowestBalances handles GET /v1/accounts/lowest?limit=N.
func (s *Server) lowestBalances(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	accs, err := s.svc.LowestBalances(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponses(accs))
}

// highestBalances handles GET /v1/accounts/highest?limit=N.
func (s *Server) highestBalances(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}
	accs, err := s.svc.HighestBalances(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponses(accs))
}

// migratePrivate handles POST /v1/accounts/migrate-private. The response is
// the full set of accounts in the private agency after migration.
func (s *Server) migratePrivate(w http.ResponseWriter, r *http.Request) {
	accs, err := s.svc.MigrateTopToPrivate(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponses(accs))
}

// limitParam parses the required limit query param. On failure it writes a
// 400 and returns ok=false.
func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		badRequest(w, "limit is required")
		return 0, false
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		badRequest(w, "invalid limit")
		return 0, false
	}
	return limit, true
}
