// Package v1 wires the HTTP surface of the bank service.
// It keeps handlers thin, delegating business rules to the service layer.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/bank/internal/service/ledger"
)

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through the service.
type Server struct {
	svc  ledger.Service
	repo ledger.Repo
	log  *slog.Logger
	rt   *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(repo ledger.Repo, writer ledger.Writer, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		svc:  ledger.New(repo, writer),
		repo: repo,
		rt:   r,
		log:  logger,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Accounts (v1)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/lowest", s.lowestBalances)
	s.rt.Get("/v1/accounts/highest", s.highestBalances)
	s.rt.Get("/v1/accounts/{id}", s.getAccount)
	s.rt.Get("/v1/accounts/{agency}/{account}/balance", s.getBalance)
	s.rt.Delete("/v1/accounts/{agency}/{account}", s.removeAccount)
	// Mutations (v1)
	s.rt.With(s.validateDeposit()).Put("/v1/accounts/deposit", s.deposit)
	s.rt.With(s.validateWithdraw()).Put("/v1/accounts/withdraw", s.withdraw)
	s.rt.With(s.validateTransfer()).Put("/v1/accounts/transfer", s.transfer)
	s.rt.Post("/v1/accounts/migrate-private", s.migratePrivate)
	// Agencies (v1)
	s.rt.Get("/v1/agencies/{agency}/average-balance", s.averageBalance)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
