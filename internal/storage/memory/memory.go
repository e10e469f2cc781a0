package memory

// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while allowing us to plug in a real DB later.
import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/errs"
)

// Store is an in-memory implementation of the repo+writer used by the service.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]bank.Account
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{accounts: make(map[uuid.UUID]bank.Account)}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedAccount(a bank.Account) { s.mu.Lock(); s.accounts[a.ID] = a; s.mu.Unlock() }
func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = map[uuid.UUID]bank.Account{}
	s.mu.Unlock()
}

// FindAccount returns the account at (agency, number). Absence is not an error.
func (s *Store) FindAccount(_ context.Context, agency, number int) (bank.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Agency == agency && a.Number == number {
			return a, true, nil
		}
	}
	return bank.Account{}, false, nil
}

// AccountByID returns the account with the given identity.
func (s *Store) AccountByID(_ context.Context, id uuid.UUID) (bank.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	return a, ok, nil
}

// ListAccounts returns accounts matching q, ordered and truncated per q.
func (s *Store) ListAccounts(_ context.Context, q bank.ListQuery) ([]bank.Account, error) {
	s.mu.RLock()
	out := make([]bank.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if q.Agency != nil && a.Agency != *q.Agency {
			continue
		}
		if q.BalanceMinor != nil && a.BalanceMinor != *q.BalanceMinor {
			continue
		}
		out = append(out, a)
	}
	s.mu.RUnlock()

	switch q.Sort {
	case bank.SortBalanceAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].BalanceMinor < out[j].BalanceMinor })
	case bank.SortBalanceDesc:
		sort.Slice(out, func(i, j int) bool {
			if out[i].BalanceMinor == out[j].BalanceMinor {
				return out[i].Name < out[j].Name
			}
			return out[i].BalanceMinor > out[j].BalanceMinor
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// AverageBalance computes the arithmetic mean of balances in an agency.
func (s *Store) AverageBalance(_ context.Context, agency int) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum int64
	var n int
	for _, a := range s.accounts {
		if a.Agency == agency {
			sum += a.BalanceMinor
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(n), true, nil
}

// MaxBalancePerAgency returns the highest balance held in each agency,
// ordered by agency for deterministic output.
func (s *Store) MaxBalancePerAgency(_ context.Context) ([]bank.AgencyMax, error) {
	s.mu.RLock()
	maxes := make(map[int]int64)
	for _, a := range s.accounts {
		if cur, ok := maxes[a.Agency]; !ok || a.BalanceMinor > cur {
			maxes[a.Agency] = a.BalanceMinor
		}
	}
	s.mu.RUnlock()

	out := make([]bank.AgencyMax, 0, len(maxes))
	for agency, balance := range maxes {
		out = append(out, bank.AgencyMax{Agency: agency, BalanceMinor: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Agency < out[j].Agency })
	return out, nil
}

// UpdateBalance persists a new balance for the account identity. Writes that
// would leave the balance negative fail with errs.ErrConstraint.
func (s *Store) UpdateBalance(_ context.Context, id uuid.UUID, newBalanceMinor int64) (bank.Account, error) {
	if newBalanceMinor < 0 {
		return bank.Account{}, errs.ErrConstraint
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	a.BalanceMinor = newBalanceMinor
	s.accounts[id] = a
	return a, nil
}

// UpdateAgency rewrites the agency field of the account identity.
func (s *Store) UpdateAgency(_ context.Context, id uuid.UUID, newAgency int) (bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	a.Agency = newAgency
	s.accounts[id] = a
	return a, nil
}

// DeleteAccount removes the account at (agency, number) and returns it.
func (s *Store) DeleteAccount(_ context.Context, agency, number int) (bank.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if a.Agency == agency && a.Number == number {
			delete(s.accounts, id)
			return a, true, nil
		}
	}
	return bank.Account{}, false, nil
}
