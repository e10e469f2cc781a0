// Package ledger implements the account-ledger rules: deposits, withdrawals
// and transfers with their fee checks, balance and ranking queries, and the
// migration of top-balance accounts into the private agency.
package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/errs"
)

// Repo defines read operations needed by the service. Lookups report absence
// through the bool result, not through an error.
type Repo interface {
	FindAccount(ctx context.Context, agency, number int) (bank.Account, bool, error)
	AccountByID(ctx context.Context, id uuid.UUID) (bank.Account, bool, error)
	ListAccounts(ctx context.Context, q bank.ListQuery) ([]bank.Account, error)
	// AverageBalance returns the arithmetic mean of balances in an agency,
	// false when the agency has no accounts.
	AverageBalance(ctx context.Context, agency int) (float64, bool, error)
	// MaxBalancePerAgency returns the highest balance held in each agency.
	MaxBalancePerAgency(ctx context.Context) ([]bank.AgencyMax, error)
}

// Writer defines write operations needed by the service. UpdateBalance fails
// with errs.ErrConstraint when the new balance is negative.
type Writer interface {
	UpdateBalance(ctx context.Context, id uuid.UUID, newBalanceMinor int64) (bank.Account, error)
	UpdateAgency(ctx context.Context, id uuid.UUID, newAgency int) (bank.Account, error)
	DeleteAccount(ctx context.Context, agency, number int) (bank.Account, bool, error)
}

// Service exposes the ledger operations consumed by the HTTP surface.
type Service interface {
	List(ctx context.Context) ([]bank.Account, error)
	Get(ctx context.Context, id uuid.UUID) (bank.Account, error)
	Deposit(ctx context.Context, agency, number int, amountMinor int64) (bank.Account, error)
	Withdraw(ctx context.Context, agency, number int, amountMinor int64) (bank.Account, error)
	Balance(ctx context.Context, agency, number int) (int64, error)
	RemoveAccount(ctx context.Context, agency, number int) (int, error)
	Transfer(ctx context.Context, fromAgency, fromNumber, toAgency, toNumber int, valueMinor int64) (bank.Account, error)
	AverageBalance(ctx context.Context, agency int) (float64, error)
	LowestBalances(ctx context.Context, limit int) ([]bank.Account, error)
	HighestBalances(ctx context.Context, limit int) ([]bank.Account, error)
	MigrateTopToPrivate(ctx context.Context) ([]bank.Account, error)
}

type service struct {
	repo   Repo
	writer Writer
}

// New constructs the ledger service over a store.
func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) List(ctx context.Context) ([]bank.Account, error) {
	return s.repo.ListAccounts(ctx, bank.ListQuery{})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (bank.Account, error) {
	acc, ok, err := s.repo.AccountByID(ctx, id)
	if err != nil {
		return bank.Account{}, err
	}
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	return acc, nil
}

// Deposit credits amountMinor to the account. The sign of the amount is a
// transport-boundary concern; the service applies whatever it is handed.
func (s *service) Deposit(ctx context.Context, agency, number int, amountMinor int64) (bank.Account, error) {
	acc, ok, err := s.repo.FindAccount(ctx, agency, number)
	if err != nil {
		return bank.Account{}, err
	}
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	return s.writer.UpdateBalance(ctx, acc.ID, acc.BalanceMinor+amountMinor)
}

// Withdraw debits amountMinor plus the flat WithdrawFee.
func (s *service) Withdraw(ctx context.Context, agency, number int, amountMinor int64) (bank.Account, error) {
	acc, ok, err := s.repo.FindAccount(ctx, agency, number)
	if err != nil {
		return bank.Account{}, err
	}
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	required := amountMinor + bank.WithdrawFee
	if acc.BalanceMinor < required {
		return bank.Account{}, errs.ErrInsufficientFunds
	}
	return s.writer.UpdateBalance(ctx, acc.ID, acc.BalanceMinor-required)
}

func (s *service) Balance(ctx context.Context, agency, number int) (int64, error) {
	acc, ok, err := s.repo.FindAccount(ctx, agency, number)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.ErrNotFound
	}
	return acc.BalanceMinor, nil
}

// RemoveAccount deletes the account and returns how many accounts remain in
// its agency. The count is a post-deletion re-count, not a decrement.
func (s *service) RemoveAccount(ctx context.Context, agency, number int) (int, error) {
	_, ok, err := s.writer.DeleteAccount(ctx, agency, number)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.ErrNotFound
	}
	remaining, err := s.repo.ListAccounts(ctx, bank.ListQuery{Agency: &agency})
	if err != nil {
		return 0, err
	}
	return len(remaining), nil
}

// Transfer moves valueMinor between two accounts. Cross-agency transfers are
// charged TransferFee on top of the value; the fee is debited from the origin
// and not credited anywhere. The two balance writes are issued independently,
// with no atomic two-record commit: a failure between them leaves the value
// debited but not credited. Callers see the updated origin account.
func (s *service) Transfer(ctx context.Context, fromAgency, fromNumber, toAgency, toNumber int, valueMinor int64) (bank.Account, error) {
	origin, ok, err := s.repo.FindAccount(ctx, fromAgency, fromNumber)
	if err != nil {
		return bank.Account{}, err
	}
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	dest, ok, err := s.repo.FindAccount(ctx, toAgency, toNumber)
	if err != nil {
		return bank.Account{}, err
	}
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}

	var fee int64
	if fromAgency != toAgency {
		fee = bank.TransferFee
	}
	if origin.BalanceMinor < valueMinor+fee {
		return bank.Account{}, errs.ErrInsufficientFunds
	}

	updatedOrigin, err := s.writer.UpdateBalance(ctx, origin.ID, origin.BalanceMinor-valueMinor-fee)
	if err != nil {
		return bank.Account{}, err
	}
	if _, err := s.writer.UpdateBalance(ctx, dest.ID, dest.BalanceMinor+valueMinor); err != nil {
		return bank.Account{}, err
	}
	return updatedOrigin, nil
}

func (s *service) AverageBalance(ctx context.Context, agency int) (float64, error) {
	avg, ok, err := s.repo.AverageBalance(ctx, agency)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.ErrNoAccounts
	}
	return avg, nil
}

func (s *service) LowestBalances(ctx context.Context, limit int) ([]bank.Account, error) {
	return s.repo.ListAccounts(ctx, bank.ListQuery{Sort: bank.SortBalanceAsc, Limit: limit})
}

func (s *service) HighestBalances(ctx context.Context, limit int) ([]bank.Account, error) {
	return s.repo.ListAccounts(ctx, bank.ListQuery{Sort: bank.SortBalanceDesc, Limit: limit})
}

// MigrateTopToPrivate moves each agency's highest-balance account(s) into the
// private agency. The re-lookup is by (agency, balance), so every account
// tying the agency maximum moves, not just one. Returns the accounts sitting
// in the private agency after the migration.
func (s *service) MigrateTopToPrivate(ctx context.Context) ([]bank.Account, error) {
	maxes, err := s.repo.MaxBalancePerAgency(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range maxes {
		if m.Agency == bank.PrivateAgency {
			// already private; rewriting the agency would be a no-op
			continue
		}
		matched, err := s.repo.ListAccounts(ctx, bank.ListQuery{Agency: &m.Agency, BalanceMinor: &m.BalanceMinor})
		if err != nil {
			return nil, err
		}
		for _, acc := range matched {
			if _, err := s.writer.UpdateAgency(ctx, acc.ID, bank.PrivateAgency); err != nil {
				return nil, err
			}
		}
	}
	private := bank.PrivateAgency
	return s.repo.ListAccounts(ctx, bank.ListQuery{Agency: &private})
}
