package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repo and writer interfaces used by the ledger service.
//
// It is intentionally small and explicit. Migrations that create the expected
// schema live under db/migrations. This package focuses on mapping between the
// domain entity and SQL rows and running the necessary statements.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/errs"
)

// checkViolation is the postgres error code raised when the balance_minor
// check constraint rejects a negative write.
const checkViolation = "23514"

// Store holds a pgx connection pool and implements the read/write interfaces
// used by the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// SeedDev inserts a handful of accounts across two agencies for quick local
// testing. It is idempotent per run due to fresh UUIDs.
func (s *Store) SeedDev(ctx context.Context) ([]bank.Account, error) {
	accs := []bank.Account{
		{ID: uuid.New(), Agency: 1, Number: 1001, Name: "Maria", BalanceMinor: 10000},
		{ID: uuid.New(), Agency: 1, Number: 1002, Name: "Jose", BalanceMinor: 2500},
		{ID: uuid.New(), Agency: 2, Number: 2001, Name: "Ana", BalanceMinor: 7300},
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, a := range accs {
		if _, err := tx.Exec(ctx, `
			insert into accounts (id, agency, account, name, balance_minor)
			values ($1,$2,$3,$4,$5)
		`, a.ID, a.Agency, a.Number, a.Name, a.BalanceMinor); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return accs, nil
}

// --- Reads ---

// FindAccount returns the account at (agency, number). Absence is not an error.
func (s *Store) FindAccount(ctx context.Context, agency, number int) (bank.Account, bool, error) {
	var a bank.Account
	err := s.pool.QueryRow(ctx, `
		select id, agency, account, name, balance_minor
		from accounts
		where agency = $1 and account = $2
	`, agency, number).Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, false, nil
	}
	if err != nil {
		return bank.Account{}, false, err
	}
	return a, true, nil
}

// AccountByID fetches a single account by identity.
func (s *Store) AccountByID(ctx context.Context, id uuid.UUID) (bank.Account, bool, error) {
	var a bank.Account
	err := s.pool.QueryRow(ctx, `
		select id, agency, account, name, balance_minor
		from accounts
		where id = $1
	`, id).Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, false, nil
	}
	if err != nil {
		return bank.Account{}, false, err
	}
	return a, true, nil
}

// ListAccounts returns accounts matching q, ordered and truncated per q.
func (s *Store) ListAccounts(ctx context.Context, q bank.ListQuery) ([]bank.Account, error) {
	sql := `select id, agency, account, name, balance_minor from accounts`
	args := make([]any, 0, 3)
	where := ""
	if q.Agency != nil {
		args = append(args, *q.Agency)
		where = fmt.Sprintf(" where agency = $%d", len(args))
	}
	if q.BalanceMinor != nil {
		args = append(args, *q.BalanceMinor)
		if where == "" {
			where = fmt.Sprintf(" where balance_minor = $%d", len(args))
		} else {
			where += fmt.Sprintf(" and balance_minor = $%d", len(args))
		}
	}
	sql += where
	switch q.Sort {
	case bank.SortBalanceAsc:
		sql += " order by balance_minor asc"
	case bank.SortBalanceDesc:
		sql += " order by balance_minor desc, name asc"
	default:
		sql += " order by agency, account"
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" limit $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]bank.Account, 0)
	for rows.Next() {
		var a bank.Account
		if err := rows.Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AverageBalance computes the mean balance of an agency in SQL. avg() over
// zero rows yields NULL, which maps to the "no accounts" result.
func (s *Store) AverageBalance(ctx context.Context, agency int) (float64, bool, error) {
	var avg *float64
	err := s.pool.QueryRow(ctx, `
		select avg(balance_minor)::float8 from accounts where agency = $1
	`, agency).Scan(&avg)
	if err != nil {
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

// MaxBalancePerAgency groups accounts by agency and takes the max balance.
func (s *Store) MaxBalancePerAgency(ctx context.Context) ([]bank.AgencyMax, error) {
	rows, err := s.pool.Query(ctx, `
		select agency, max(balance_minor)
		from accounts
		group by agency
		order by agency
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]bank.AgencyMax, 0)
	for rows.Next() {
		var m bank.AgencyMax
		if err := rows.Scan(&m.Agency, &m.BalanceMinor); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- Writes ---

// UpdateBalance persists a new balance for the account identity. The schema's
// check constraint rejects negative balances; that rejection surfaces as
// errs.ErrConstraint.
func (s *Store) UpdateBalance(ctx context.Context, id uuid.UUID, newBalanceMinor int64) (bank.Account, error) {
	var a bank.Account
	err := s.pool.QueryRow(ctx, `
		update accounts
		set balance_minor = $1
		where id = $2
		returning id, agency, account, name, balance_minor
	`, newBalanceMinor, id).Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return bank.Account{}, errs.ErrConstraint
	}
	if err != nil {
		return bank.Account{}, err
	}
	return a, nil
}

// UpdateAgency rewrites the agency field of the account identity.
func (s *Store) UpdateAgency(ctx context.Context, id uuid.UUID, newAgency int) (bank.Account, error) {
	var a bank.Account
	err := s.pool.QueryRow(ctx, `
		update accounts
		set agency = $1
		where id = $2
		returning id, agency, account, name, balance_minor
	`, newAgency, id).Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return bank.Account{}, err
	}
	return a, nil
}

// DeleteAccount removes the account at (agency, number) and returns it.
func (s *Store) DeleteAccount(ctx context.Context, agency, number int) (bank.Account, bool, error) {
	var a bank.Account
	err := s.pool.QueryRow(ctx, `
		delete from accounts
		where agency = $1 and account = $2
		returning id, agency, account, name, balance_minor
	`, agency, number).Scan(&a.ID, &a.Agency, &a.Number, &a.Name, &a.BalanceMinor)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, false, nil
	}
	if err != nil {
		return bank.Account{}, false, err
	}
	return a, true, nil
}
