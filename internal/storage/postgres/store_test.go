package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/errs"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open for init: %v", err)
	}
	defer s.Close()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
}

func truncateAll(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open for truncate: %v", err)
	}
	defer s.Close()
	_, _ = s.pool.Exec(ctx, `truncate table accounts`)
}

func TestStore_AccountLifecycle(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	truncateAll(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	accs, err := s.SeedDev(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(accs) < 3 {
		t.Fatalf("unexpected seed: %+v", accs)
	}

	// Lookup by (agency, account) and by identity
	got, ok, err := s.FindAccount(ctx, accs[0].Agency, accs[0].Number)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if got.ID != accs[0].ID {
		t.Fatalf("unexpected account: %+v", got)
	}
	if _, ok, err := s.FindAccount(ctx, 77, 7777); err != nil || ok {
		t.Fatalf("expected absence without error, ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.AccountByID(ctx, got.ID); err != nil || !ok {
		t.Fatalf("by id: ok=%v err=%v", ok, err)
	}

	// Balance write and constraint rejection
	upd, err := s.UpdateBalance(ctx, got.ID, got.BalanceMinor+100)
	if err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if upd.BalanceMinor != got.BalanceMinor+100 {
		t.Fatalf("expected %d, got %d", got.BalanceMinor+100, upd.BalanceMinor)
	}
	if _, err := s.UpdateBalance(ctx, got.ID, -1); !errors.Is(err, errs.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	if _, err := s.UpdateBalance(ctx, uuid.New(), 10); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Agency rewrite
	moved, err := s.UpdateAgency(ctx, got.ID, bank.PrivateAgency)
	if err != nil {
		t.Fatalf("update agency: %v", err)
	}
	if moved.Agency != bank.PrivateAgency {
		t.Fatalf("expected agency %d, got %d", bank.PrivateAgency, moved.Agency)
	}

	// Aggregates
	if _, ok, err := s.AverageBalance(ctx, 424242); err != nil || ok {
		t.Fatalf("expected empty-agency average to be absent, ok=%v err=%v", ok, err)
	}
	maxes, err := s.MaxBalancePerAgency(ctx)
	if err != nil || len(maxes) == 0 {
		t.Fatalf("maxes: len=%d err=%v", len(maxes), err)
	}

	// Sorted listing
	list, err := s.ListAccounts(ctx, bank.ListQuery{Sort: bank.SortBalanceDesc, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].BalanceMinor < list[1].BalanceMinor {
		t.Fatalf("unexpected ordering: %+v", list)
	}

	// Deletion
	if _, ok, err := s.DeleteAccount(ctx, accs[1].Agency, accs[1].Number); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.DeleteAccount(ctx, accs[1].Agency, accs[1].Number); ok {
		t.Fatal("expected absence on second delete")
	}
}
