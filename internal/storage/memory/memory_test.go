package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/errs"
)

func seed(s *Store, agency, number int, name string, balance int64) bank.Account {
	a := bank.Account{ID: uuid.New(), Agency: agency, Number: number, Name: name, BalanceMinor: balance}
	s.SeedAccount(a)
	return a
}

func TestUpdateBalance_RejectsNegative(t *testing.T) {
	s := New()
	a := seed(s, 1, 100, "Maria", 50)

	if _, err := s.UpdateBalance(context.Background(), a.ID, -1); !errors.Is(err, errs.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	// balance untouched after the rejected write
	got, ok, _ := s.AccountByID(context.Background(), a.ID)
	if !ok || got.BalanceMinor != 50 {
		t.Fatalf("balance changed after rejected write: %+v", got)
	}

	if _, err := s.UpdateBalance(context.Background(), uuid.New(), 10); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindAccount_AbsenceIsNotAnError(t *testing.T) {
	s := New()
	_, ok, err := s.FindAccount(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected absence")
	}
}

func TestListAccounts_FilterSortLimit(t *testing.T) {
	s := New()
	seed(s, 1, 100, "Carla", 300)
	seed(s, 1, 200, "Bruno", 100)
	seed(s, 2, 300, "Alice", 300)

	agency := 1
	got, err := s.ListAccounts(context.Background(), bank.ListQuery{Agency: &agency})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 in agency 1, got %d", len(got))
	}

	balance := int64(300)
	got, _ = s.ListAccounts(context.Background(), bank.ListQuery{Agency: &agency, BalanceMinor: &balance})
	if len(got) != 1 || got[0].Name != "Carla" {
		t.Fatalf("expected Carla, got %+v", got)
	}

	got, _ = s.ListAccounts(context.Background(), bank.ListQuery{Sort: bank.SortBalanceDesc, Limit: 2})
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Carla" {
		t.Fatalf("unexpected desc order: %+v", got)
	}

	got, _ = s.ListAccounts(context.Background(), bank.ListQuery{Sort: bank.SortBalanceAsc, Limit: 1})
	if len(got) != 1 || got[0].Name != "Bruno" {
		t.Fatalf("unexpected asc head: %+v", got)
	}
}

func TestAggregates(t *testing.T) {
	s := New()
	seed(s, 1, 100, "Maria", 100)
	seed(s, 1, 200, "Jose", 200)
	seed(s, 2, 300, "Ana", 900)

	avg, ok, err := s.AverageBalance(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("average: ok=%v err=%v", ok, err)
	}
	if avg != 150 {
		t.Fatalf("expected 150, got %v", avg)
	}
	if _, ok, _ := s.AverageBalance(context.Background(), 42); ok {
		t.Fatal("expected no result for empty agency")
	}

	maxes, err := s.MaxBalancePerAgency(context.Background())
	if err != nil {
		t.Fatalf("maxes: %v", err)
	}
	if len(maxes) != 2 || maxes[0].Agency != 1 || maxes[0].BalanceMinor != 200 || maxes[1].BalanceMinor != 900 {
		t.Fatalf("unexpected maxes: %+v", maxes)
	}
}

func TestDeleteAccount(t *testing.T) {
	s := New()
	a := seed(s, 1, 100, "Maria", 100)

	got, ok, err := s.DeleteAccount(context.Background(), 1, 100)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if got.ID != a.ID {
		t.Fatalf("unexpected deleted account: %+v", got)
	}
	if _, ok, _ := s.DeleteAccount(context.Background(), 1, 100); ok {
		t.Fatal("expected absence on second delete")
	}
}
