package bank

import (
	"github.com/google/uuid"
	"github.com/govalues/money"
)

// Fee and tier constants, in minor units (centavos).
const (
	// WithdrawFee is charged on every withdrawal in addition to the amount.
	WithdrawFee int64 = 1
	// TransferFee is charged on transfers between different agencies.
	TransferFee int64 = 8
	// PrivateAgency is the reserved agency for top-balance accounts.
	PrivateAgency = 99
)

// Currency is the single currency all balances are denominated in.
const Currency = "BRL"

// Account represents a bank account held at an agency.
type Account struct {
	// ID is the stable record identity, distinct from (Agency, Number).
	ID uuid.UUID
	// Agency identifies the branch holding the account.
	Agency int
	// Number is the account number, unique within an agency.
	Number int
	Name   string
	// BalanceMinor is the balance in minor units. Never negative at rest;
	// the stores reject any write that would violate that.
	BalanceMinor int64
}

// Amount returns the balance as a money.Amount for display.
func (a Account) Amount() money.Amount {
	amt, _ := money.NewAmountFromMinorUnits(Currency, a.BalanceMinor)
	return amt
}

// AgencyMax pairs an agency with the highest balance held in it.
type AgencyMax struct {
	Agency       int
	BalanceMinor int64
}

// SortOrder selects the ordering applied by ListAccounts.
type SortOrder int

const (
	// SortNone leaves the order unspecified.
	SortNone SortOrder = iota
	// SortBalanceAsc orders by balance ascending; ties are arbitrary.
	SortBalanceAsc
	// SortBalanceDesc orders by balance descending, ties broken by name ascending.
	SortBalanceDesc
)

// ListQuery narrows and orders a ListAccounts scan. Nil filters match everything.
type ListQuery struct {
	Agency       *int
	BalanceMinor *int64
	Sort         SortOrder
	// Limit truncates the result when > 0.
	Limit int
}
