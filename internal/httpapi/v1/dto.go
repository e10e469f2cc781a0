package v1

import (
	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tinoosan/bank/internal/bank"
)

// minorToDisplay renders an amount of minor units as a display string.
func minorToDisplay(minor int64) string {
	amt, _ := money.NewAmountFromMinorUnits(bank.Currency, minor)
	return amt.String()
}

// depositRequest and withdrawRequest carry the same fields but are kept
// separate so each operation validates its own payload.
type depositRequest struct {
	Agency      int   `json:"agency"`
	Account     int   `json:"account"`
	AmountMinor int64 `json:"amount_minor"`
}

type withdrawRequest struct {
	Agency      int   `json:"agency"`
	Account     int   `json:"account"`
	AmountMinor int64 `json:"amount_minor"`
}

type transferRequest struct {
	FromAgency  int   `json:"from_agency"`
	FromAccount int   `json:"from_account"`
	ToAgency    int   `json:"to_agency"`
	ToAccount   int   `json:"to_account"`
	ValueMinor  int64 `json:"value_minor"`
}

type accountResponse struct {
	ID           uuid.UUID `json:"id"`
	Agency       int       `json:"agency"`
	Account      int       `json:"account"`
	Name         string    `json:"name"`
	BalanceMinor int64     `json:"balance_minor"`
	Balance      string    `json:"balance"`
}

func toAccountResponse(a bank.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Agency:       a.Agency,
		Account:      a.Number,
		Name:         a.Name,
		BalanceMinor: a.BalanceMinor,
		Balance:      a.Amount().String(),
	}
}

func toAccountResponses(accs []bank.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, toAccountResponse(a))
	}
	return out
}

type balanceResponse struct {
	BalanceMinor int64  `json:"balance_minor"`
	Balance      string `json:"balance"`
}

// removeResponse reports how many accounts remain in the agency after deletion.
type removeResponse struct {
	Accounts int `json:"accounts"`
}

// averageResponse carries the mean balance of an agency in minor units.
type averageResponse struct {
	Average float64 `json:"average"`
}
