package postgres

import (
	"github.com/tinoosan/bank/internal/service/ledger"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ ledger.Repo   = (*Store)(nil)
	_ ledger.Writer = (*Store)(nil)
)
