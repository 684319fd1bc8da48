package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrLedgerInconsistency indicates that the balance write and the journal
	// append did not land together. The account needs reconciliation; it must
	// never be reported as a plain validation failure.
	ErrLedgerInconsistency = errors.New("ledger inconsistency: balance and journal out of sync")
)

// TransactionType tags the ledger event that produced a transaction.
type TransactionType string

// Supported transaction types.
const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Interest   TransactionType = "INTEREST"
	Opening    TransactionType = "OPENING"
)

// Sign returns the direction the transaction moves the balance: +1 for
// credits, -1 for withdrawals. Amounts are always stored as positive
// magnitudes; replaying sign*amount over the history reconstructs the balance.
func (t TransactionType) Sign() decimal.Decimal {
	if t == Withdrawal {
		return decimal.NewFromInt(-1)
	}

	return decimal.NewFromInt(1)
}

// Transaction is an append-only ledger entry describing one balance-affecting
// event. It is immutable once created.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // positive magnitude
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerResult is the single value a ledger operation produces: the account
// state after the mutation together with the journal entry that describes it.
// Persisting one without the other is impossible by construction.
type LedgerResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// HasEntry reports whether the result carries a journal entry. Opening an
// account without an initial deposit mutates no balance and journals nothing.
func (r LedgerResult) HasEntry() bool {
	return r.Transaction.Type != ""
}
