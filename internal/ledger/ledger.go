// Package ledger implements the validate-mutate-journal protocol shared by
// every balance-affecting operation. All functions are pure: they take an
// account value, return the mutated copy paired with the journal entry that
// describes the mutation, and never touch the input on failure. Persistence
// and logging belong to the callers.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltsbank/volts-bank/internal/domain"
)

// Default journal descriptions.
const (
	DescOpening    = "Account opening deposit"
	DescDeposit    = "Cash deposit"
	DescWithdrawal = "Cash withdrawal"
)

// Open validates the construction-time policy for the account type and
// applies the initial deposit. Investment accounts require the minimum
// opening balance; cheque accounts require an employer name. A positive
// initial deposit is journaled as an OPENING entry, a zero one journals
// nothing.
func Open(arg domain.OpenAccountParams, number string, now time.Time) (domain.LedgerResult, error) {
	if !arg.Type.Valid() {
		return domain.LedgerResult{}, domain.ErrInvalidAccountType
	}

	if arg.InitialDeposit.IsNegative() {
		return domain.LedgerResult{}, domain.ErrNonPositiveAmount
	}

	switch arg.Type {
	case domain.Investment:
		if arg.InitialDeposit.LessThan(domain.MinimumOpeningBalance) {
			return domain.LedgerResult{}, domain.ErrBelowMinimumOpeningBalance
		}
	case domain.Cheque:
		if arg.EmployerName == "" {
			return domain.LedgerResult{}, domain.ErrEmployerNameRequired
		}
	}

	account := domain.Account{
		Number:          number,
		CustomerID:      arg.CustomerID,
		Type:            arg.Type,
		Balance:         decimal.Zero,
		AccruedInterest: decimal.Zero,
		Branch:          arg.Branch,
		OpenedAt:        now,
	}

	if arg.Type == domain.Cheque {
		account.EmployerName = arg.EmployerName
		account.EmployerAddress = arg.EmployerAddress
	}

	if arg.InitialDeposit.IsZero() {
		return domain.LedgerResult{Account: account}, nil
	}

	account.Balance = arg.InitialDeposit

	return domain.LedgerResult{
		Account:     account,
		Transaction: journal(account, domain.Opening, arg.InitialDeposit, DescOpening, now),
	}, nil
}

// Deposit credits the amount to the account. It is legal for every account
// variant and rejects only non-positive amounts.
func Deposit(account domain.Account, amount decimal.Decimal, description string, now time.Time) (domain.LedgerResult, error) {
	if !amount.IsPositive() {
		return domain.LedgerResult{}, domain.ErrNonPositiveAmount
	}

	if description == "" {
		description = DescDeposit
	}

	account.Balance = account.Balance.Add(amount)

	return domain.LedgerResult{
		Account:     account,
		Transaction: journal(account, domain.Deposit, amount, description, now),
	}, nil
}

// Withdraw debits the amount from the account. The capability check comes
// first: a savings account is rejected before any balance comparison.
func Withdraw(account domain.Account, amount decimal.Decimal, description string, now time.Time) (domain.LedgerResult, error) {
	if !account.Type.SupportsWithdrawal() {
		return domain.LedgerResult{}, domain.ErrWithdrawalNotAllowed
	}

	if !amount.IsPositive() {
		return domain.LedgerResult{}, domain.ErrNonPositiveAmount
	}

	if amount.GreaterThan(account.AvailableBalance()) {
		return domain.LedgerResult{}, domain.ErrInsufficientBalance
	}

	if description == "" {
		description = DescWithdrawal
	}

	account.Balance = account.Balance.Sub(amount)

	return domain.LedgerResult{
		Account:     account,
		Transaction: journal(account, domain.Withdrawal, amount, description, now),
	}, nil
}

// AccrueInterest pays one period of interest into the account: the amount is
// balance times the fixed rate of the account type, added to the lifetime
// accrued interest counter and then to the balance. Consecutive calls
// compound; rate limiting belongs to the scheduling collaborator. A zero
// balance earns nothing and journals nothing, keeping zero-amount entries
// out of the history.
func AccrueInterest(account domain.Account, now time.Time) (domain.LedgerResult, error) {
	rate, ok := account.Type.InterestRate()
	if !ok {
		return domain.LedgerResult{}, domain.ErrNotInterestBearing
	}

	interest := account.Balance.Mul(rate)
	if interest.IsZero() {
		return domain.LedgerResult{Account: account}, nil
	}

	account.AccruedInterest = account.AccruedInterest.Add(interest)
	account.Balance = account.Balance.Add(interest)

	description := fmt.Sprintf("Monthly interest payment - %s%%",
		rate.Mul(decimal.NewFromInt(100)).String())

	return domain.LedgerResult{
		Account:     account,
		Transaction: journal(account, domain.Interest, interest, description, now),
	}, nil
}

// Replay folds a transaction history into the balance it implies, starting
// from zero. For a consistent ledger the result equals the account's current
// balance regardless of which operations produced the history.
func Replay(transactions []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero

	for _, tx := range transactions {
		balance = balance.Add(tx.Amount.Mul(tx.Type.Sign()))
	}

	return balance
}

func journal(account domain.Account, txType domain.TransactionType, amount decimal.Decimal, description string, now time.Time) domain.Transaction {
	return domain.Transaction{
		AccountNumber: account.Number,
		Type:          txType,
		Amount:        amount,
		BalanceAfter:  account.Balance,
		Description:   description,
		CreatedAt:     now,
	}
}
