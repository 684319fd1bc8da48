// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountType indicates an account type outside the closed set.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrNonPositiveAmount indicates a zero or negative operation amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrWithdrawalNotAllowed indicates that the account type has no withdrawal capability.
	ErrWithdrawalNotAllowed = errors.New("account type does not allow withdrawals")
	// ErrNotInterestBearing indicates that the account type does not earn interest.
	ErrNotInterestBearing = errors.New("account type does not earn interest")
	// ErrBelowMinimumOpeningBalance indicates an investment opening deposit below the minimum.
	ErrBelowMinimumOpeningBalance = errors.New("initial deposit below minimum opening balance")
	// ErrEmployerNameRequired indicates a cheque account without an employer name.
	ErrEmployerNameRequired = errors.New("employer name is required")
	// ErrAccountOwnerMismatch indicates that the account belongs to another customer.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the customer")
)

// AccountType is the closed set of account kinds.
type AccountType string

// Supported account types.
const (
	Savings    AccountType = "SAVINGS"
	Investment AccountType = "INVESTMENT"
	Cheque     AccountType = "CHEQUE"
)

// Fixed monthly interest rates and the investment opening minimum.
var (
	savingsRate    = decimal.RequireFromString("0.0005") // 0.05% monthly
	investmentRate = decimal.RequireFromString("0.05")   // 5% monthly

	// MinimumOpeningBalance is the smallest initial deposit an investment
	// account may be opened with.
	MinimumOpeningBalance = decimal.RequireFromString("500.00")
)

// Valid reports whether t belongs to the closed set.
func (t AccountType) Valid() bool {
	switch t {
	case Savings, Investment, Cheque:
		return true
	}

	return false
}

// DisplayName returns the human readable account type label.
func (t AccountType) DisplayName() string {
	switch t {
	case Savings:
		return "Savings Account"
	case Investment:
		return "Investment Account"
	case Cheque:
		return "Cheque Account"
	}

	return string(t)
}

// Prefix returns the account number prefix for the type.
func (t AccountType) Prefix() string {
	switch t {
	case Savings:
		return "SAV"
	case Investment:
		return "INV"
	case Cheque:
		return "CHQ"
	}

	return "ACC"
}

// InterestRate returns the fixed monthly rate as a fraction and whether
// the type earns interest at all.
func (t AccountType) InterestRate() (decimal.Decimal, bool) {
	switch t {
	case Savings:
		return savingsRate, true
	case Investment:
		return investmentRate, true
	}

	return decimal.Zero, false
}

// SupportsWithdrawal reports whether a debit path exists for the type.
// Savings accounts have none; callers must check this before comparing
// balances.
func (t AccountType) SupportsWithdrawal() bool {
	return t != Savings
}

// Account holds the fields shared by every account variant plus the
// cheque-specific employment payload. Balance only changes through a ledger
// operation; direct assignment is reserved for reconstructing state from
// storage.
type Account struct {
	Number          string          `json:"number"`
	CustomerID      int32           `json:"customer_id"`
	Type            AccountType     `json:"type"`
	Balance         decimal.Decimal `json:"balance"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
	Branch          string          `json:"branch"`
	EmployerName    string          `json:"employer_name,omitempty"`
	EmployerAddress string          `json:"employer_address,omitempty"`
	OpenedAt        time.Time       `json:"opened_at"`
}

// AvailableBalance returns the balance available for debits. Every variant
// exposes the full balance; the method leaves room for holds later.
func (a Account) AvailableBalance() decimal.Decimal {
	return a.Balance
}

// Details returns the human readable per-variant account summary.
func (a Account) Details() string {
	switch a.Type {
	case Savings:
		rate, _ := a.Type.InterestRate()
		return fmt.Sprintf(
			"Savings Account\nAccount Number: %s\nBalance: BWP %s\nInterest Rate: %s%%\nAccrued Interest: BWP %s\nNote: No withdrawals allowed",
			a.Number,
			a.Balance.StringFixed(2),
			rate.Mul(decimal.NewFromInt(100)).String(),
			a.AccruedInterest.StringFixed(2),
		)
	case Investment:
		rate, _ := a.Type.InterestRate()
		return fmt.Sprintf(
			"Investment Account\nAccount Number: %s\nBalance: BWP %s\nInterest Rate: %s%%\nAccrued Interest: BWP %s\nWithdrawals: Allowed",
			a.Number,
			a.Balance.StringFixed(2),
			rate.Mul(decimal.NewFromInt(100)).String(),
			a.AccruedInterest.StringFixed(2),
		)
	case Cheque:
		return fmt.Sprintf(
			"Cheque Account\nAccount Number: %s\nBalance: BWP %s\nEmployer: %s\nEmployer Address: %s\nDeposits & Withdrawals: Allowed",
			a.Number,
			a.Balance.StringFixed(2),
			a.EmployerName,
			a.EmployerAddress,
		)
	}

	return fmt.Sprintf("Account %s (BWP %s)", a.Number, a.Balance.StringFixed(2))
}

// OpenAccountParams is the input data to open an account.
type OpenAccountParams struct {
	CustomerID      int32           `json:"customer_id"`
	Type            AccountType     `json:"type"`
	Branch          string          `json:"branch"`
	InitialDeposit  decimal.Decimal `json:"initial_deposit"`
	EmployerName    string          `json:"employer_name"`
	EmployerAddress string          `json:"employer_address"`
}
