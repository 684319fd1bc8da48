// Package transactionservice manages business logic layer of ledger
// operations: deposits, withdrawals and interest accrual.
package transactionservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/internal/ledger"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Execute(ctx context.Context, arg domain.LedgerResult) (domain.LedgerResult, error)
	List(ctx context.Context, accountNumber string, limit int32) ([]domain.Transaction, error)
}

// AccountService provides the account lookup with ownership verification.
type AccountService interface {
	Get(ctx context.Context, email, number string) (domain.Account, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
}

// New returns transaction service struct to manage ledger operations.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:     tr,
		accounts: as,
	}
}

// Deposit credits the amount to the account and journals the event. Every
// account variant accepts deposits.
func (s *Service) Deposit(ctx context.Context, email, number string, amount decimal.Decimal, description string) (domain.LedgerResult, error) {
	account, err := s.accounts.Get(ctx, email, number)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	result, err := ledger.Deposit(account, amount, description, time.Now())
	if err != nil {
		return domain.LedgerResult{}, err
	}

	return s.repo.Execute(ctx, result)
}

// Withdraw debits the amount from the account and journals the event. The
// account type must carry the withdrawal capability.
func (s *Service) Withdraw(ctx context.Context, email, number string, amount decimal.Decimal, description string) (domain.LedgerResult, error) {
	account, err := s.accounts.Get(ctx, email, number)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	result, err := ledger.Withdraw(account, amount, description, time.Now())
	if err != nil {
		return domain.LedgerResult{}, err
	}

	return s.repo.Execute(ctx, result)
}

// PayInterest accrues one period of interest into the account and journals
// the payment. The account type must earn interest.
func (s *Service) PayInterest(ctx context.Context, email, number string) (domain.LedgerResult, error) {
	account, err := s.accounts.Get(ctx, email, number)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	result, err := ledger.AccrueInterest(account, time.Now())
	if err != nil {
		return domain.LedgerResult{}, err
	}

	// A zero balance accrues nothing; there is no state change to persist.
	if !result.HasEntry() {
		return result, nil
	}

	return s.repo.Execute(ctx, result)
}

// List returns the account's transactions, newest first. A limit of zero or
// less returns the whole history.
func (s *Service) List(ctx context.Context, email, number string, limit int32) ([]domain.Transaction, error) {
	if _, err := s.accounts.Get(ctx, email, number); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, number, limit)
}
