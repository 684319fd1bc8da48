// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/internal/ledger"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	ListForCustomer(ctx context.Context, customerID int32) ([]domain.Account, error)
	Delete(ctx context.Context, number string) error
}

// LedgerRepo persists a freshly opened account paired with its opening entry.
type LedgerRepo interface {
	OpenAccount(ctx context.Context, arg domain.LedgerResult) (domain.LedgerResult, error)
}

// CustomerService resolves the authenticated customer.
type CustomerService interface {
	GetByEmail(ctx context.Context, email string) (domain.CustomerWithoutPassword, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo       Repo
	ledgerRepo LedgerRepo
	customers  CustomerService
}

// New returns account service struct to manage account business logic.
func New(ar Repo, lr LedgerRepo, cs CustomerService) *Service {
	return &Service{
		repo:       ar,
		ledgerRepo: lr,
		customers:  cs,
	}
}

// Open validates the opening policy for the requested account type, creates
// the account for the authenticated customer and persists it together with
// the opening journal entry.
func (s *Service) Open(ctx context.Context, email string, arg domain.OpenAccountParams) (domain.LedgerResult, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	arg.CustomerID = customer.ID
	now := time.Now()
	number := newAccountNumber(arg.Type, customer.ID, now)

	result, err := ledger.Open(arg, number, now)
	if err != nil {
		return domain.LedgerResult{}, err
	}

	return s.ledgerRepo.OpenAccount(ctx, result)
}

// Get returns the account with the given number if it belongs to the
// authenticated customer.
func (s *Service) Get(ctx context.Context, email, number string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}

	if account.CustomerID != customer.ID {
		return domain.Account{}, domain.ErrAccountOwnerMismatch
	}

	return account, nil
}

// List returns the authenticated customer's accounts and the total balance
// across them.
func (s *Service) List(ctx context.Context, email string) ([]domain.Account, decimal.Decimal, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, decimal.Zero, err
	}

	accounts, err := s.repo.ListForCustomer(ctx, customer.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return accounts, total, nil
}

// Delete removes the account with the given number if it belongs to the
// authenticated customer.
func (s *Service) Delete(ctx context.Context, email, number string) error {
	if _, err := s.Get(ctx, email, number); err != nil {
		return err
	}

	return s.repo.Delete(ctx, number)
}

// newAccountNumber builds the external account number contract:
// type prefix, zero-padded customer id, zero-padded time sequence.
func newAccountNumber(t domain.AccountType, customerID int32, now time.Time) string {
	seq := now.UnixMilli() % 100_000
	return fmt.Sprintf("%s%03d%05d", t.Prefix(), customerID, seq)
}
