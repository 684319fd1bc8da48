// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/pkg/dbpkg"
	"github.com/voltsbank/volts-bank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const accountColumns = `
	account_number, customer_id, account_type, balance, accrued_interest,
	branch, employer_name, employer_address, opened_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a               domain.Account
		employerName    sql.NullString
		employerAddress sql.NullString
	)

	err := row.Scan(
		&a.Number,
		&a.CustomerID,
		&a.Type,
		&a.Balance,
		&a.AccruedInterest,
		&a.Branch,
		&employerName,
		&employerAddress,
		&a.OpenedAt,
	)

	a.EmployerName = employerName.String
	a.EmployerAddress = employerAddress.String

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (account_number, customer_id, account_type, balance, accrued_interest,
	branch, employer_name, employer_address, opened_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var employerName, employerAddress sql.NullString
	if arg.Type == domain.Cheque {
		employerName = sql.NullString{String: arg.EmployerName, Valid: true}
		employerAddress = sql.NullString{String: arg.EmployerAddress, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Number,
		arg.CustomerID,
		arg.Type,
		arg.Balance,
		arg.AccruedInterest,
		arg.Branch,
		employerName,
		employerAddress,
		arg.OpenedAt,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_customer_id_fkey":
				return a, domain.ErrCustomerNotFound
			case "accounts_account_type_check":
				return a, domain.ErrInvalidAccountType
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE account_number = $1
`

// Get returns the account with the given account number.
func (r *RepoPGS) Get(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, number))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE customer_id = $1
ORDER BY opened_at
`

// ListForCustomer returns all accounts owned by the given customer.
func (r *RepoPGS) ListForCustomer(ctx context.Context, customerID int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var (
			a               domain.Account
			employerName    sql.NullString
			employerAddress sql.NullString
		)

		if err := rows.Scan(
			&a.Number,
			&a.CustomerID,
			&a.Type,
			&a.Balance,
			&a.AccruedInterest,
			&a.Branch,
			&employerName,
			&employerAddress,
			&a.OpenedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		a.EmployerName = employerName.String
		a.EmployerAddress = employerAddress.String

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $2, accrued_interest = $3
WHERE account_number = $1
RETURNING` + accountColumns

// SetBalance writes the balance and accrued interest produced by a ledger
// operation and returns the stored account. Reserved for the paired
// balance-and-journal write; it must not be reachable from delivery code.
func (r *RepoPGS) SetBalance(ctx context.Context, number string, balance, accruedInterest decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setBalanceQuery, number, balance, accruedInterest))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE account_number = $1
`

// Delete removes the account with the given account number.
func (r *RepoPGS) Delete(ctx context.Context, number string) error {
	_, err := r.db.ExecContext(ctx, deleteQuery, number)
	return err
}
