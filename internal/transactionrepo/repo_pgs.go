// Package transactionrepo manages repository layer of transactions. It also
// owns the paired write of every ledger operation: the account balance update
// and the journal append land in one database transaction so the
// balance-reconstruction invariant survives persistence.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/voltsbank/volts-bank/internal/accountrepo"
	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/pkg/dbpkg"
	"github.com/voltsbank/volts-bank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_number, transaction_type, amount, balance_after, description, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, account_number, transaction_type, amount, balance_after, description, created_at
`

// Create appends the transaction to the journal and returns it with the
// assigned id.
func (r *RepoPGS) Create(ctx context.Context, arg domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountNumber,
		arg.Type,
		arg.Amount,
		arg.BalanceAfter,
		arg.Description,
		arg.CreatedAt,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountNumber,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&t.Description,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_number_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrNonPositiveAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT id, account_number, transaction_type, amount, balance_after, description, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountNumber,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&t.Description,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT id, account_number, transaction_type, amount, balance_after, description, created_at
FROM transactions
WHERE account_number = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

// List returns transactions for the given account, newest first. A limit of
// zero or less returns the whole history.
func (r *RepoPGS) List(ctx context.Context, accountNumber string, limit int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var limitArg interface{}
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.db.QueryContext(ctx, listQuery, accountNumber, limitArg)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountNumber,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Execute persists a ledger result: the account's new balance and the journal
// entry are written within a single database transaction. A journal append
// that cannot be undone after the balance write surfaces as
// domain.ErrLedgerInconsistency so callers can flag the account for
// reconciliation instead of treating it as a declined operation.
func (r *RepoPGS) Execute(ctx context.Context, arg domain.LedgerResult) (domain.LedgerResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	txRepo := NewTxRepoPGS(tx)

	result.Account, err = accountRepo.SetBalance(ctx,
		arg.Account.Number,
		arg.Account.Balance,
		arg.Account.AccruedInterest,
	)
	if err != nil {
		l.Error().Err(err).Send()
		rollback(l, tx)

		return domain.LedgerResult{}, err
	}

	result.Transaction, err = txRepo.Create(ctx, arg.Transaction)
	if err != nil {
		l.Error().Err(err).Send()

		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("balance written without journal entry")
			return domain.LedgerResult{}, domain.ErrLedgerInconsistency
		}

		return domain.LedgerResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.LedgerResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// OpenAccount persists a freshly opened account together with its opening
// journal entry, if any, within a single database transaction.
func (r *RepoPGS) OpenAccount(ctx context.Context, arg domain.LedgerResult) (domain.LedgerResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	txRepo := NewTxRepoPGS(tx)

	result.Account, err = accountRepo.Create(ctx, arg.Account)
	if err != nil {
		l.Error().Err(err).Send()
		rollback(l, tx)

		return domain.LedgerResult{}, err
	}

	if arg.HasEntry() {
		result.Transaction, err = txRepo.Create(ctx, arg.Transaction)
		if err != nil {
			l.Error().Err(err).Send()

			if rbErr := tx.Rollback(); rbErr != nil {
				l.Error().Err(rbErr).Msg("account created without opening entry")
				return domain.LedgerResult{}, domain.ErrLedgerInconsistency
			}

			return domain.LedgerResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.LedgerResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

func rollback(l *zerolog.Logger, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		l.Error().Err(err).Send()
	}
}
