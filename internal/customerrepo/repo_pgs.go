// Package customerrepo manages repository layer of customers.
package customerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/pkg/dbpkg"
	"github.com/voltsbank/volts-bank/pkg/errorspkg"
)

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    customers (first_name, surname, address, phone, email, hashed_password)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, first_name, surname, address, phone, email, hashed_password, created_at
`

// Create creates the customer and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FirstName,
		arg.Surname,
		arg.Address,
		arg.Phone,
		arg.Email,
		arg.HashedPassword,
	)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.Surname,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "customers_email_key" {
				return c, domain.ErrEmailAlreadyExists
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT
	id, first_name, surname, address, phone, email, hashed_password, created_at
FROM customers
WHERE id = $1
`

// Get returns the customer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.Surname,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getByEmailQuery = `
SELECT
	id, first_name, surname, address, phone, email, hashed_password, created_at
FROM customers
WHERE email = $1
`

// GetByEmail returns the customer with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByEmailQuery, email)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.Surname,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const updateQuery = `
UPDATE customers
SET first_name = $2, surname = $3, address = $4, phone = $5
WHERE id = $1
RETURNING id, first_name, surname, address, phone, email, hashed_password, created_at
`

// Update updates the customer profile and returns the changed customer.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateCustomerParams) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery,
		arg.ID,
		arg.FirstName,
		arg.Surname,
		arg.Address,
		arg.Phone,
	)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.Surname,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const deleteQuery = `
DELETE FROM customers
WHERE id = $1
`

// Delete removes the customer with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, deleteQuery, id)
	return err
}
