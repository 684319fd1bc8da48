// Package customerservice manages business logic layer of customers.
package customerservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/pkg/errorspkg"
	"github.com/voltsbank/volts-bank/pkg/passpkg"
)

// Repo provides data access layer interface needed by customer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package customerservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error)
	Get(ctx context.Context, id int32) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	Update(ctx context.Context, arg domain.UpdateCustomerParams) (domain.Customer, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates customer service layer logic.
type Service struct {
	repo Repo
}

// New returns customer service struct to manage customer business logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

// NewCustomerWithoutPassword returns customer with removed credential data.
func NewCustomerWithoutPassword(c domain.Customer) domain.CustomerWithoutPassword {
	return domain.CustomerWithoutPassword{
		ID:        c.ID,
		FirstName: c.FirstName,
		Surname:   c.Surname,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// Create registers and returns a customer.
func (s *Service) Create(ctx context.Context, firstName, surname, address, phone, email, password string) (domain.CustomerWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.CustomerWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateCustomerParams{
		FirstName:      firstName,
		Surname:        surname,
		Address:        address,
		Phone:          phone,
		Email:          email,
		HashedPassword: hashedPassword,
	}

	created, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewCustomerWithoutPassword(created), nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.CustomerWithoutPassword, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.CustomerWithoutPassword{}, err
	}

	return NewCustomerWithoutPassword(c), nil
}

// GetByEmail returns the customer with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.CustomerWithoutPassword, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.CustomerWithoutPassword{}, err
	}

	return NewCustomerWithoutPassword(c), nil
}

// Update updates the customer profile and returns the changed customer.
func (s *Service) Update(ctx context.Context, arg domain.UpdateCustomerParams) (domain.CustomerWithoutPassword, error) {
	c, err := s.repo.Update(ctx, arg)
	if err != nil {
		return domain.CustomerWithoutPassword{}, err
	}

	return NewCustomerWithoutPassword(c), nil
}

// Delete removes the customer with the given id.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}

// CheckPassword checks if the password is valid for the given customer email.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.CustomerWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.CustomerWithoutPassword

	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return response, err
	}

	if err := passpkg.Check(password, c.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	return NewCustomerWithoutPassword(c), nil
}
