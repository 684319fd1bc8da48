package customerservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/voltsbank/volts-bank/internal/domain"
	"github.com/voltsbank/volts-bank/pkg/passpkg"
	"github.com/voltsbank/volts-bank/pkg/randompkg"
)

func randomCustomer(t *testing.T, password string) domain.Customer {
	t.Helper()

	hashedPassword, err := passpkg.Hash(password)
	require.NoError(t, err)

	return domain.Customer{
		ID:             randompkg.IntBetween(1, 100),
		FirstName:      randompkg.Name(),
		Surname:        randompkg.Name(),
		Address:        randompkg.String(20),
		Phone:          randompkg.Phone(),
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().Truncate(time.Second),
	}
}

func TestCreate(t *testing.T) {
	password := randompkg.String(10)
	customer := randomCustomer(t, password)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.CustomerWithoutPassword, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateCustomerParams) (domain.Customer, error) {
						require.Equal(t, customer.Email, arg.Email)
						require.NoError(t, passpkg.Check(password, arg.HashedPassword))

						created := customer
						created.HashedPassword = arg.HashedPassword

						return created, nil
					})
			},
			checkResponse: func(t *testing.T, res domain.CustomerWithoutPassword, err error) {
				require.NoError(t, err)
				require.Equal(t, NewCustomerWithoutPassword(customer), res)
			},
		},
		{
			name: "DuplicateEmail",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Customer{}, domain.ErrEmailAlreadyExists)
			},
			checkResponse: func(t *testing.T, res domain.CustomerWithoutPassword, err error) {
				require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.Create(context.Background(),
				customer.FirstName, customer.Surname, customer.Address,
				customer.Phone, customer.Email, password)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	password := randompkg.String(10)
	customer := randomCustomer(t, password)

	testCases := []struct {
		name          string
		password      string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.CustomerWithoutPassword, err error)
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq(customer.Email)).
					Times(1).
					Return(customer, nil)
			},
			checkResponse: func(t *testing.T, res domain.CustomerWithoutPassword, err error) {
				require.NoError(t, err)
				require.Equal(t, NewCustomerWithoutPassword(customer), res)
			},
		},
		{
			name:     "WrongPassword",
			password: "wrong" + password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq(customer.Email)).
					Times(1).
					Return(customer, nil)
			},
			checkResponse: func(t *testing.T, res domain.CustomerWithoutPassword, err error) {
				require.ErrorIs(t, err, domain.ErrWrongPassword)
			},
		},
		{
			name:     "NotFound",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq(customer.Email)).
					Times(1).
					Return(domain.Customer{}, domain.ErrCustomerNotFound)
			},
			checkResponse: func(t *testing.T, res domain.CustomerWithoutPassword, err error) {
				require.ErrorIs(t, err, domain.ErrCustomerNotFound)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.CheckPassword(context.Background(), customer.Email, tc.password)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestGetByEmail(t *testing.T) {
	customer := randomCustomer(t, randompkg.String(10))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)

	repo.EXPECT().
		GetByEmail(gomock.Any(), gomock.Eq(customer.Email)).
		Times(1).
		Return(customer, nil)

	service := New(repo)

	res, err := service.GetByEmail(context.Background(), customer.Email)
	require.NoError(t, err)
	require.Equal(t, NewCustomerWithoutPassword(customer), res)
}
